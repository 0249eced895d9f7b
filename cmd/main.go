package main

import (
	"context"
	"fmt"
	"os"

	"github.com/openarrive/traveller-backend/internal/db"
	"github.com/openarrive/traveller-backend/internal/graph"
	"github.com/openarrive/traveller-backend/internal/handlers"
	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/middleware"
	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/server"
	"github.com/openarrive/traveller-backend/internal/services"
	"github.com/openarrive/traveller-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	passwordPepper := utils.GetEnv("PASSWORD_SECRET_KEY", "", log)
	tokenDuration := utils.GetEnvAsSeconds("TOKEN_DURATION", 7200, log)
	testingRate := utils.GetEnvAsFloat("MANDATORY_TESTING_RATE", 0.01, log)
	ingestTimeout := utils.GetEnvAsSeconds("INGEST_TIMEOUT_SECONDS", 30, log)
	port := utils.GetEnv("PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	countryRepo := repos.NewCountryRepo(thePG, log)
	placeRepo := repos.NewPlaceRepo(thePG, log)
	vaccineRepo := repos.NewVaccineRepo(thePG, log)
	personRepo := repos.NewPersonRepo(thePG, log)
	travelGroupRepo := repos.NewTravelGroupRepo(thePG, log)
	tripRepo := repos.NewTripRepo(thePG, log)
	healthProfileRepo := repos.NewHealthProfileRepo(thePG, log)
	vaccinationRepo := repos.NewVaccinationRepo(thePG, log)
	covidTestRepo := repos.NewCovidTestRepo(thePG, log)
	quarantinePlanRepo := repos.NewQuarantinePlanRepo(thePG, log)
	postalAddressRepo := repos.NewPostalAddressRepo(thePG, log)
	travelResponseRepo := repos.NewTravelResponseRepo(thePG, log)
	userRepo := repos.NewUserRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	referenceService := services.NewReferenceService(log, countryRepo, placeRepo, vaccineRepo)
	if err := referenceService.WarmCache(context.Background()); err != nil {
		log.Warn("Reference cache warmup failed", "error", err)
	}
	ingestService := services.NewIngestService(
		thePG,
		log,
		services.IngestConfig{
			MandatoryTestingRate: testingRate,
			StepTimeout:          ingestTimeout,
		},
		referenceService,
		personRepo,
		travelGroupRepo,
		tripRepo,
		healthProfileRepo,
		vaccinationRepo,
		covidTestRepo,
		quarantinePlanRepo,
		postalAddressRepo,
		travelResponseRepo,
	)
	authService := services.NewAuthService(log, services.AuthConfig{
		JWTSecret:      jwtSecretKey,
		PasswordPepper: passwordPepper,
		TokenDuration:  tokenDuration,
	}, userRepo)
	userService := services.NewUserService(log, userRepo, authService)

	adminEmail := utils.GetEnv("ADMIN_EMAIL", "", log)
	adminPassword := utils.GetEnv("ADMIN_PASSWORD", "", log)
	if adminEmail != "" && adminPassword != "" {
		if err := userService.EnsureAdmin(context.Background(), adminEmail, adminPassword); err != nil {
			log.Error("Admin bootstrap failed", "error", err)
			os.Exit(1)
		}
	}

	// Feed
	feed, err := services.NewRedisFeed(log)
	if err != nil {
		log.Warn("Redis feed unavailable, live feed disabled", "error", err)
		feed = services.NewNoopFeed()
	}
	defer feed.Close()

	feedHandler := handlers.NewFeedHandler(log)
	if err := feed.StartForwarder(context.Background(), feedHandler.Broadcast); err != nil {
		log.Warn("Feed forwarder failed to start", "error", err)
	}

	// GraphQL
	schema, err := graph.NewSchema(graph.SchemaConfig{
		Log:                log,
		Reference:          referenceService,
		Ingest:             ingestService,
		Auth:               authService,
		Users:              userService,
		Feed:               feed,
		PersonRepo:         personRepo,
		TravelGroupRepo:    travelGroupRepo,
		TripRepo:           tripRepo,
		HealthProfileRepo:  healthProfileRepo,
		VaccinationRepo:    vaccinationRepo,
		CovidTestRepo:      covidTestRepo,
		QuarantinePlanRepo: quarantinePlanRepo,
		PostalAddressRepo:  postalAddressRepo,
	})
	if err != nil {
		log.Error("Schema build failed", "error", err)
		os.Exit(1)
	}

	graphqlHandler := handlers.NewGraphQLHandler(log, schema)
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware: authMiddleware,
		GraphQLHandler: graphqlHandler,
		FeedHandler:    feedHandler,
	})

	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
