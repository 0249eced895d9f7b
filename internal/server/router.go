package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openarrive/traveller-backend/internal/handlers"
	"github.com/openarrive/traveller-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware *middleware.AuthMiddleware
	GraphQLHandler *handlers.GraphQLHandler
	FeedHandler    *handlers.FeedHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:8080",
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Claims are attached softly; role checks happen per GraphQL field.
	authed := router.Group("/")
	authed.Use(cfg.AuthMiddleware.AttachClaims())
	authed.POST("/graphql", cfg.GraphQLHandler.Serve)
	authed.GET("/graphql", cfg.GraphQLHandler.Serve)
	authed.GET("/playground", cfg.GraphQLHandler.Serve)
	authed.GET("/feed/stream", cfg.FeedHandler.Stream)

	return router
}
