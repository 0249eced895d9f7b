package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/requestdata"
	"github.com/openarrive/traveller-backend/internal/services"
	"github.com/openarrive/traveller-backend/internal/types"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		log:         log.With("Middleware", "AuthMiddleware"),
		authService: authService,
	}
}

// AttachClaims decodes the bearer token, when present, into the request
// context. It never aborts; role checks happen per GraphQL field, so an
// anonymous request still reaches resolvers that allow it.
func (am *AuthMiddleware) AttachClaims() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		rd := &requestdata.RequestData{}
		claims, err := am.authService.ParseToken(tokenString)
		if err != nil {
			am.log.Debug("Token rejected", "error", err)
			rd.TokenErr = err
		} else {
			if id, perr := uuid.Parse(claims.Subject); perr == nil {
				rd.UserID = id
			}
			if role, perr := types.ParseRole(claims.Role); perr == nil {
				rd.Role = role
				rd.HasRole = true
			}
		}

		ctx := requestdata.WithRequestData(c.Request.Context(), rd)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	// SSE consumers cannot set headers from EventSource.
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	return ""
}
