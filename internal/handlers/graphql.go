package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"

	"github.com/openarrive/traveller-backend/internal/logger"
)

// GraphQLHandler serves the schema on POST /graphql and an interactive
// playground on GET /playground.
type GraphQLHandler struct {
	log     *logger.Logger
	execute http.Handler
}

func NewGraphQLHandler(log *logger.Logger, schema graphql.Schema) *GraphQLHandler {
	h := gqlhandler.New(&gqlhandler.Config{
		Schema:     &schema,
		Pretty:     true,
		Playground: true,
	})
	return &GraphQLHandler{
		log:     log.With("handler", "GraphQLHandler"),
		execute: h,
	}
}

func (h *GraphQLHandler) Serve(c *gin.Context) {
	h.execute.ServeHTTP(c.Writer, c.Request)
}
