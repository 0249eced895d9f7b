package requestdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/openarrive/traveller-backend/internal/types"
)

type contextKey struct{}

var requestDataKey contextKey

// RequestData is the decoded caller identity attached to the request context
// after bearer-token validation. When decoding failed, TokenErr keeps the
// detail so guards can report it instead of a generic denial.
type RequestData struct {
	UserID   uuid.UUID
	Email    string
	Role     types.Role
	HasRole  bool
	TokenErr error
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
