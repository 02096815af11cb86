package session

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const userKey contextKey = "user"

// WithUserID stores the authenticated owner's id on the request context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey, id)
}

// UserIDFromContext returns uuid.Nil when the request is unauthenticated.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userKey).(uuid.UUID)
	return id
}
