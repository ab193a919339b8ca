package auth

import (
	"context"

	"github.com/Jindonglee/resume-board/internal/domain"
)

type contextKey struct{}

// WithUser returns a new context carrying the authenticated user. The auth
// gate sets this after a request's credentials resolve.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(contextKey{}).(*domain.User)
	return user, ok
}
