package repository

import (
	"context"
	"time"

	"github.com/Jindonglee/resume-board/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user in the store.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their identifier.
	Delete(ctx context.Context, id string) error
}

// PostRepository defines the interface for post persistence operations.
type PostRepository interface {
	// Create inserts a new post into the store.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its unique identifier, with the author
	// name resolved.
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// List returns all posts ordered by the given column and direction.
	// Callers must pass values vetted by the service layer.
	List(ctx context.Context, orderKey, orderValue string) ([]domain.Post, error)

	// Update modifies the title and content of the post owned by userID.
	Update(ctx context.Context, id, userID, title, content string) error

	// Delete removes the post owned by userID.
	Delete(ctx context.Context, id, userID string) error
}

// SessionStore maps a refresh token value to the owning user ID with a TTL.
// It is the server-side record that makes silent access-token refresh
// possible without re-presenting a password.
type SessionStore interface {
	// Set records token → userID, expiring after ttl.
	Set(ctx context.Context, token, userID string, ttl time.Duration) error

	// Get resolves a refresh token to its user ID. Returns ErrNotFound for
	// an absent or expired record.
	Get(ctx context.Context, token string) (string, error)

	// Delete removes the record for the given token, if any.
	Delete(ctx context.Context, token string) error
}
