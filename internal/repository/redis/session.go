package redis

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/Jindonglee/resume-board/pkg/errors"
)

const keyPrefix = "session:"

const (
	// callTimeout bounds every store call so an unreachable Redis cannot
	// stall the auth path indefinitely.
	callTimeout = 3 * time.Second

	retryAttempts = 3
	retryBaseWait = 50 * time.Millisecond
)

// SessionStore implements repository.SessionStore using Redis. Each record
// maps a refresh token value to its user ID and expires with the token.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed session store.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Set records token → userID with the given TTL.
func (s *SessionStore) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.withRetry(ctx, func(ctx context.Context) error {
		if err := s.client.Set(ctx, keyPrefix+token, userID, ttl).Err(); err != nil {
			return fmt.Errorf("redis set session: %w", err)
		}
		return nil
	})
}

// Get resolves a refresh token to its user ID. An absent or expired record
// yields ErrNotFound; a store failure yields an Unavailable error, never an
// authentication failure.
func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	var userID string
	err := s.withRetry(ctx, func(ctx context.Context) error {
		val, err := s.client.Get(ctx, keyPrefix+token).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("redis get session: %w", err)
		}
		userID = val
		return nil
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Delete removes the record for the given token. Deleting a missing record
// is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.withRetry(ctx, func(ctx context.Context) error {
		if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
			return fmt.Errorf("redis delete session: %w", err)
		}
		return nil
	})
}

// withRetry runs op with a per-call timeout and a bounded number of retries.
// Not-found results are returned immediately; only transport failures retry.
// After the attempts are exhausted the error surfaces as Unavailable.
func (s *SessionStore) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		err := op(callCtx)
		cancel()

		if err == nil || errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		lastErr = err
		if attempt < retryAttempts-1 {
			select {
			case <-ctx.Done():
				return apperrors.Unavailable("session store unreachable")
			case <-time.After(retryBackoff(attempt)):
			}
		}
	}

	appErr := apperrors.Unavailable("session store unreachable")
	appErr.Err = fmt.Errorf("%w: %w", apperrors.ErrUnavailable, lastErr)
	return appErr
}

// retryBackoff returns the wait before the next attempt, with ±25% jitter.
func retryBackoff(attempt int) time.Duration {
	base := retryBaseWait << attempt
	jitter := time.Duration(float64(base) * 0.25 * (2*rand.Float64() - 1)) // #nosec G404 -- non-cryptographic jitter
	return base + jitter
}
