package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Jindonglee/resume-board/internal/auth"
	"github.com/Jindonglee/resume-board/internal/domain"
	"github.com/Jindonglee/resume-board/internal/event"
	"github.com/Jindonglee/resume-board/internal/repository"
	apperrors "github.com/Jindonglee/resume-board/pkg/errors"
)

// loginFailedMessage is returned for both an unknown email and a wrong
// password so the endpoint cannot be used to enumerate registered accounts.
const loginFailedMessage = "invalid email or password"

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email           string
	Name            string
	Password        string
	PasswordConfirm string
	Grade           string
}

// LoginInput carries the credentials and request telemetry for a login
// attempt. IP and UserAgent are logged, never stored.
type LoginInput struct {
	Email     string
	Password  string
	ClientIP  string
	UserAgent string
}

// UserService implements account registration, credential verification and
// session lifecycle.
type UserService struct {
	users    repository.UserRepository
	sessions repository.SessionStore
	tokens   *auth.TokenManager
	producer *event.Producer
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	users repository.UserRepository,
	sessions repository.SessionStore,
	tokens *auth.TokenManager,
	producer *event.Producer,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		producer: producer,
		logger:   logger,
	}
}

// AccessExpiry returns the configured access token lifetime, for cookie
// max-age alignment.
func (s *UserService) AccessExpiry() time.Duration {
	return s.tokens.AccessExpiry()
}

// RefreshExpiry returns the configured refresh token lifetime.
func (s *UserService) RefreshExpiry() time.Duration {
	return s.tokens.RefreshExpiry()
}

// Register creates a new account. The password confirmation is checked
// before any store access, and a duplicate email is rejected with a
// conflict.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Password != input.PasswordConfirm {
		return nil, apperrors.InvalidInput("password and password confirmation do not match")
	}

	grade := input.Grade
	if grade == "" {
		grade = domain.GradeUser
	}
	if !domain.IsValidGrade(grade) {
		return nil, apperrors.InvalidInput("grade must be one of: user, admin")
	}

	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("user", "email", input.Email)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Grade:        grade,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("grade", user.Grade),
	)

	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		// Registration already committed; the event stream catches up later.
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	return user, nil
}

// Login verifies the credentials, issues an access and refresh token pair
// and records the refresh token in the session store. Unknown email and
// wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*domain.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "login failed",
				slog.String("email", input.Email),
				slog.String("reason", "unknown email"),
				slog.String("client_ip", input.ClientIP),
				slog.String("user_agent", input.UserAgent),
			)
			return nil, apperrors.Unauthorized(loginFailedMessage)
		}
		return nil, err
	}

	if !auth.CheckPassword(input.Password, user.PasswordHash) {
		s.logger.WarnContext(ctx, "login failed",
			slog.String("email", input.Email),
			slog.String("user_id", user.ID),
			slog.String("reason", "password mismatch"),
			slog.String("client_ip", input.ClientIP),
			slog.String("user_agent", input.UserAgent),
		)
		return nil, apperrors.Unauthorized(loginFailedMessage)
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.sessions.Set(ctx, refreshToken, user.ID, s.tokens.RefreshExpiry()); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("client_ip", input.ClientIP),
		slog.String("user_agent", input.UserAgent),
	)

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUser returns the profile of the given user.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("user", userID)
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the session bound to the given refresh token. Revoking an
// unknown token is not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, refreshToken); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	s.logger.InfoContext(ctx, "session revoked")
	return nil
}
