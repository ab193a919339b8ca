package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Jindonglee/resume-board/internal/domain"
	"github.com/Jindonglee/resume-board/internal/event"
	"github.com/Jindonglee/resume-board/internal/repository"
	apperrors "github.com/Jindonglee/resume-board/pkg/errors"
)

// Sort parameter defaults and whitelist for the post listing.
const (
	defaultOrderKey   = "createdAt"
	defaultOrderValue = "desc"
)

var allowedOrderKeys = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"title":     true,
	"status":    true,
}

// CreatePostInput carries the fields needed to create a posting.
type CreatePostInput struct {
	UserID  string
	Title   string
	Content string
}

// UpdatePostInput carries the fields of a posting edit.
type UpdatePostInput struct {
	PostID  string
	UserID  string
	Title   string
	Content string
}

// PostService implements the résumé posting board operations.
type PostService struct {
	posts    repository.PostRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, producer *event.Producer, logger *slog.Logger) *PostService {
	return &PostService{
		posts:    posts,
		producer: producer,
		logger:   logger,
	}
}

// ListPosts returns all postings sorted by the requested column. Missing
// parameters fall back to newest first; unknown values are rejected.
func (s *PostService) ListPosts(ctx context.Context, orderKey, orderValue string) ([]domain.Post, error) {
	if orderKey == "" {
		orderKey = defaultOrderKey
	}
	if !allowedOrderKeys[orderKey] {
		return nil, apperrors.InvalidInput("orderKey must be one of: createdAt, updatedAt, title, status")
	}

	if orderValue == "" {
		orderValue = defaultOrderValue
	}
	if orderValue != "asc" && orderValue != "desc" {
		return nil, apperrors.InvalidInput("orderValue must be asc or desc")
	}

	return s.posts.List(ctx, orderKey, orderValue)
}

// CreatePost creates a new posting owned by the given user, starting in the
// APPLY status.
func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	now := time.Now().UTC()
	post := &domain.Post{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		Title:     input.Title,
		Content:   input.Content,
		Status:    domain.PostStatusApply,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "post created",
		slog.String("post_id", post.ID),
		slog.String("user_id", post.UserID),
	)

	if err := s.producer.PublishPostCreated(ctx, post); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish post.created event",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()),
		)
	}

	return post, nil
}

// GetPost returns a single posting by ID.
func (s *PostService) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("post", postID)
		}
		return nil, err
	}
	return post, nil
}

// UpdatePost edits a posting. Only the owner may edit; anyone else gets a
// forbidden error, and an unknown post a not found.
func (s *PostService) UpdatePost(ctx context.Context, input UpdatePostInput) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("post", input.PostID)
		}
		return nil, err
	}

	if post.UserID != input.UserID {
		return nil, apperrors.Forbidden("only the author may edit this post")
	}

	if err := s.posts.Update(ctx, input.PostID, input.UserID, input.Title, input.Content); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("post", input.PostID)
		}
		return nil, err
	}

	return s.posts.GetByID(ctx, input.PostID)
}

// DeletePost removes a posting and returns its last state. Only the owner
// may delete.
func (s *PostService) DeletePost(ctx context.Context, postID, userID string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("post", postID)
		}
		return nil, err
	}

	if post.UserID != userID {
		return nil, apperrors.Forbidden("only the author may delete this post")
	}

	if err := s.posts.Delete(ctx, postID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("post", postID)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "post deleted",
		slog.String("post_id", postID),
		slog.String("user_id", userID),
	)

	return post, nil
}
