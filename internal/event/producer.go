package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jindonglee/resume-board/internal/domain"
	pkgkafka "github.com/Jindonglee/resume-board/pkg/kafka"
)

// Kafka topic constants for board domain events.
const (
	TopicUserRegistered = "resumeboard.user.registered"
	TopicPostCreated    = "resumeboard.post.created"
)

// Aggregate type constants.
const (
	AggregateTypeUser = "user"
	AggregateTypePost = "post"
)

// Source identifier for events originating from this service.
const Source = "resume-board"

// Publisher sends an event envelope to a topic. Satisfied by the Kafka
// producer; tests substitute a no-op.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Grade string `json:"grade"`
}

// PostCreatedData is the payload for a post.created event.
type PostCreatedData struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Producer publishes board domain events.
type Producer struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(publisher Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Grade: user.Grade,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, Source, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.publisher.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// PublishPostCreated publishes a post.created event.
func (p *Producer) PublishPostCreated(ctx context.Context, post *domain.Post) error {
	data := PostCreatedData{
		ID:     post.ID,
		UserID: post.UserID,
		Title:  post.Title,
		Status: post.Status,
	}

	event, err := pkgkafka.NewEvent(TopicPostCreated, post.ID, AggregateTypePost, Source, data)
	if err != nil {
		return fmt.Errorf("create post.created event: %w", err)
	}

	if err := p.publisher.Publish(ctx, TopicPostCreated, event); err != nil {
		return fmt.Errorf("publish post.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published post.created event",
		slog.String("post_id", post.ID),
		slog.String("user_id", post.UserID),
	)

	return nil
}
