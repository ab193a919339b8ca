package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Jindonglee/resume-board/internal/domain"
	"github.com/Jindonglee/resume-board/pkg/database"
	apperrors "github.com/Jindonglee/resume-board/pkg/errors"
)

// orderColumns whitelists the sortable columns for List. Interpolating an
// ORDER BY clause is only safe against this fixed set.
var orderColumns = map[string]string{
	"createdAt": "p.created_at",
	"updatedAt": "p.updated_at",
	"title":     "p.title",
	"status":    "p.status",
}

// PostRepository implements repository.PostRepository using PostgreSQL.
type PostRepository struct {
	pool database.DBTX
}

// NewPostRepository creates a new PostgreSQL-backed post repository.
func NewPostRepository(pool database.DBTX) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create inserts a new post into the database.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	query := `
		INSERT INTO posts (id, user_id, title, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.UserID,
		p.Title,
		p.Content,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by its ID, resolving the author name.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `
		SELECT p.id, p.user_id, u.name, p.title, p.content, p.status, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`

	var p domain.Post
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.UserID,
		&p.Author,
		&p.Title,
		&p.Content,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	return &p, nil
}

// List returns all posts ordered by the given key and direction. The key must
// be one of the whitelisted order columns; the direction must be asc or desc.
func (r *PostRepository) List(ctx context.Context, orderKey, orderValue string) ([]domain.Post, error) {
	column, ok := orderColumns[orderKey]
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown order key %q", orderKey))
	}
	direction := "DESC"
	if orderValue == "asc" {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.user_id, u.name, p.title, p.content, p.status, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY %s %s`, column, direction)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Author,
			&p.Title,
			&p.Content,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post rows: %w", err)
	}

	if posts == nil {
		posts = []domain.Post{}
	}

	return posts, nil
}

// Update modifies the title and content of the post owned by userID. The
// WHERE clause is owner-scoped, so updating someone else's post affects no
// rows and reports not found.
func (r *PostRepository) Update(ctx context.Context, id, userID, title, content string) error {
	query := `
		UPDATE posts
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5`

	ct, err := r.pool.Exec(ctx, query, title, content, time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("post", id)
	}

	return nil
}

// Delete removes the post owned by userID.
func (r *PostRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM posts WHERE id = $1 AND user_id = $2`

	ct, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("post", id)
	}

	return nil
}
