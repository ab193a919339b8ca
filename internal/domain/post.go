package domain

import (
	"time"
)

// Post statuses follow the résumé review pipeline of the board.
const (
	PostStatusApply = "APPLY"
	PostStatusDrop  = "DROP"
	PostStatusPass  = "PASS"
)

// Post represents a résumé posting on the board.
type Post struct {
	ID        string    `json:"postId"`
	UserID    string    `json:"userId"`
	Author    string    `json:"author,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
