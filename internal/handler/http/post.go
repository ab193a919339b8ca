package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jindonglee/resume-board/internal/auth"
	"github.com/Jindonglee/resume-board/internal/service"
	apperrors "github.com/Jindonglee/resume-board/pkg/errors"
	pkgvalidator "github.com/Jindonglee/resume-board/pkg/validator"
)

// PostHandler exposes the résumé posting endpoints.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type postRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1"`
}

// CreatePost handles POST /api/posts.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.Unauthenticated("login required"))
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := pkgvalidator.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.posts.CreatePost(r.Context(), service.CreatePostInput{
		UserID:  user.ID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// ListPosts handles GET /api/posts with optional orderKey and orderValue
// query parameters.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	orderKey := r.URL.Query().Get("orderKey")
	orderValue := r.URL.Query().Get("orderValue")

	posts, err := h.posts.ListPosts(r.Context(), orderKey, orderValue)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /api/posts/{postId}.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetPost(r.Context(), chi.URLParam(r, "postId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// UpdatePost handles PATCH /api/posts/{postId}.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.Unauthenticated("login required"))
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := pkgvalidator.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), service.UpdatePostInput{
		PostID:  chi.URLParam(r, "postId"),
		UserID:  user.ID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// DeletePost handles DELETE /api/posts/{postId}.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.Unauthenticated("login required"))
		return
	}

	post, err := h.posts.DeletePost(r.Context(), chi.URLParam(r, "postId"), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}
