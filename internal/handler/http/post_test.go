package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createPost(t *testing.T, cookies []*http.Cookie, title, content string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/posts",
		`{"title":"`+title+`","content":"`+content+`"}`, cookies...)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var post struct {
		PostID string `json:"postId"`
	}
	decodeData(t, rec, &post)
	require.NotEmpty(t, post.PostID)
	return post.PostID
}

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "jin@example.com", "password1")
	cookies := env.login(t, "jin@example.com", "password1")

	rec := env.do(t, http.MethodPost, "/api/posts",
		`{"title":"backend engineer","content":"three years of Go"}`, cookies...)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var post struct {
		PostID string `json:"postId"`
		UserID string `json:"userId"`
		Status string `json:"status"`
	}
	decodeData(t, rec, &post)
	assert.NotEmpty(t, post.PostID)
	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, "APPLY", post.Status)
}

func TestCreatePost_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/posts", `{"title":"t","content":"c"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", decodeErrorCode(t, rec))
}

func TestCreatePost_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "jin@example.com", "password1")
	cookies := env.login(t, "jin@example.com", "password1")

	rec := env.do(t, http.MethodPost, "/api/posts", `{"title":"only a title"}`, cookies...)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeErrorCode(t, rec))
}

func TestListPosts_PublicAndInvalidOrder(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "jin@example.com", "password1")
	cookies := env.login(t, "jin@example.com", "password1")
	env.createPost(t, cookies, "first", "body")

	// Listing needs no authentication.
	rec := env.do(t, http.MethodGet, "/api/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var posts []struct {
		Title string `json:"title"`
	}
	decodeData(t, rec, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "first", posts[0].Title)

	// Unknown sort keys are rejected, not silently ignored.
	bad := env.do(t, http.MethodGet, "/api/posts?orderKey=passwordHash", "")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestGetPost(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "jin@example.com", "password1")
	cookies := env.login(t, "jin@example.com", "password1")
	postID := env.createPost(t, cookies, "backend engineer", "body")

	rec := env.do(t, http.MethodGet, "/api/posts/"+postID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var post struct {
		Title string `json:"title"`
	}
	decodeData(t, rec, &post)
	assert.Equal(t, "backend engineer", post.Title)
}

func TestGetPost_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/posts/unknown-id", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeErrorCode(t, rec))
}

func TestUpdatePost(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "jin@example.com", "password1")
	cookies := env.login(t, "jin@example.com", "password1")
	postID := env.createPost(t, cookies, "old title", "old body")

	rec := env.do(t, http.MethodPatch, "/api/posts/"+postID,
		`{"title":"new title","content":"new body"}`, cookies...)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var post struct {
		Title string `json:"title"`
	}
	decodeData(t, rec, &post)
	assert.Equal(t, "new title", post.Title)
}

func TestUpdatePost_OnlyOwner(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "owner@example.com", "password1")
	ownerCookies := env.login(t, "owner@example.com", "password1")
	postID := env.createPost(t, ownerCookies, "owned", "body")

	env.registerUser(t, "other@example.com", "password1")
	otherCookies := env.login(t, "other@example.com", "password1")

	rec := env.do(t, http.MethodPatch, "/api/posts/"+postID,
		`{"title":"hijacked","content":"nope"}`, otherCookies...)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeErrorCode(t, rec))
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "jin@example.com", "password1")
	cookies := env.login(t, "jin@example.com", "password1")
	postID := env.createPost(t, cookies, "to delete", "body")

	rec := env.do(t, http.MethodDelete, "/api/posts/"+postID, "", cookies...)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// The response carries the deleted post's last state.
	var post struct {
		Title string `json:"title"`
	}
	decodeData(t, rec, &post)
	assert.Equal(t, "to delete", post.Title)

	after := env.do(t, http.MethodGet, "/api/posts/"+postID, "")
	assert.Equal(t, http.StatusNotFound, after.Code)
}

func TestDeletePost_OnlyOwner(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "owner@example.com", "password1")
	ownerCookies := env.login(t, "owner@example.com", "password1")
	postID := env.createPost(t, ownerCookies, "owned", "body")

	env.registerUser(t, "other@example.com", "password1")
	otherCookies := env.login(t, "other@example.com", "password1")

	rec := env.do(t, http.MethodDelete, "/api/posts/"+postID, "", otherCookies...)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The post survives.
	still := env.do(t, http.MethodGet, "/api/posts/"+postID, "")
	assert.Equal(t, http.StatusOK, still.Code)
}
