package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Jindonglee/resume-board/internal/auth"
	"github.com/Jindonglee/resume-board/internal/domain"
	"github.com/Jindonglee/resume-board/internal/event"
	"github.com/Jindonglee/resume-board/internal/service"
	"github.com/Jindonglee/resume-board/pkg/health"
)

// testEnv wires handlers, services and in-memory stores into a full router
// so tests exercise the real middleware chain.
type testEnv struct {
	router   http.Handler
	users    *fakeUserRepo
	posts    *fakePostRepo
	sessions *fakeSessionStore
	tokens   *auth.TokenManager
	svc      *service.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	producer := event.NewProducer(noopPublisher{}, logger)

	users := newFakeUserRepo()
	posts := newFakePostRepo()
	sessions := newFakeSessionStore()

	userService := service.NewUserService(users, sessions, tokens, producer, logger)
	postService := service.NewPostService(posts, producer, logger)

	router := NewRouter(RouterConfig{
		UserHandler: NewUserHandler(userService),
		PostHandler: NewPostHandler(postService),
		AuthGate:    NewAuthGate(tokens, users, sessions, logger),
		Health:      health.NewHandler(),
		Logger:      logger,
		LoginRPS:    100,
		LoginBurst:  100,
	})

	return &testEnv{
		router:   router,
		users:    users,
		posts:    posts,
		sessions: sessions,
		tokens:   tokens,
		svc:      userService,
	}
}

// registerUser seeds a user directly through the service so the stored
// password hash is real.
func (e *testEnv) registerUser(t *testing.T, email, password string) *domain.User {
	t.Helper()
	user, err := e.svc.Register(context.Background(), service.RegisterInput{
		Email:           email,
		Name:            "Test User",
		Password:        password,
		PasswordConfirm: password,
	})
	require.NoError(t, err)
	return user
}

// login performs a real login and returns the issued cookies.
func (e *testEnv) login(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())
	return rec.Result().Cookies()
}

func (e *testEnv) do(t *testing.T, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
