package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Jindonglee/resume-board/internal/auth"
	"github.com/Jindonglee/resume-board/internal/repository"
	apperrors "github.com/Jindonglee/resume-board/pkg/errors"
)

// Cookie names used by the authentication flow. The authorization cookie
// carries "Bearer <access token>"; the refresh cookie carries the raw
// refresh token.
const (
	authCookieName    = "authorization"
	refreshCookieName = "refreshToken"
	bearerScheme      = "Bearer"
)

// AuthGate guards routes that require an authenticated user. It verifies
// the access token from the authorization cookie and, when that token is
// missing or expired, silently mints a fresh one from a valid refresh
// session before letting the request through.
type AuthGate struct {
	tokens   *auth.TokenManager
	users    repository.UserRepository
	sessions repository.SessionStore
	logger   *slog.Logger
}

// NewAuthGate creates the authentication middleware.
func NewAuthGate(
	tokens *auth.TokenManager,
	users repository.UserRepository,
	sessions repository.SessionStore,
	logger *slog.Logger,
) *AuthGate {
	return &AuthGate{
		tokens:   tokens,
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Handler wraps next with the authentication check. On success the resolved
// user is attached to the request context.
func (g *AuthGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authCookie, err := r.Cookie(authCookieName)
		if err != nil {
			// No access credential at all; fall back to the refresh path.
			g.refreshAndContinue(w, r, next)
			return
		}

		scheme, token, found := strings.Cut(authCookie.Value, " ")
		if !found || scheme != bearerScheme {
			writeError(w, r, apperrors.MalformedScheme())
			return
		}

		userID, err := g.tokens.VerifyAccessToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				g.refreshAndContinue(w, r, next)
				return
			}
			writeError(w, r, apperrors.TokenTampered())
			return
		}

		g.attachUserAndServe(w, r, next, userID)
	})
}

// refreshAndContinue attempts the silent refresh path: resolve the refresh
// cookie against the session store, mint a new access token, set it as a
// cookie and continue the request.
func (g *AuthGate) refreshAndContinue(w http.ResponseWriter, r *http.Request, next http.Handler) {
	refreshCookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		writeError(w, r, apperrors.Unauthenticated("login required"))
		return
	}

	if _, err := g.tokens.VerifyRefreshToken(refreshCookie.Value); err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			writeError(w, r, apperrors.TokenExpired())
			return
		}
		writeError(w, r, apperrors.TokenTampered())
		return
	}

	userID, err := g.sessions.Get(r.Context(), refreshCookie.Value)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Revoked or expired server side; the client must log in again.
			writeError(w, r, apperrors.TokenExpired())
			return
		}
		writeError(w, r, err)
		return
	}

	accessToken, err := g.tokens.IssueAccessToken(userID)
	if err != nil {
		writeError(w, r, apperrors.Internal(err))
		return
	}

	SetAuthCookie(w, accessToken, g.tokens.AccessExpiry())

	g.logger.InfoContext(r.Context(), "access token silently refreshed",
		slog.String("user_id", userID),
	)

	g.attachUserAndServe(w, r, next, userID)
}

func (g *AuthGate) attachUserAndServe(w http.ResponseWriter, r *http.Request, next http.Handler, userID string) {
	user, err := g.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			writeError(w, r, apperrors.UnknownSubject())
			return
		}
		writeError(w, r, err)
		return
	}

	next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
}
