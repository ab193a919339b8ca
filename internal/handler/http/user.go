package http

import (
	"net/http"

	"github.com/Jindonglee/resume-board/internal/auth"
	"github.com/Jindonglee/resume-board/internal/service"
	apperrors "github.com/Jindonglee/resume-board/pkg/errors"
	pkgmiddleware "github.com/Jindonglee/resume-board/pkg/middleware"
	pkgvalidator "github.com/Jindonglee/resume-board/pkg/validator"
)

// UserHandler exposes account and session endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type signUpRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Name            string `json:"name" validate:"required,min=1,max=100"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
	Grade           string `json:"grade" validate:"omitempty,oneof=user admin"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUp handles POST /api/sign-up.
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := pkgvalidator.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Email:           req.Email,
		Name:            req.Name,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Grade:           req.Grade,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/login. On success both the access and refresh
// tokens are set as cookies and returned in the body.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := pkgvalidator.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.users.Login(r.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		ClientIP:  pkgmiddleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	SetAuthCookie(w, pair.AccessToken, h.users.AccessExpiry())
	SetRefreshCookie(w, pair.RefreshToken, h.users.RefreshExpiry())

	writeJSON(w, http.StatusOK, pair)
}

// Logout handles POST /api/logout. It revokes the server-side session and
// expires both cookies.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.users.Logout(r.Context(), refreshToken); err != nil {
		writeError(w, r, err)
		return
	}

	ClearAuthCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// UserInfo handles GET /api/userInfo for the authenticated user.
func (h *UserHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.Unauthenticated("login required"))
		return
	}

	// Historical client contract: this read returns 201.
	writeJSON(w, http.StatusCreated, user)
}
