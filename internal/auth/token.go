package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure kinds. Expired and malformed credentials are surfaced
// distinctly because the auth gate treats them differently.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims represents the JWT claims carried by both token kinds.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies access and refresh tokens. The two kinds
// are signed with independent secrets, so an access token never verifies as
// a refresh token and vice versa.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewTokenManager creates a token manager. Both secrets are required; an
// empty secret would let unsigned tokens verify, so construction fails closed.
func NewTokenManager(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) (*TokenManager, error) {
	if accessSecret == "" {
		return nil, errors.New("access token secret is required")
	}
	if refreshSecret == "" {
		return nil, errors.New("refresh token secret is required")
	}

	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}, nil
}

// AccessExpiry returns the configured access token lifetime.
func (m *TokenManager) AccessExpiry() time.Duration {
	return m.accessExpiry
}

// RefreshExpiry returns the configured refresh token lifetime.
func (m *TokenManager) RefreshExpiry() time.Duration {
	return m.refreshExpiry
}

// IssueAccessToken creates a signed JWT access token carrying the user ID.
func (m *TokenManager) IssueAccessToken(userID string) (string, error) {
	return m.issue(userID, m.accessSecret, m.accessExpiry)
}

// IssueRefreshToken creates a signed JWT refresh token carrying the user ID.
// The returned value is also the key persisted in the session store.
func (m *TokenManager) IssueRefreshToken(userID string) (string, error) {
	return m.issue(userID, m.refreshSecret, m.refreshExpiry)
}

// VerifyAccessToken validates an access token and returns the user ID it
// carries. Fails with ErrTokenExpired past expiry and ErrTokenMalformed for
// an invalid signature or structure.
func (m *TokenManager) VerifyAccessToken(tokenString string) (string, error) {
	return m.verify(tokenString, m.accessSecret)
}

// VerifyRefreshToken validates a refresh token and returns the user ID it
// carries.
func (m *TokenManager) VerifyRefreshToken(tokenString string) (string, error) {
	return m.verify(tokenString, m.refreshSecret)
}

func (m *TokenManager) issue(userID string, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			Issuer:    "resume-board",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signedToken, nil
}

func (m *TokenManager) verify(tokenString string, secret []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrTokenMalformed
	}

	return claims.UserID, nil
}
