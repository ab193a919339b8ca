package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewTokenManager_RequiresSecrets(t *testing.T) {
	_, err := NewTokenManager("", "refresh", time.Hour, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager("access", "", time.Hour, time.Hour)
	assert.Error(t, err)
}

func TestTokenManager_AccessTokenRoundTrip(t *testing.T) {
	m := newTestManager(t)

	token, err := m.IssueAccessToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenManager_RefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager(t)

	token, err := m.IssueRefreshToken("user-456")
	require.NoError(t, err)

	userID, err := m.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-456", userID)
}

func TestTokenManager_TokenKindsDoNotCrossVerify(t *testing.T) {
	m := newTestManager(t)

	access, err := m.IssueAccessToken("user-123")
	require.NoError(t, err)
	refresh, err := m.IssueRefreshToken("user-123")
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = m.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	m, err := NewTokenManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	require.NoError(t, err)

	token, err := m.IssueAccessToken("user-123")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	m := newTestManager(t)

	other, err := NewTokenManager("different-secret", "refresh-secret", time.Hour, time.Hour)
	require.NoError(t, err)

	token, err := other.IssueAccessToken("user-123")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenManager_MalformedToken(t *testing.T) {
	m := newTestManager(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := m.VerifyAccessToken(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}
