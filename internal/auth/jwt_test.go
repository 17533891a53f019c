package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", 15, 7)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, exp, err := m.GenerateAccessToken("user-1", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, exp, err := m.GenerateRefreshToken("user-1", "user")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 5*time.Second)

	claims, err := m.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestCrossTokenTypeRejected(t *testing.T) {
	m := newTestManager()

	access, _, err := m.GenerateAccessToken("user-1", "user")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken("user-1", "user")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAudienceCheckedEvenWithSharedSecret(t *testing.T) {
	// Defense in depth: with identical secrets the audience claim still
	// separates the two token types.
	m := NewJWTManager("same", "same", 15, 7)

	refresh, _, err := m.GenerateRefreshToken("user-1", "user")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := &JWTManager{
		accessSecret:  []byte("access-secret"),
		refreshSecret: []byte("refresh-secret"),
		accessTTL:     -time.Minute,
		refreshTTL:    7 * 24 * time.Hour,
	}

	token, _, err := m.GenerateAccessToken("user-1", "user")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestGarbageTokenRejected(t *testing.T) {
	m := newTestManager()

	_, err := m.VerifyAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyAccessToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	m := newTestManager()
	other := NewJWTManager("different", "different", 15, 7)

	token, _, err := other.GenerateAccessToken("user-1", "user")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
