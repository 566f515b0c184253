// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/blog-api/internal/config"
	"github.com/angelamos/blog-api/internal/core"
)

func newTestTokenManager(t *testing.T, secret string) *TokenManager {
	t.Helper()

	tm, err := NewTokenManager(config.JWTConfig{
		Secret:   secret,
		Issuer:   "blog-api-test",
		Audience: "blog-test-clients",
	})
	require.NoError(t, err)

	return tm
}

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager(t, testSecret)

	token, err := tm.Issue("user-123", "Author", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "Author", claims.Role)
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := newTestTokenManager(t, testSecret)

	token, err := tm.Issue("user-123", "Reader", -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyWrongKey(t *testing.T) {
	tm := newTestTokenManager(t, testSecret)
	other := newTestTokenManager(t, "ffffffffffffffffffffffffffffffff")

	token, err := other.Issue("user-123", "Reader", time.Hour)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyGarbage(t *testing.T) {
	tm := newTestTokenManager(t, testSecret)

	_, err := tm.Verify("not.a.token")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}
