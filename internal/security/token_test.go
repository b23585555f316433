package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("unit-test-secret-of-sufficient-length")

	t.Run("AccessToken", func(t *testing.T) {
		token, err := m.GenerateAccessToken(42, "crew@example.com", true)
		assert.NoError(t, err)

		claims, err := m.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), claims.UserID)
		assert.Equal(t, "crew@example.com", claims.Email)
		assert.Equal(t, TokenTypeAccess, claims.Type)
		assert.True(t, claims.IsAdmin)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("RefreshToken", func(t *testing.T) {
		token, err := m.GenerateRefreshToken(42, "crew@example.com")
		assert.NoError(t, err)

		claims, err := m.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.Type)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("EmailVerifyToken", func(t *testing.T) {
		token, err := m.GenerateEmailVerifyToken(42, "crew@example.com")
		assert.NoError(t, err)

		claims, err := m.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, TokenTypeEmailVerify, claims.Type)
	})
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	issuer := NewTokenManager("unit-test-secret-of-sufficient-length")
	verifier := NewTokenManager("a-completely-different-secret-value")

	token, err := issuer.GenerateAccessToken(42, "crew@example.com", false)
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	m := NewTokenManager("unit-test-secret-of-sufficient-length")
	_, err := m.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
