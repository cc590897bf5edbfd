package security

import (
	"testing"
	"time"

	"servicehours-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, err := tm.GenerateAccessToken(42, "ana@example.edu", domain.RoleStudent)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "ana@example.edu", claims.Email)
	assert.Equal(t, domain.RoleStudent, claims.Role)

	actor := claims.Actor()
	assert.Equal(t, int32(42), actor.UserID)
	assert.Equal(t, domain.RoleStudent, actor.Role)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("other-secret", 60)

	token, err := tm.GenerateAccessToken(42, "ana@example.edu", domain.RoleStudent)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", 60).(*tokenManager)
	tm.expiry = -time.Minute

	token, err := tm.GenerateAccessToken(42, "ana@example.edu", domain.RoleStudent)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
