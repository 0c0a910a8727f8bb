package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 15*time.Minute)

	token, err := tm.GenerateAccessToken("user-123")
	require.NoError(t, err)

	claims, err := tm.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestAccessTokenExpiry(t *testing.T) {
	tm := NewTokenManager("secret", -time.Minute)

	token, err := tm.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = tm.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret", 15*time.Minute)
	other := NewTokenManager("different", 15*time.Minute)

	token, err := tm.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = tm.ParseAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHasAnyRole(t *testing.T) {
	roles := []string{RoleUser, RoleTechWriter}

	assert.True(t, HasAnyRole(roles, RoleTechWriter))
	assert.True(t, HasAnyRole(roles, RoleAdmin, RoleTechWriter))
	assert.False(t, HasAnyRole(roles, RoleAdmin))
	assert.False(t, HasAnyRole(nil, RoleUser))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))

	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long-enough-pass"))
}
