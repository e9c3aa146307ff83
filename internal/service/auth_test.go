package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunewave/tunewave/internal/authz"
	"github.com/tunewave/tunewave/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", 30*time.Minute)

	token, err := m.CreateToken(authz.Principal{UserID: 42, Role: models.RoleAnalyst})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded := m.VerifyToken(token)
	require.NotNil(t, decoded)
	assert.Equal(t, int64(42), decoded.UserID)
	assert.Equal(t, models.RoleAnalyst, decoded.Role)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)

	token, err := m.CreateToken(authz.Principal{UserID: 1, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Nil(t, m.VerifyToken(token))
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	other := NewTokenManager("different", time.Minute)

	token, err := m.CreateToken(authz.Principal{UserID: 1, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Nil(t, other.VerifyToken(token))
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	assert.Nil(t, m.VerifyToken(""))
	assert.Nil(t, m.VerifyToken("not.a.token"))
}

func TestPasswordHashAndVerify(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)

	hash, err := m.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, m.VerifyPassword("hunter2", hash))
	assert.False(t, m.VerifyPassword("hunter3", hash))
}
