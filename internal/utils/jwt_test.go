package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseJWT(t *testing.T) {
	token, err := SignJWT("test-secret", "user-123", "partner", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "partner", claims.Role)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := SignJWT("test-secret", "user-123", "client", 60)
	require.NoError(t, err)

	_, err = ParseJWT("other-secret", token)
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := SignJWT("test-secret", "user-123", "client", -1)
	require.NoError(t, err)

	_, err = ParseJWT("test-secret", token)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("test-secret", "not.a.token")
	assert.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}
