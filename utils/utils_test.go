package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, CheckPassword(hash, "hunter2"))
	assert.Error(t, CheckPassword(hash, "hunter3"))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("id-1", "admin@example.com", "admin", "s3cret", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "id-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("id-1", "admin@example.com", "admin", "s3cret", time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "different")
	assert.Error(t, err)
}
