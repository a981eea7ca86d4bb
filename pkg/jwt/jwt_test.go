package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	token, claims, err := GenerateToken(secret, 7, TypeAccess, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)

	parsed, err := ParseToken(secret, TypeAccess, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), parsed.UserID)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestParseRejects(t *testing.T) {
	token, _, err := GenerateToken(secret, 7, "refresh", time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, TypeAccess, token)
	assert.Error(t, err, "wrong type")

	_, err = ParseToken([]byte("other"), "refresh", token)
	assert.Error(t, err, "wrong secret")

	expired, _, err := GenerateToken(secret, 7, TypeAccess, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, TypeAccess, expired)
	assert.Error(t, err, "expired")
}
