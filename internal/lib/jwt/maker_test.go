package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("uid-1", "user@unesc.net", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UserID)
	assert.Equal(t, "user@unesc.net", claims.Email)
	assert.Equal(t, "admin", claims.Level)

	expiresIn := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, expiresIn, 59*time.Minute)
	assert.LessOrEqual(t, expiresIn, time.Hour)
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := NewMaker("secret-a", time.Hour)
	token, err := maker.GenerateToken("uid-1", "user@unesc.net", "user")
	require.NoError(t, err)

	other := NewMaker("secret-b", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	maker := NewMaker("test-secret", -time.Minute)
	token, err := maker.GenerateToken("uid-1", "user@unesc.net", "user")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)
	_, err := maker.ParseToken("not-a-token")
	assert.Error(t, err)
}
