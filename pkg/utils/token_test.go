package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func TestGenerateTokenPair_AccessClaims(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	pair, err := GenerateTokenPair(userID, "alice", "member", testSecret, 30*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int((30 * time.Minute).Seconds()), pair.ExpiresIn)

	claims, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "member", claims.Role)
	assert.False(t, claims.IsRefresh())

	parsedID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)

	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerateTokenPair_RefreshTokenIsMarked(t *testing.T) {
	t.Parallel()

	pair, err := GenerateTokenPair(uuid.New(), "alice", "member", testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(pair.RefreshToken, testSecret)
	require.NoError(t, err)
	assert.True(t, claims.IsRefresh())

	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	pair, err := GenerateTokenPair(uuid.New(), "alice", "member", testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(pair.AccessToken, "a-different-secret")
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	pair, err := GenerateTokenPair(uuid.New(), "alice", "member", testSecret, -time.Minute, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(pair.AccessToken, testSecret)
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Parallel()

	claims, err := ValidateToken("not-a-valid-jwt", testSecret)
	require.Error(t, err)
	assert.Nil(t, claims)
}
