package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "correct horse battery stable"))
}

func TestHashPassword_LongPasswordsTruncateAt72Bytes(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 100)
	hash, err := HashPassword(long)
	require.NoError(t, err)

	// Anything sharing the first 72 bytes verifies against the same hash.
	assert.True(t, CheckPassword(hash, long))
	assert.True(t, CheckPassword(hash, strings.Repeat("a", 72)))
	assert.True(t, CheckPassword(hash, strings.Repeat("a", 72)+"different-tail"))
	assert.False(t, CheckPassword(hash, strings.Repeat("a", 71)))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
	assert.False(t, CheckPassword("", "anything"))
}
