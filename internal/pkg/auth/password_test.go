package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("ChangeMe123!")
	require.NoError(t, err)
	require.NotEqual(t, "ChangeMe123!", hash)

	assert.True(t, CheckPassword(hash, "ChangeMe123!"))
	assert.False(t, CheckPassword(hash, "changeme123!"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestCheckPasswordRejectsBadHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "ChangeMe123!"))
}
