package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starwash-api/internal/pkg/password"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, password.Verify("secret123", hash))
	assert.False(t, password.Verify("wrong", hash))
	assert.False(t, password.Verify("secret123", "not-a-hash"))
}

func TestHashToken(t *testing.T) {
	a := password.HashToken("token-a")
	b := password.HashToken("token-b")

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, password.HashToken("token-a"), "deterministic")
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, password.ValidatePassword("12345678"))
	assert.False(t, password.ValidatePassword("1234567"))
	assert.False(t, password.ValidatePassword(""))
}
