package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	h := NewPasswordHasher(4) // minimum cost keeps the test fast

	digest, err := h.Hash("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", digest)

	assert.True(t, h.Check("secret1", digest))
	assert.False(t, h.Check("secret2", digest))
	assert.False(t, h.Check("", digest))
}

func TestHashIsSalted(t *testing.T) {
	h := NewPasswordHasher(4)

	d1, err := h.Hash("secret1")
	require.NoError(t, err)
	d2, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2, "each digest embeds a fresh salt")
	assert.True(t, h.Check("secret1", d1))
	assert.True(t, h.Check("secret1", d2))
}

func TestCheckMalformedDigest(t *testing.T) {
	h := NewPasswordHasher(0)
	assert.False(t, h.Check("secret1", "not-a-bcrypt-digest"))
}
