package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerifySameWindow(t *testing.T) {
	e := NewEngine()
	now := time.Unix(1700000000, 0)

	code, err := e.generateAt("+998901234567", "lorem", now)
	require.NoError(t, err)
	require.Len(t, code, 6)

	assert.True(t, e.verifyAt("+998901234567", "lorem", code, now))
}

func TestVerifyRejectsWrongPurposeSalt(t *testing.T) {
	e := NewEngine()
	now := time.Unix(1700000000, 0)

	code, err := e.generateAt("a@x.com", "email", now)
	require.NoError(t, err)

	assert.False(t, e.verifyAt("a@x.com", "lorem", code, now), "code must be scoped to its purpose")
	assert.False(t, e.verifyAt("b@x.com", "email", code, now), "code must be scoped to its identifier")
}

func TestVerifyAcceptsAdjacentWindow(t *testing.T) {
	e := NewEngine()
	now := time.Unix(1700000000, 0)

	code, err := e.generateAt("+998901234567", "lorem", now)
	require.NoError(t, err)

	assert.True(t, e.verifyAt("+998901234567", "lorem", code, now.Add(30*time.Second)))
}

func TestVerifyRejectsExpiredWindow(t *testing.T) {
	e := NewEngine()
	now := time.Unix(1700000000, 0)

	code, err := e.generateAt("+998901234567", "lorem", now)
	require.NoError(t, err)

	// Two full windows later the code is outside the skew tolerance.
	assert.False(t, e.verifyAt("+998901234567", "lorem", code, now.Add(90*time.Second)))
}

func TestVerifyRejectsMalformedCode(t *testing.T) {
	e := NewEngine()
	now := time.Unix(1700000000, 0)

	assert.False(t, e.verifyAt("+998901234567", "lorem", "abcdef", now))
	assert.False(t, e.verifyAt("+998901234567", "lorem", "", now))
	assert.False(t, e.verifyAt("+998901234567", "lorem", "12345", now))
}
