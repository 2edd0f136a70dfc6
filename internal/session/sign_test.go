package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSigning(t *testing.T) {
	const secret = "test-secret"

	t.Run("round trip", func(t *testing.T) {
		signed := SignToken(secret, "abc-123")
		token, ok := VerifyToken(secret, signed)
		require.True(t, ok)
		assert.Equal(t, "abc-123", token)
	})

	t.Run("tampered signature fails", func(t *testing.T) {
		signed := SignToken(secret, "abc-123")
		_, ok := VerifyToken(secret, signed+"0")
		assert.False(t, ok)
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		signed := SignToken(secret, "abc-123")
		_, ok := VerifyToken("other-secret", signed)
		assert.False(t, ok)
	})

	t.Run("value without a signature fails", func(t *testing.T) {
		_, ok := VerifyToken(secret, "abc-123")
		assert.False(t, ok)
	})
}
