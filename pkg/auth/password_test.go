package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)

	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "password123", hash, "hash should not equal plaintext password")

	assert.NoError(t, h.Compare(hash, "password123"))
	assert.ErrorIs(t, h.Compare(hash, "password124"), ErrPasswordMismatch)
}

func TestHash_IsSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("admin123")
	require.NoError(t, err)
	second, err := h.Hash("admin123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same password must not produce the same hash")
}

func TestHash_RejectsEmptyAndOversized(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	_, err := h.Hash("")
	assert.Error(t, err)

	_, err = h.Hash(strings.Repeat("a", MaxPasswordLen+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	// 40 runes, 80 bytes
	_, err = h.Hash(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestCompare_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	err := h.Compare("not-a-bcrypt-hash", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestNewHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, BcryptCost, NewHasher(0).cost)
	assert.Equal(t, BcryptCost, NewHasher(99).cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(bcrypt.MinCost).cost)
}

func TestGenerateTokenKey(t *testing.T) {
	a, err := GenerateTokenKey()
	require.NoError(t, err)
	b, err := GenerateTokenKey()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44) // base64 of 32 bytes
}
