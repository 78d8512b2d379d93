package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost     = 12
	TokenKeyLength = 32 // 256 bits

	// MaxPasswordLen is bcrypt's input limit; longer secrets would be silently truncated.
	MaxPasswordLen = 72
)

var (
	// ErrPasswordMismatch is returned when a secret does not match its stored hash.
	ErrPasswordMismatch = errors.New("password does not match")
	ErrPasswordTooLong  = fmt.Errorf("password exceeds %d bytes", MaxPasswordLen)
)

// Hasher hashes and verifies account secrets.
type Hasher struct {
	cost int
}

// NewHasher returns a bcrypt hasher. A cost outside bcrypt's range falls back to BcryptCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = BcryptCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	if len(password) > MaxPasswordLen {
		return "", ErrPasswordTooLong
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Compare checks password against hashedPassword in constant time.
func (h *Hasher) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// HashPassword hashes with the default cost.
func HashPassword(password string) (string, error) {
	return NewHasher(BcryptCost).Hash(password)
}

// GenerateTokenKey returns a random base64 secret, used when no JWT secret is configured.
func GenerateTokenKey() (string, error) {
	bytes := make([]byte, TokenKeyLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}
