package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/BradenHooton/barangay/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager issues and validates admin session tokens (HS256).
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Expiry is the lifetime of issued sessions.
func (tm *TokenManager) Expiry() time.Duration {
	return tm.expiry
}

// GenerateAdminSession creates a session token for an admin account.
func (tm *TokenManager) GenerateAdminSession(user *models.User) (string, error) {
	if !user.IsAdmin() {
		return "", fmt.Errorf("user %d is not an admin", user.ID)
	}

	now := time.Now()
	claims := &models.TokenClaims{
		Type:   models.TokenTypeAdminSession,
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin session: %w", err)
	}

	return tokenString, nil
}

// ValidateAdminSession verifies signature, expiry and token type.
func (tm *TokenManager) ValidateAdminSession(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Type != models.TokenTypeAdminSession || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
