package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeAdminSession marks tokens issued by admin login.
const TokenTypeAdminSession = "admin_session"

type TokenClaims struct {
	Type   string `json:"type"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
