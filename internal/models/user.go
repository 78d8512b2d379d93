package models

import (
	"strings"
	"time"
)

// Account approval states. The legacy value "reject" is folded into StatusRejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approve"
	StatusRejected = "rejected"

	legacyStatusReject = "reject"
)

// Privilege classes. RoleStaff exists in the schema but no operation grants it anything.
const (
	RoleAdmin   = "admin"
	RoleCitizen = "citizen"
	RoleStaff   = "staff"
)

type User struct {
	ID           int64
	FirstName    string
	Email        string
	PasswordHash string
	Status       string
	Role         string
	CreatedAt    time.Time
}

// IsApproved reports whether the account may use citizen login.
func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ParseStatus maps user input onto a canonical status value.
func ParseStatus(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected, legacyStatusReject:
		return StatusRejected, nil
	default:
		return "", ErrInvalidStatus
	}
}
