package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrBadRequest     = errors.New("bad request")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")

	// Account errors
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrInvalidCredential = errors.New("incorrect password")
	ErrNotApproved       = errors.New("account not approved")
	ErrInvalidStatus     = errors.New("invalid status")
)

// NotApprovedError is returned by citizen login when the account status gate fails.
// It matches ErrNotApproved with errors.Is.
type NotApprovedError struct {
	Status string
}

func (e *NotApprovedError) Error() string {
	return fmt.Sprintf("Account not approved. Status: %s", e.Status)
}

func (e *NotApprovedError) Is(target error) bool {
	return target == ErrNotApproved
}
