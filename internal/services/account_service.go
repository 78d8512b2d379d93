package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BradenHooton/barangay/internal/auth"
	"github.com/BradenHooton/barangay/internal/models"
	pkgauth "github.com/BradenHooton/barangay/pkg/auth"
	pkglogger "github.com/BradenHooton/barangay/pkg/logger"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateStatus(ctx context.Context, id int64, status string) (int64, error)
	ListByStatus(ctx context.Context, status string) ([]*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

// PasswordHasher hashes and verifies account secrets.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

// AccountService handles signup and both login flows.
type AccountService struct {
	repo   UserRepository
	hasher PasswordHasher
	timing *auth.TimingDelay
	audit  *pkglogger.AuditLogger
	logger *slog.Logger

	// dummyHash is compared against when the email is unknown so every
	// failure path pays for one bcrypt comparison.
	dummyHash string
}

func NewAccountService(repo UserRepository, hasher PasswordHasher, timing *auth.TimingDelay, audit *pkglogger.AuditLogger, logger *slog.Logger) (*AccountService, error) {
	dummyHash, err := hasher.Hash("timing-equalizer-not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &AccountService{
		repo:      repo,
		hasher:    hasher,
		timing:    timing,
		audit:     audit,
		logger:    logger,
		dummyHash: dummyHash,
	}, nil
}

// Signup registers a citizen account awaiting approval and returns its id.
func (s *AccountService) Signup(ctx context.Context, fullName, email, password string) (int64, error) {
	if fullName == "" || email == "" || password == "" {
		return 0, models.ErrBadRequest
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgauth.ErrPasswordTooLong) {
			return 0, models.ErrBadRequest
		}
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return 0, models.ErrInternalServer
	}

	user, err := s.repo.Create(ctx, &models.User{
		FirstName:    fullName,
		Email:        email,
		PasswordHash: hash,
		Status:       models.StatusPending,
		Role:         models.RoleCitizen,
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			s.audit.Log(ctx, pkglogger.AuditEvent{EventType: pkglogger.EventSignup, Email: email, FailureReason: "duplicate_email"})
			return 0, models.ErrDuplicateEmail
		}
		s.logger.Error("registration failed", slog.String("email", pkglogger.SanitizedEmail(email)), slog.Any("error", err))
		return 0, models.ErrInternalServer
	}

	s.audit.Log(ctx, pkglogger.AuditEvent{EventType: pkglogger.EventSignup, UserID: user.ID, Email: email, Success: true})
	return user.ID, nil
}

// CitizenLogin checks credentials and the approval gate, in that order.
func (s *AccountService) CitizenLogin(ctx context.Context, email, password, ipAddress string) (*models.User, error) {
	start := time.Now()

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.lookupFailed(ctx, start, pkglogger.EventCitizenLogin, email, password, ipAddress, err)
	}

	if err := s.verifyPassword(user, password); err != nil {
		s.fail(ctx, start, pkglogger.EventCitizenLogin, user.ID, email, ipAddress, "incorrect_password")
		return nil, err
	}

	if !user.IsApproved() {
		s.fail(ctx, start, pkglogger.EventCitizenLogin, user.ID, email, ipAddress, "not_approved")
		return nil, &models.NotApprovedError{Status: user.Status}
	}

	s.succeed(ctx, start, pkglogger.EventCitizenLogin, user, ipAddress)
	return user, nil
}

// AdminLogin authenticates an admin account. Approval status is not consulted.
func (s *AccountService) AdminLogin(ctx context.Context, email, password, ipAddress string) (*models.User, error) {
	start := time.Now()

	user, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, s.lookupFailed(ctx, start, pkglogger.EventAdminLogin, email, password, ipAddress, err)
	}

	if err := s.verifyPassword(user, password); err != nil {
		s.fail(ctx, start, pkglogger.EventAdminLogin, user.ID, email, ipAddress, "incorrect_password")
		return nil, err
	}

	s.succeed(ctx, start, pkglogger.EventAdminLogin, user, ipAddress)
	return user, nil
}

// EnsureAdmin creates an approved admin account unless the email already exists.
func (s *AccountService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	created, err := s.repo.CreateIfAbsent(ctx, &models.User{
		FirstName:    name,
		Email:        email,
		PasswordHash: hash,
		Status:       models.StatusApproved,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	return created, nil
}

func (s *AccountService) verifyPassword(user *models.User, password string) error {
	err := s.hasher.Compare(user.PasswordHash, password)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pkgauth.ErrPasswordMismatch) {
		s.logger.Error("stored password hash unusable", slog.Int64("user_id", user.ID), slog.Any("error", err))
	}
	return models.ErrInvalidCredential
}

func (s *AccountService) lookupFailed(ctx context.Context, start time.Time, event, email, password, ipAddress string, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		_ = s.hasher.Compare(s.dummyHash, password)
		s.fail(ctx, start, event, 0, email, ipAddress, "not_found")
		return models.ErrNotFound
	}

	s.logger.Error("login lookup failed", slog.String("event", event), slog.Any("error", err))
	return models.ErrInternalServer
}

func (s *AccountService) fail(ctx context.Context, start time.Time, event string, userID int64, email, ipAddress, reason string) {
	s.audit.Log(ctx, pkglogger.AuditEvent{
		EventType:     event,
		UserID:        userID,
		Email:         email,
		IPAddress:     ipAddress,
		FailureReason: reason,
	})
	s.timing.WaitFrom(ctx, start, false)
}

func (s *AccountService) succeed(ctx context.Context, start time.Time, event string, user *models.User, ipAddress string) {
	s.audit.Log(ctx, pkglogger.AuditEvent{
		EventType: event,
		UserID:    user.ID,
		Email:     user.Email,
		IPAddress: ipAddress,
		Success:   true,
	})
	s.timing.WaitFrom(ctx, start, true)
}
