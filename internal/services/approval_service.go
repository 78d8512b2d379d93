package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BradenHooton/barangay/internal/models"
	pkglogger "github.com/BradenHooton/barangay/pkg/logger"
)

// StatusChange is the outcome of an approve or reject decision.
type StatusChange struct {
	User         *models.User
	AffectedRows int64
	StatusUsed   string
}

// ApprovalService moves citizen accounts through pending -> approve | rejected.
type ApprovalService struct {
	repo     UserRepository
	notifier Notifier
	audit    *pkglogger.AuditLogger
	logger   *slog.Logger
}

func NewApprovalService(repo UserRepository, notifier Notifier, audit *pkglogger.AuditLogger, logger *slog.Logger) *ApprovalService {
	return &ApprovalService{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		logger:   logger,
	}
}

// ListPending returns accounts awaiting a decision, newest first.
func (s *ApprovalService) ListPending(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.ListByStatus(ctx, models.StatusPending)
	if err != nil {
		s.logger.Error("failed to fetch pending users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Debug("fetched pending users", slog.Int("count", len(users)))
	return users, nil
}

// Approve marks the account approved and notifies the citizen when the row changed.
func (s *ApprovalService) Approve(ctx context.Context, userID int64) (*StatusChange, error) {
	return s.decide(ctx, userID, models.StatusApproved, pkglogger.EventApprove)
}

// Reject marks the account rejected and notifies the citizen when the row changed.
func (s *ApprovalService) Reject(ctx context.Context, userID int64) (*StatusChange, error) {
	return s.decide(ctx, userID, models.StatusRejected, pkglogger.EventReject)
}

// decide checks the account exists, writes the status and re-reads the row.
// Repeating a decision succeeds with zero affected rows.
func (s *ApprovalService) decide(ctx context.Context, userID int64, status, event string) (*StatusChange, error) {
	if userID <= 0 {
		return nil, models.ErrBadRequest
	}

	before, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to load user for decision", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, err
	}

	affected, err := s.repo.UpdateStatus(ctx, userID, status)
	if err != nil {
		s.logger.Error("failed to update user status",
			slog.Int64("user_id", userID),
			slog.String("status", status),
			slog.Any("error", err),
		)
		return nil, err
	}

	if affected == 0 {
		s.logger.Info("status already set, no rows changed", slog.Int64("user_id", userID), slog.String("status", status))
	}

	after, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to re-read user after decision", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, err
	}

	s.audit.LogStatusChange(ctx, event, userID, before.Status, after.Status, affected)

	if affected > 0 && s.notifier != nil {
		if err := s.notifier.NotifyDecision(ctx, after); err != nil {
			s.logger.Warn("failed to send decision notification", slog.Int64("user_id", userID), slog.Any("error", err))
		}
	}

	return &StatusChange{User: after, AffectedRows: affected, StatusUsed: status}, nil
}

// SetStatus writes any canonical status directly. Unknown ids affect zero rows.
func (s *ApprovalService) SetStatus(ctx context.Context, userID int64, newStatus string) (int64, error) {
	if userID <= 0 {
		return 0, models.ErrBadRequest
	}

	status, err := models.ParseStatus(newStatus)
	if err != nil {
		return 0, err
	}

	affected, err := s.repo.UpdateStatus(ctx, userID, status)
	if err != nil {
		s.logger.Error("manual status update failed", slog.Int64("user_id", userID), slog.Any("error", err))
		return 0, err
	}

	s.audit.LogStatusChange(ctx, pkglogger.EventSetStatus, userID, "", status, affected)
	return affected, nil
}
