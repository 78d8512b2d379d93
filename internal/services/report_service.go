package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/BradenHooton/barangay/internal/models"
	pkglogger "github.com/BradenHooton/barangay/pkg/logger"
)

// ReportRepository defines the interface for report feed storage
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) (*models.Report, error)
	GetByID(ctx context.Context, id int64) (*models.Report, error)
	List(ctx context.Context) ([]*models.Report, error)
	Delete(ctx context.Context, id int64) error
}

// ReportInput carries the fields a citizen may submit.
type ReportInput struct {
	UserID   int64
	Content  string
	Location string
	ImageURL string
}

// AnnouncementInput carries the fields an admin may post.
type AnnouncementInput struct {
	UserID  int64
	Title   string
	Content string
	Alert   bool
}

// ReportService manages the community feed. Only approved accounts may post.
type ReportService struct {
	reports ReportRepository
	users   UserRepository
	audit   *pkglogger.AuditLogger
	logger  *slog.Logger
}

func NewReportService(reports ReportRepository, users UserRepository, audit *pkglogger.AuditLogger, logger *slog.Logger) *ReportService {
	return &ReportService{
		reports: reports,
		users:   users,
		audit:   audit,
		logger:  logger,
	}
}

// Submit posts a citizen report.
func (s *ReportService) Submit(ctx context.Context, in ReportInput) (*models.Report, error) {
	content := strings.TrimSpace(in.Content)
	if in.UserID <= 0 || content == "" {
		return nil, models.ErrBadRequest
	}

	author, err := s.author(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if !author.IsApproved() {
		return nil, &models.NotApprovedError{Status: author.Status}
	}

	authorType := models.AuthorCitizen
	if author.IsAdmin() {
		authorType = models.AuthorAdmin
	}

	report, err := s.reports.Create(ctx, &models.Report{
		UserID:     author.ID,
		AuthorName: author.FirstName,
		AuthorType: authorType,
		Content:    content,
		Location:   strings.TrimSpace(in.Location),
		ImageURL:   strings.TrimSpace(in.ImageURL),
	})
	if err != nil {
		s.logger.Error("failed to create report", slog.Int64("user_id", author.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return report, nil
}

// Announce posts an admin announcement, optionally flagged as an alert.
func (s *ReportService) Announce(ctx context.Context, in AnnouncementInput) (*models.Report, error) {
	content := strings.TrimSpace(in.Content)
	if in.UserID <= 0 || content == "" {
		return nil, models.ErrBadRequest
	}

	author, err := s.author(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if !author.IsAdmin() {
		return nil, models.ErrForbidden
	}

	report, err := s.reports.Create(ctx, &models.Report{
		UserID:     author.ID,
		AuthorName: author.FirstName,
		AuthorType: models.AuthorAdmin,
		Title:      strings.TrimSpace(in.Title),
		Content:    content,
		Alert:      in.Alert,
	})
	if err != nil {
		s.logger.Error("failed to create announcement", slog.Int64("user_id", author.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return report, nil
}

func (s *ReportService) List(ctx context.Context) ([]*models.Report, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		s.logger.Error("failed to list reports", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return reports, nil
}

// Delete removes a report. The author may always delete it; an admin may
// delete any report only when allowAdmin is set.
func (s *ReportService) Delete(ctx context.Context, reportID, requesterID int64, allowAdmin bool) error {
	if reportID <= 0 || requesterID <= 0 {
		return models.ErrBadRequest
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to load report", slog.Int64("report_id", reportID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	if report.UserID != requesterID {
		if !allowAdmin {
			return models.ErrForbidden
		}
		requester, err := s.author(ctx, requesterID)
		if err != nil {
			return err
		}
		if !requester.IsAdmin() {
			return models.ErrForbidden
		}
	}

	if err := s.reports.Delete(ctx, reportID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete report", slog.Int64("report_id", reportID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.audit.Log(ctx, pkglogger.AuditEvent{
		EventType: pkglogger.EventReportDelete,
		UserID:    requesterID,
		Success:   true,
		Metadata: map[string]string{
			"report_id": strconv.FormatInt(reportID, 10),
			"author_id": strconv.FormatInt(report.UserID, 10),
		},
	})

	return nil
}

func (s *ReportService) author(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to load author", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return user, nil
}
