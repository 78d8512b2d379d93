package logger

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Audit event types
const (
	EventSignup       = "signup"
	EventCitizenLogin = "citizen_login"
	EventAdminLogin   = "admin_login"
	EventApprove      = "approve"
	EventReject       = "reject"
	EventSetStatus    = "set_status"
	EventReportDelete = "report_delete"
)

// AuditEvent represents a security audit event
type AuditEvent struct {
	EventType     string
	UserID        int64
	Email         string
	IPAddress     string
	Success       bool
	FailureReason string
	Metadata      map[string]string
}

// AuditLogger writes audit records through slog. Emails are always masked.
type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger,
	}
}

// Log emits one audit record. Failures are logged at warn level.
func (al *AuditLogger) Log(ctx context.Context, event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_id", uuid.NewString()),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.UserID != 0 {
		attrs = append(attrs, slog.String("user_id", strconv.FormatInt(event.UserID, 10)))
	}
	if event.Email != "" {
		attrs = append(attrs, slog.String("email", SanitizedEmail(event.Email)))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}
	for key, val := range event.Metadata {
		attrs = append(attrs, slog.String(key, val))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(ctx, level, "audit", attrs...)
}

// LogStatusChange records an approval decision made by an administrator.
func (al *AuditLogger) LogStatusChange(ctx context.Context, eventType string, userID int64, from, to string, affected int64) {
	al.Log(ctx, AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Success:   true,
		Metadata: map[string]string{
			"from_status":   from,
			"to_status":     to,
			"affected_rows": strconv.FormatInt(affected, 10),
		},
	})
}
