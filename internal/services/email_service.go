package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/BradenHooton/barangay/internal/models"
	pkglogger "github.com/BradenHooton/barangay/pkg/logger"
)

// Notifier tells an account holder that an admin decided on their signup.
type Notifier interface {
	NotifyDecision(ctx context.Context, user *models.User) error
}

// SESAPI is the subset of the SES client used for sending mail.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESNotifier sends decision e-mails using AWS SES
type SESNotifier struct {
	client      SESAPI
	fromAddress string
	logger      *slog.Logger
}

// NewSESNotifier loads the default AWS credential chain for region.
func NewSESNotifier(ctx context.Context, region, fromAddress string, logger *slog.Logger) (*SESNotifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewSESNotifierWithClient(ses.NewFromConfig(cfg), fromAddress, logger), nil
}

func NewSESNotifierWithClient(client SESAPI, fromAddress string, logger *slog.Logger) *SESNotifier {
	return &SESNotifier{
		client:      client,
		fromAddress: fromAddress,
		logger:      logger,
	}
}

func (n *SESNotifier) NotifyDecision(ctx context.Context, user *models.User) error {
	subject, body, ok := decisionMessage(user)
	if !ok {
		return nil
	}

	input := &ses.SendEmailInput{
		Source: aws.String(n.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{user.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
	}

	result, err := n.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	messageID := ""
	if result != nil && result.MessageId != nil {
		messageID = *result.MessageId
	}

	n.logger.Info("decision email sent",
		slog.String("email", pkglogger.SanitizedEmail(user.Email)),
		slog.String("status", user.Status),
		slog.String("message_id", messageID))

	return nil
}

// LogNotifier records decisions in the log when no mail sender is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyDecision(ctx context.Context, user *models.User) error {
	subject, _, ok := decisionMessage(user)
	if !ok {
		return nil
	}

	n.logger.InfoContext(ctx, "decision notification (mail disabled)",
		slog.Int64("user_id", user.ID),
		slog.String("email", pkglogger.SanitizedEmail(user.Email)),
		slog.String("subject", subject))
	return nil
}

// decisionMessage builds the plain-text mail for approve and rejected.
// Other statuses produce no message.
func decisionMessage(user *models.User) (subject, body string, ok bool) {
	switch user.Status {
	case models.StatusApproved:
		subject = "Your barangay account has been approved"
		body = fmt.Sprintf(`Hello %s,

Your account has been approved by a barangay administrator. You can now log in and submit reports.

This is an automated message. Please do not reply to this email.
`, user.FirstName)
	case models.StatusRejected:
		subject = "Your barangay account request was not approved"
		body = fmt.Sprintf(`Hello %s,

An administrator reviewed your registration and did not approve it. Please visit the barangay hall if you believe this is a mistake.

This is an automated message. Please do not reply to this email.
`, user.FirstName)
	default:
		return "", "", false
	}

	return subject, body, true
}
