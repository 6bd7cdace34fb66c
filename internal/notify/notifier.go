// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"

	"plan-recommender/internal/common/config"
	"plan-recommender/internal/common/errors"
	"plan-recommender/internal/common/logger"
)

// SESService abstracts email sending for testability.
type SESService interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SNSService abstracts SMS sending for testability.
type SNSService interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

const (
	StatusSent     = "SENT"
	StatusFailed   = "FAILED"
	StatusDisabled = "DISABLED"
)

// BatchSummary carries the numbers reported after a bulk run.
type BatchSummary struct {
	RunID          string
	Source         string
	CustomersTotal int
	CustomersScore int
	Skipped        int
	Rows           int
}

// Result describes the outcome of one delivery channel.
type Result struct {
	NotificationID string
	Channel        string
	Status         string
	Error          string
}

// Notifier reports batch completion over email and SMS. Both channels are
// optional and default to disabled; a channel failure never fails the run.
type Notifier struct {
	cfg      config.NotificationConfig
	ses      SESService
	sns      SNSService
	recorder *errors.Recorder
	logger   logger.Logger
}

func New(cfg config.NotificationConfig, sesSvc SESService, snsSvc SNSService, log logger.Logger) *Notifier {
	return &Notifier{
		cfg:      cfg,
		ses:      sesSvc,
		sns:      snsSvc,
		recorder: errors.NewRecorder(log),
		logger:   log.WithFields(map[string]interface{}{"component": "batch-notifier"}),
	}
}

// Notify delivers the batch summary over every enabled channel and returns
// one result per channel.
func (n *Notifier) Notify(ctx context.Context, summary BatchSummary) []Result {
	return []Result{
		n.notifyEmail(ctx, summary),
		n.notifySMS(ctx, summary),
	}
}

func (n *Notifier) notifyEmail(ctx context.Context, summary BatchSummary) Result {
	result := Result{
		NotificationID: uuid.New().String(),
		Channel:        "email",
	}
	if !n.cfg.Email.Enabled || n.ses == nil {
		result.Status = StatusDisabled
		return result
	}

	subject := fmt.Sprintf("Plan recommendation batch %s completed", summary.RunID)
	body := fmt.Sprintf(
		"Run %s (%s source)\n\nCustomers: %d\nScored: %d\nSkipped: %d\nReport rows: %d\n",
		summary.RunID, summary.Source,
		summary.CustomersTotal, summary.CustomersScore, summary.Skipped, summary.Rows,
	)

	input := &ses.SendEmailInput{
		Source: aws.String(n.cfg.Email.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{n.cfg.Email.ToEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	}

	if _, err := n.ses.SendEmail(ctx, input); err != nil {
		n.recorder.Record("batch-notify", errors.NewNotificationSendFailedError("email", err))
		result.Status = StatusFailed
		result.Error = err.Error()
		return result
	}

	n.logger.Info("batch summary emailed", map[string]interface{}{
		"runId":          summary.RunID,
		"notificationId": result.NotificationID,
		"to":             n.cfg.Email.ToEmail,
	})
	result.Status = StatusSent
	return result
}

func (n *Notifier) notifySMS(ctx context.Context, summary BatchSummary) Result {
	result := Result{
		NotificationID: uuid.New().String(),
		Channel:        "sms",
	}
	if !n.cfg.SMS.Enabled || n.sns == nil {
		result.Status = StatusDisabled
		return result
	}

	message := fmt.Sprintf("Batch %s done: %d scored, %d skipped",
		summary.RunID, summary.CustomersScore, summary.Skipped)

	input := &sns.PublishInput{
		Message:     aws.String(message),
		PhoneNumber: aws.String(n.cfg.SMS.PhoneNumber),
	}

	if _, err := n.sns.Publish(ctx, input); err != nil {
		n.recorder.Record("batch-notify", errors.NewNotificationSendFailedError("sms", err))
		result.Status = StatusFailed
		result.Error = err.Error()
		return result
	}

	n.logger.Info("batch summary sent via sms", map[string]interface{}{
		"runId":          summary.RunID,
		"notificationId": result.NotificationID,
	})
	result.Status = StatusSent
	return result
}
