// internal/notify/notifier.go

// Package notify sends an optional alert when a fresh snapshot contains
// critical gaps. Both channels are off by default; failures are logged
// and never surface to the analysis request.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"skillgap-engine/internal/common/config"
	stderrors "skillgap-engine/internal/common/errors"
	"skillgap-engine/internal/common/logger"
	"skillgap-engine/internal/models"
)

// SESService and SNSService exist so tests can mock the AWS clients.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Notifier struct {
	config    config.NotificationConfig
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

// Recipient is where alerts for a user go.
type Recipient struct {
	Email string
	Phone string
}

// New builds a Notifier. AWS config is only loaded when a channel is
// enabled; a fully disabled notifier is valid and does nothing.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	n := &Notifier{
		config: cfg,
		logger: log.WithFields(map[string]interface{}{"component": "notify"}),
	}

	if !cfg.Email.Enabled && !cfg.SMS.Enabled {
		return n, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	n.sesClient = ses.NewFromConfig(awsCfg)
	n.snsClient = sns.NewFromConfig(awsCfg)

	return n, nil
}

// NotifyCriticalGaps alerts the recipient about a snapshot with critical
// gaps. No-op when the snapshot has none or all channels are disabled.
func (n *Notifier) NotifyCriticalGaps(ctx context.Context, job models.Job, snapshot *models.Snapshot, recipient Recipient) {
	if snapshot.Stats.CriticalGaps == 0 {
		return
	}

	subject := fmt.Sprintf("Skill gap alert: %s at %s", job.Title, job.Company)
	body := buildMessage(job, snapshot)

	if n.config.Email.Enabled && n.sesClient != nil && recipient.Email != "" {
		if err := n.sendEmail(ctx, recipient.Email, subject, body); err != nil {
			n.logger.Warn("email notification failed", map[string]interface{}{
				"jobId": job.ID,
				"error": stderrors.NewNotificationSendFailedError("email", err),
			})
		}
	}

	if n.config.SMS.Enabled && n.snsClient != nil && recipient.Phone != "" && n.meetsSMSThreshold(snapshot) {
		if err := n.sendSMS(ctx, recipient.Phone, subject); err != nil {
			n.logger.Warn("sms notification failed", map[string]interface{}{
				"jobId": job.ID,
				"error": stderrors.NewNotificationSendFailedError("sms", err),
			})
		}
	}
}

// meetsSMSThreshold gates SMS to the configured priority: "P1" means at
// least one critical gap, anything else means any gap.
func (n *Notifier) meetsSMSThreshold(snapshot *models.Snapshot) bool {
	if n.config.SMS.PriorityThreshold == models.PriorityP1 {
		return snapshot.Stats.CriticalGaps > 0
	}
	return snapshot.Stats.TotalGaps > 0
}

func buildMessage(job models.Job, snapshot *models.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your latest analysis for %q at %s found %d gap(s), %d critical.\n\n",
		job.Title, job.Company, snapshot.Stats.TotalGaps, snapshot.Stats.CriticalGaps)

	for _, gap := range snapshot.Gaps {
		if gap.Priority != models.PriorityP1 {
			continue
		}
		fmt.Fprintf(&b, "- %s\n", gap.Summary)
	}

	fmt.Fprintf(&b, "\nSuggested plan: %.0f hours across %d step(s).\n",
		snapshot.LearningPlan.TotalHours, len(snapshot.LearningPlan.Steps))
	return b.String()
}

func (n *Notifier) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.config.Email.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	return err
}

func (n *Notifier) sendSMS(ctx context.Context, phone, message string) error {
	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	})
	return err
}
