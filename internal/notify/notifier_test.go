// internal/notify/notifier_test.go
package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillgap-engine/internal/common/config"
	"skillgap-engine/internal/common/logger"
	"skillgap-engine/internal/models"
)

type mockSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (m *mockSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

type mockSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *mockSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

func newTestNotifier(cfg config.NotificationConfig, sesMock *mockSES, snsMock *mockSNS) *Notifier {
	n := &Notifier{
		config: cfg,
		logger: logger.NewNoOpLogger(),
	}
	if sesMock != nil {
		n.sesClient = sesMock
	}
	if snsMock != nil {
		n.snsClient = snsMock
	}
	return n
}

func criticalSnapshot() *models.Snapshot {
	return &models.Snapshot{
		SnapshotID: "snap-1",
		Gaps: []models.Gap{
			{SkillName: "TypeScript", Priority: models.PriorityP1, Summary: "TypeScript: requires Expert (level 4), you are at None (level 0)"},
			{SkillName: "React", Priority: models.PriorityP2, Summary: "React: requires Expert (level 4), you are at Intermediate (level 2)"},
		},
		LearningPlan: models.LearningPlan{
			TotalHours: 26,
			Steps:      []models.PlanStep{{SkillName: "TypeScript"}, {SkillName: "React"}},
		},
		Stats: models.Stats{TotalGaps: 2, CriticalGaps: 1, HighPriorityGaps: 1},
	}
}

var testJob = models.Job{ID: "job-1", Title: "Senior Frontend Engineer", Company: "Acme"}

func TestNewDisabledNotifier(t *testing.T) {
	n, err := New(context.Background(), config.NotificationConfig{}, logger.NewNoOpLogger())

	require.NoError(t, err)
	assert.Nil(t, n.sesClient)
	assert.Nil(t, n.snsClient)

	// Disabled notifier swallows everything without touching AWS.
	n.NotifyCriticalGaps(context.Background(), testJob, criticalSnapshot(), Recipient{Email: "a@b.c", Phone: "+15550100"})
}

func TestNotifySkipsWhenNoCriticalGaps(t *testing.T) {
	sesMock := &mockSES{}
	n := newTestNotifier(config.NotificationConfig{
		Email: config.EmailConfig{Enabled: true, FromEmail: "alerts@example.com"},
	}, sesMock, nil)

	snapshot := &models.Snapshot{Stats: models.Stats{TotalGaps: 3, CriticalGaps: 0}}
	n.NotifyCriticalGaps(context.Background(), testJob, snapshot, Recipient{Email: "user@example.com"})

	assert.Empty(t, sesMock.inputs)
}

func TestNotifySendsEmail(t *testing.T) {
	sesMock := &mockSES{}
	n := newTestNotifier(config.NotificationConfig{
		Email: config.EmailConfig{Enabled: true, FromEmail: "alerts@example.com"},
	}, sesMock, nil)

	n.NotifyCriticalGaps(context.Background(), testJob, criticalSnapshot(), Recipient{Email: "user@example.com"})

	require.Len(t, sesMock.inputs, 1)
	input := sesMock.inputs[0]
	assert.Equal(t, "alerts@example.com", *input.Source)
	require.Len(t, input.Destination.ToAddresses, 1)
	assert.Equal(t, "user@example.com", input.Destination.ToAddresses[0])
	assert.Contains(t, *input.Message.Subject.Data, "Senior Frontend Engineer")

	body := *input.Message.Body.Text.Data
	assert.Contains(t, body, "2 gap(s), 1 critical")
	assert.Contains(t, body, "TypeScript")
	// Only critical gaps are itemized.
	assert.NotContains(t, body, "React: requires")
	assert.Contains(t, body, "26 hours across 2 step(s)")
}

func TestNotifySkipsEmailWithoutRecipient(t *testing.T) {
	sesMock := &mockSES{}
	n := newTestNotifier(config.NotificationConfig{
		Email: config.EmailConfig{Enabled: true, FromEmail: "alerts@example.com"},
	}, sesMock, nil)

	n.NotifyCriticalGaps(context.Background(), testJob, criticalSnapshot(), Recipient{})

	assert.Empty(t, sesMock.inputs)
}

func TestNotifySendsSMS(t *testing.T) {
	snsMock := &mockSNS{}
	n := newTestNotifier(config.NotificationConfig{
		SMS: config.SMSConfig{Enabled: true, PriorityThreshold: models.PriorityP1},
	}, nil, snsMock)

	n.NotifyCriticalGaps(context.Background(), testJob, criticalSnapshot(), Recipient{Phone: "+15550100"})

	require.Len(t, snsMock.inputs, 1)
	assert.Equal(t, "+15550100", *snsMock.inputs[0].PhoneNumber)
	assert.Contains(t, *snsMock.inputs[0].Message, "Skill gap alert")
}

func TestNotifyErrorsAreSwallowed(t *testing.T) {
	sesMock := &mockSES{err: fmt.Errorf("ses throttled")}
	snsMock := &mockSNS{err: fmt.Errorf("sns unavailable")}
	n := newTestNotifier(config.NotificationConfig{
		Email: config.EmailConfig{Enabled: true, FromEmail: "alerts@example.com"},
		SMS:   config.SMSConfig{Enabled: true, PriorityThreshold: models.PriorityP1},
	}, sesMock, snsMock)

	// Must not panic or propagate; both channels were attempted.
	n.NotifyCriticalGaps(context.Background(), testJob, criticalSnapshot(), Recipient{Email: "u@e.com", Phone: "+15550100"})

	assert.Len(t, sesMock.inputs, 1)
	assert.Len(t, snsMock.inputs, 1)
}

func TestMeetsSMSThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold string
		stats     models.Stats
		expected  bool
	}{
		{"p1 threshold with critical gap", models.PriorityP1, models.Stats{TotalGaps: 2, CriticalGaps: 1}, true},
		{"p1 threshold without critical gap", models.PriorityP1, models.Stats{TotalGaps: 2}, false},
		{"relaxed threshold with any gap", models.PriorityP2, models.Stats{TotalGaps: 1}, true},
		{"relaxed threshold without gaps", models.PriorityP2, models.Stats{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNotifier(config.NotificationConfig{
				SMS: config.SMSConfig{Enabled: true, PriorityThreshold: tt.threshold},
			}, nil, &mockSNS{})

			assert.Equal(t, tt.expected, n.meetsSMSThreshold(&models.Snapshot{Stats: tt.stats}))
		})
	}
}
