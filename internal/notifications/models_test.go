package notifications

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationBuilder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	n := NewNotificationBuilder().
		WithType(NotificationTypeOrderConfirmed).
		WithRecipient(userID, "alice@example.com", "Alice Nguyen").
		WithSubject("Order Confirmed").
		WithTemplateData(map[string]interface{}{"ticket_count": 2}).
		WithOrderContext(orderID).
		Build()

	assert.NotEqual(t, uuid.Nil, n.ID)
	assert.Equal(t, NotificationTypeOrderConfirmed, n.Type)
	assert.Equal(t, NotificationPriorityHigh, n.Priority)
	assert.Equal(t, userID, n.RecipientID)
	assert.Equal(t, "alice@example.com", n.RecipientEmail)
	assert.Equal(t, "Alice Nguyen", n.RecipientName)
	assert.Equal(t, "Order Confirmed", n.Subject)
	assert.Equal(t, 2, n.TemplateData["ticket_count"])
	require.NotNil(t, n.OrderID)
	assert.Equal(t, orderID, *n.OrderID)
	assert.Equal(t, NotificationStatusPending, n.Status)
	assert.Equal(t, 3, n.MaxRetries)
	assert.Equal(t, 0, n.RetryCount)
}

func TestGetDefaultPriority(t *testing.T) {
	tests := []struct {
		notType NotificationType
		want    NotificationPriority
	}{
		{NotificationTypeOrderConfirmed, NotificationPriorityHigh},
		{NotificationTypeOrderCancelled, NotificationPriorityMedium},
		{NotificationTypeWelcome, NotificationPriorityLow},
		{NotificationType("SOMETHING_ELSE"), NotificationPriorityMedium},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetDefaultPriority(tt.notType), "type %s", tt.notType)
	}
}

// Confirmation and cancellation of one order must share a partition key
// so the consumer sees them in the order they were produced.
func TestGetPartitionKey(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	confirmed := NewNotificationBuilder().
		WithType(NotificationTypeOrderConfirmed).
		WithRecipient(userID, "alice@example.com", "Alice").
		WithOrderContext(orderID).
		Build()
	cancelled := NewNotificationBuilder().
		WithType(NotificationTypeOrderCancelled).
		WithRecipient(userID, "alice@example.com", "Alice").
		WithOrderContext(orderID).
		Build()

	assert.Equal(t, orderID.String(), confirmed.GetPartitionKey())
	assert.Equal(t, confirmed.GetPartitionKey(), cancelled.GetPartitionKey())

	welcome := NewNotificationBuilder().
		WithType(NotificationTypeWelcome).
		WithRecipient(userID, "alice@example.com", "Alice").
		Build()

	assert.Equal(t, userID.String(), welcome.GetPartitionKey())
}

func TestRetryLifecycle(t *testing.T) {
	n := NewNotificationBuilder().
		WithType(NotificationTypeWelcome).
		WithMaxRetries(2).
		Build()

	assert.False(t, n.ShouldRetry(), "a pending notification has nothing to retry")

	n.MarkFailed(assert.AnError)
	require.NotNil(t, n.LastError)
	assert.Equal(t, NotificationStatusFailed, n.Status)
	assert.True(t, n.ShouldRetry())

	n.IncrementRetry()
	assert.Equal(t, 1, n.RetryCount)
	assert.Equal(t, NotificationStatusRetrying, n.Status)

	n.MarkFailed(assert.AnError)
	n.IncrementRetry()
	assert.Equal(t, 2, n.RetryCount)
	assert.Equal(t, NotificationStatusExpired, n.Status)
	assert.False(t, n.ShouldRetry())
}

func TestMarkSent(t *testing.T) {
	n := NewNotificationBuilder().WithType(NotificationTypeWelcome).Build()

	before := time.Now()
	n.MarkSent()

	assert.Equal(t, NotificationStatusSent, n.Status)
	require.NotNil(t, n.SentAt)
	assert.False(t, n.SentAt.Before(before))
}

func TestGenerateDefaultContent(t *testing.T) {
	svc := &SMTPEmailService{config: &SMTPConfig{FromEmail: "noreply@skyport.dev", FromName: "Skyport"}}
	orderID := uuid.New()

	t.Run("order confirmed includes order and ticket count", func(t *testing.T) {
		n := NewNotificationBuilder().
			WithType(NotificationTypeOrderConfirmed).
			WithRecipient(uuid.New(), "alice@example.com", "Alice Nguyen").
			WithTemplateData(map[string]interface{}{"ticket_count": 2}).
			WithOrderContext(orderID).
			Build()

		htmlBody, textBody, err := svc.generateDefaultContent(n)
		require.NoError(t, err)
		assert.Contains(t, htmlBody, "Alice Nguyen")
		assert.Contains(t, htmlBody, orderID.String())
		assert.Contains(t, textBody, "Tickets booked: 2")
	})

	t.Run("order cancelled mentions released seats", func(t *testing.T) {
		n := NewNotificationBuilder().
			WithType(NotificationTypeOrderCancelled).
			WithRecipient(uuid.New(), "alice@example.com", "Alice Nguyen").
			WithOrderContext(orderID).
			Build()

		_, textBody, err := svc.generateDefaultContent(n)
		require.NoError(t, err)
		assert.Contains(t, textBody, orderID.String())
		assert.Contains(t, textBody, "seats have been released")
	})

	t.Run("welcome has no order reference", func(t *testing.T) {
		n := NewNotificationBuilder().
			WithType(NotificationTypeWelcome).
			WithRecipient(uuid.New(), "bob@example.com", "Bob").
			Build()

		htmlBody, textBody, err := svc.generateDefaultContent(n)
		require.NoError(t, err)
		assert.Contains(t, htmlBody, "Welcome to Skyport")
		assert.NotContains(t, textBody, "order")
	})
}

func TestBuildMessage(t *testing.T) {
	svc := &SMTPEmailService{config: &SMTPConfig{FromEmail: "noreply@skyport.dev", FromName: "Skyport"}}

	msg := string(svc.buildMessage("alice@example.com", "Hello", "<p>Hi</p>", "Hi"))

	assert.Contains(t, msg, "From: Skyport <noreply@skyport.dev>")
	assert.Contains(t, msg, "To: alice@example.com")
	assert.Contains(t, msg, "Subject: Hello")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8")
	assert.True(t, strings.HasSuffix(msg, "--\r\n"), "multipart message must be terminated")
}

func TestValidateSMTPConfig(t *testing.T) {
	valid := &SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		Username:  "mailer",
		Password:  "secret",
		FromEmail: "noreply@skyport.dev",
	}
	require.NoError(t, validateSMTPConfig(valid))

	tests := []struct {
		name   string
		mutate func(*SMTPConfig)
	}{
		{"missing host", func(c *SMTPConfig) { c.Host = "" }},
		{"port out of range", func(c *SMTPConfig) { c.Port = 70000 }},
		{"missing username", func(c *SMTPConfig) { c.Username = "" }},
		{"missing password", func(c *SMTPConfig) { c.Password = "" }},
		{"missing from email", func(c *SMTPConfig) { c.FromEmail = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			assert.Error(t, validateSMTPConfig(&cfg))
		})
	}

	assert.Error(t, validateSMTPConfig(nil))
}
