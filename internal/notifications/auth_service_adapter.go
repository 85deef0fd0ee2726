package notifications

import (
	"context"

	"github.com/google/uuid"
)

// AuthServiceAdapter implements the auth.NotificationService interface
// and adapts calls to the unified notification system
type AuthServiceAdapter struct {
	unifiedService NotificationService
}

// NewAuthServiceAdapter creates a new adapter for auth notifications
func NewAuthServiceAdapter(unifiedService NotificationService) *AuthServiceAdapter {
	return &AuthServiceAdapter{
		unifiedService: unifiedService,
	}
}

// SendWelcomeNotification implements the auth.NotificationService interface
func (a *AuthServiceAdapter) SendWelcomeNotification(ctx context.Context, userID uuid.UUID, email, name string) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeWelcome).
		WithRecipient(userID, email, name).
		WithSubject("✈️ Welcome to Skyport!").
		Build()

	return a.unifiedService.SendNotification(ctx, notification)
}
