package notifications

import (
	"context"

	"github.com/google/uuid"
)

// OrderServiceAdapter implements the orders.NotificationService interface
// and adapts calls to the unified notification system
type OrderServiceAdapter struct {
	unifiedService NotificationService
}

// NewOrderServiceAdapter creates a new adapter for order notifications
func NewOrderServiceAdapter(unifiedService NotificationService) *OrderServiceAdapter {
	return &OrderServiceAdapter{
		unifiedService: unifiedService,
	}
}

// SendOrderNotification implements the orders.NotificationService interface
func (o *OrderServiceAdapter) SendOrderNotification(ctx context.Context, userID uuid.UUID, email, name string,
	orderID uuid.UUID, notificationType string,
	templateData map[string]interface{}) error {

	// Map string notification types to unified types
	var unifiedType NotificationType
	switch notificationType {
	case "ORDER_CONFIRMED":
		unifiedType = NotificationTypeOrderConfirmed
	case "ORDER_CANCELLED":
		unifiedType = NotificationTypeOrderCancelled
	case "WELCOME":
		unifiedType = NotificationTypeWelcome
	default:
		unifiedType = NotificationTypeOrderConfirmed
	}

	return o.unifiedService.SendOrderNotification(ctx, userID, email, name, orderID, unifiedType, templateData)
}

// GetUnifiedService returns the underlying unified notification service
func (o *OrderServiceAdapter) GetUnifiedService() NotificationService {
	return o.unifiedService
}
