package repository

import (
	"context"

	chat "skillswap/internal/pkg/chat/application/domain"
)

// NotificationRepository defines persistence for the durable notification
// inbox. Adapters translate "row not found" into chat.ErrNotificationNotFound.
type NotificationRepository interface {
	// CreateNotification persists n and returns it with store-assigned ID
	// and timestamp.
	CreateNotification(ctx context.Context, n chat.Notification) (*chat.Notification, error)

	// ListNotifications returns up to limit notifications for userID,
	// newest first. unreadOnly restricts to is_read = false.
	ListNotifications(ctx context.Context, userID string, limit int, unreadOnly bool) ([]chat.Notification, error)

	// CountUnread returns the number of unread notifications for userID.
	CountUnread(ctx context.Context, userID string) (int, error)

	FindNotification(ctx context.Context, id string) (*chat.Notification, error)

	// MarkRead flips a single notification to read.
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead flips every unread notification owned by userID.
	MarkAllRead(ctx context.Context, userID string) error
}
