package usecase

import (
	"context"
	"fmt"

	chat "skillswap/internal/pkg/chat/application/domain"
	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

// DefaultNotificationPageSize bounds a notification page.
const DefaultNotificationPageSize = 20

// ListNotificationsInput pages the caller's notification inbox.
type ListNotificationsInput struct {
	UserID     string
	Limit      int
	UnreadOnly bool
}

// ListNotificationsUseCase returns the caller's notifications newest-first
// along with their total unread count.
type ListNotificationsUseCase struct {
	Repo repository.NotificationRepository
}

func NewListNotificationsUseCase(repo repository.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{Repo: repo}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, in ListNotificationsInput) ([]chat.Notification, int, error) {
	if in.UserID == "" {
		return nil, 0, fmt.Errorf("user id is required")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultNotificationPageSize
	}

	notifications, err := uc.Repo.ListNotifications(ctx, in.UserID, limit, in.UnreadOnly)
	if err != nil {
		return nil, 0, wrapRepoErr(err)
	}
	unread, err := uc.Repo.CountUnread(ctx, in.UserID)
	if err != nil {
		return nil, 0, wrapRepoErr(err)
	}
	return notifications, unread, nil
}
