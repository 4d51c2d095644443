package usecase

import (
	"context"
	"fmt"

	chat "skillswap/internal/pkg/chat/application/domain"
	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

// MarkNotificationReadInput identifies the notification and the caller
// claiming it.
type MarkNotificationReadInput struct {
	NotificationID string
	RequesterID    string
}

// MarkNotificationReadUseCase flips a single notification to read after
// verifying ownership.
type MarkNotificationReadUseCase struct {
	Repo repository.NotificationRepository
}

func NewMarkNotificationReadUseCase(repo repository.NotificationRepository) *MarkNotificationReadUseCase {
	return &MarkNotificationReadUseCase{Repo: repo}
}

func (uc *MarkNotificationReadUseCase) Execute(ctx context.Context, in MarkNotificationReadInput) (*chat.Notification, error) {
	if in.NotificationID == "" || in.RequesterID == "" {
		return nil, fmt.Errorf("notification and requester ids are required")
	}

	n, err := uc.Repo.FindNotification(ctx, in.NotificationID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	if n.UserID != in.RequesterID {
		return nil, chat.ErrNotOwner
	}

	if err := uc.Repo.MarkRead(ctx, n.ID); err != nil {
		return nil, wrapRepoErr(err)
	}
	n.IsRead = true
	return n, nil
}
