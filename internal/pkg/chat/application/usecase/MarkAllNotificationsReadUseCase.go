package usecase

import (
	"context"
	"fmt"

	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

// MarkAllNotificationsReadUseCase flips every unread notification owned by
// the caller.
type MarkAllNotificationsReadUseCase struct {
	Repo repository.NotificationRepository
}

func NewMarkAllNotificationsReadUseCase(repo repository.NotificationRepository) *MarkAllNotificationsReadUseCase {
	return &MarkAllNotificationsReadUseCase{Repo: repo}
}

func (uc *MarkAllNotificationsReadUseCase) Execute(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if err := uc.Repo.MarkAllRead(ctx, userID); err != nil {
		return wrapRepoErr(err)
	}
	return nil
}
