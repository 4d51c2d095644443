package usecase

import (
	"context"
	"fmt"

	chat "skillswap/internal/pkg/chat/application/domain"
	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

// ListConversationsUseCase returns the caller's conversations with the other
// participant resolved, the last message, and the caller's own unread count,
// ordered by most recent activity.
type ListConversationsUseCase struct {
	Repo repository.ChatRepository
}

func NewListConversationsUseCase(repo repository.ChatRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, userID string) ([]chat.ConversationSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	summaries, err := uc.Repo.ListConversations(ctx, userID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	return summaries, nil
}
