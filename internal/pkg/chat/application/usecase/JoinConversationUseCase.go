package usecase

import (
	"context"
	"fmt"

	chat "skillswap/internal/pkg/chat/application/domain"
	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

// JoinConversationInput validates a request to attach a user session to a
// conversation room.
type JoinConversationInput struct {
	ConversationID string
	UserID         string
}

// JoinConversationUseCase ensures the user belongs to the conversation
// before the realtime room subscription happens. The not-found check runs
// before the membership check, so an unknown conversation reports not-found
// to anyone who asks.
type JoinConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewJoinConversationUseCase(repo repository.ChatRepository) *JoinConversationUseCase {
	return &JoinConversationUseCase{Repo: repo}
}

func (uc *JoinConversationUseCase) Execute(ctx context.Context, in JoinConversationInput) error {
	if in.ConversationID == "" || in.UserID == "" {
		return fmt.Errorf("conversation and user ids are required")
	}

	conv, err := uc.Repo.FindConversation(ctx, in.ConversationID)
	if err != nil {
		return wrapRepoErr(err)
	}
	if !conv.HasParticipant(in.UserID) {
		return chat.ErrNotParticipant
	}
	return nil
}
