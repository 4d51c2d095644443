package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "skillswap/internal/pkg/chat/application/domain"
	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

// OpenConversationInput carries the caller and the user they want to talk to.
type OpenConversationInput struct {
	RequesterID   string
	ParticipantID string
}

// OpenConversationUseCase implements create-or-get: first contact between
// two users creates the thread, any later request returns the existing one
// regardless of which side asks.
type OpenConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewOpenConversationUseCase(repo repository.ChatRepository) *OpenConversationUseCase {
	return &OpenConversationUseCase{Repo: repo}
}

// Execute returns the conversation between the two users, creating it when
// absent. created reports which path was taken.
func (uc *OpenConversationUseCase) Execute(ctx context.Context, in OpenConversationInput) (conv *chat.Conversation, created bool, err error) {
	if in.RequesterID == "" || in.ParticipantID == "" {
		return nil, false, fmt.Errorf("requester and participant ids are required")
	}
	if in.RequesterID == in.ParticipantID {
		return nil, false, chat.ErrSelfConversation
	}

	existing, err := uc.Repo.FindConversationByParticipants(ctx, in.RequesterID, in.ParticipantID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, chat.ErrConversationNotFound) {
		return nil, false, wrapRepoErr(err)
	}

	conv, err = uc.Repo.CreateConversation(ctx, in.RequesterID, in.ParticipantID)
	if err != nil {
		// A racing open may have hit the pair's uniqueness constraint first;
		// in that case the thread now exists and the lookup settles it.
		if existing, findErr := uc.Repo.FindConversationByParticipants(ctx, in.RequesterID, in.ParticipantID); findErr == nil {
			return existing, false, nil
		}
		return nil, false, wrapRepoErr(err)
	}
	return conv, true, nil
}
