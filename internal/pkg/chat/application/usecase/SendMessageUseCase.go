package usecase

import (
	"context"
	"fmt"

	chat "skillswap/internal/pkg/chat/application/domain"
	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to persist a new message.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Content        string
}

// SendMessageUseCase performs the persistence half of message dispatch:
// validation, participant check, append to the message log, last-message
// pointer update, and the atomic unread increment for the peer. Broadcast
// and notification fan-out belong to the dispatcher on top.
type SendMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewSendMessageUseCase(repo repository.ChatRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo}
}

// Execute persists the message and returns it along with the peer's user ID.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, string, error) {
	if in.ConversationID == "" || in.SenderID == "" {
		return nil, "", fmt.Errorf("conversation and sender ids are required")
	}

	msg, err := chat.NewMessage(in.ConversationID, in.SenderID, in.Content)
	if err != nil {
		return nil, "", err
	}

	conv, err := uc.Repo.FindConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, "", wrapRepoErr(err)
	}
	recipientID, ok := conv.OtherParticipant(in.SenderID)
	if !ok {
		return nil, "", chat.ErrNotParticipant
	}

	id, createdAt, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, "", wrapRepoErr(err)
	}
	msg.ID = id
	msg.CreatedAt = createdAt

	if err := uc.Repo.SetLastMessage(ctx, conv.ID, msg.ID); err != nil {
		return nil, "", wrapRepoErr(err)
	}
	// Single atomic statement at the store; concurrent sends must not lose
	// increments.
	if err := uc.Repo.IncrementUnread(ctx, conv.ID, recipientID); err != nil {
		return nil, "", wrapRepoErr(err)
	}

	return msg, recipientID, nil
}
