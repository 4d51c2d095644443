package usecase

import (
	"context"
	"fmt"
	"time"

	chat "skillswap/internal/pkg/chat/application/domain"
	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

// DefaultPageSize bounds a message page when the caller does not specify one.
const DefaultPageSize = 50

// FetchMessagesInput pages backwards through a conversation's log.
type FetchMessagesInput struct {
	ConversationID string
	RequesterID    string
	Before         *time.Time // exclusive upper bound; nil means newest
	Limit          int
}

// FetchMessagesUseCase reads a message page and acknowledges it: every
// returned message is marked seen by the requester and the requester's
// unread counter resets to zero. Reading is the only acknowledgement path
// for messages; there is no separate mark-as-read operation.
type FetchMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewFetchMessagesUseCase(repo repository.ChatRepository) *FetchMessagesUseCase {
	return &FetchMessagesUseCase{Repo: repo}
}

// Execute returns up to Limit messages older than Before in chronological
// order.
func (uc *FetchMessagesUseCase) Execute(ctx context.Context, in FetchMessagesInput) ([]chat.Message, error) {
	if in.ConversationID == "" || in.RequesterID == "" {
		return nil, fmt.Errorf("conversation and requester ids are required")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	conv, err := uc.Repo.FindConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	if !conv.HasParticipant(in.RequesterID) {
		return nil, chat.ErrNotParticipant
	}

	msgs, err := uc.Repo.ListMessagesBefore(ctx, in.ConversationID, in.Before, limit)
	if err != nil {
		return nil, wrapRepoErr(err)
	}

	var unseen []string
	for i := range msgs {
		if !msgs[i].SeenBy.Contains(in.RequesterID) {
			unseen = append(unseen, msgs[i].ID)
			msgs[i].SeenBy.Add(in.RequesterID)
		}
	}
	if len(unseen) > 0 {
		if err := uc.Repo.MarkMessagesSeen(ctx, unseen, in.RequesterID); err != nil {
			return nil, wrapRepoErr(err)
		}
		if err := uc.Repo.ResetUnread(ctx, in.ConversationID, in.RequesterID); err != nil {
			return nil, wrapRepoErr(err)
		}
	}

	// Store returns newest-first; callers get chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
