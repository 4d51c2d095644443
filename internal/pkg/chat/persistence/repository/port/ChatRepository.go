package repository

import (
	"context"
	"time"

	chat "skillswap/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for conversations and their
// message logs.
//
// Adapters must translate "row not found" into chat.ErrConversationNotFound
// so use cases can branch without knowing the driver. Unread counters are
// mutated exclusively through IncrementUnread/ResetUnread, which must be
// single atomic statements at the store level: a load-mutate-save cycle
// loses increments under concurrent sends to the same conversation.
type ChatRepository interface {
	// CreateConversation opens a thread between exactly two users and
	// registers both participant rows in one transaction.
	CreateConversation(ctx context.Context, userA, userB string) (*chat.Conversation, error)

	// FindConversation loads a conversation with its participants and
	// unread counters.
	FindConversation(ctx context.Context, id string) (*chat.Conversation, error)

	// FindConversationByParticipants looks up the thread for an unordered
	// pair of user IDs.
	FindConversationByParticipants(ctx context.Context, userA, userB string) (*chat.Conversation, error)

	// ListConversations returns the caller's conversations ordered by most
	// recent activity, with the other participant and last message resolved.
	ListConversations(ctx context.Context, userID string) ([]chat.ConversationSummary, error)

	// SaveMessage persists m and returns its store-assigned ID and creation
	// timestamp.
	SaveMessage(ctx context.Context, m chat.Message) (string, time.Time, error)

	// ListMessagesBefore returns up to limit messages created strictly
	// before the given instant (or the newest when before is nil),
	// newest-first.
	ListMessagesBefore(ctx context.Context, conversationID string, before *time.Time, limit int) ([]chat.Message, error)

	// MarkMessagesSeen appends userID to the seen-set of each listed
	// message. Idempotent; already-seen messages are left untouched.
	MarkMessagesSeen(ctx context.Context, messageIDs []string, userID string) error

	// SetLastMessage advances the conversation's last-message pointer and
	// its updated-at timestamp.
	SetLastMessage(ctx context.Context, conversationID, messageID string) error

	// IncrementUnread atomically adds one to userID's unread counter.
	IncrementUnread(ctx context.Context, conversationID, userID string) error

	// ResetUnread atomically sets userID's unread counter to zero.
	ResetUnread(ctx context.Context, conversationID, userID string) error
}
