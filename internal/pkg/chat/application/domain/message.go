package chat

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxContentLength bounds message content after trimming, in characters.
const MaxContentLength = 2000

// Message is an immutable log entry in a conversation. Only the seen-set
// grows after creation.
type Message struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversationId"`
	SenderID       string    `db:"sender_id" json:"senderId"`
	Content        string    `db:"content" json:"content"`
	SeenBy         SeenSet   `db:"seen_by" json:"seenBy"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// NewMessage validates and normalizes a message ready to persist. Content is
// trimmed; the seen-set starts with the sender only.
func NewMessage(conversationID, senderID, content string) (*Message, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(trimmed) > MaxContentLength {
		return nil, ErrContentTooLong
	}

	m := &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        trimmed,
	}
	m.SeenBy.Add(senderID)
	return m, nil
}
