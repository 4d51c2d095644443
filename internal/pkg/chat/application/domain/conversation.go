package chat

import "time"

// Conversation is a fixed 2-party messaging thread. The participant pair is
// set at creation and never changes; unread counts are tracked per
// participant and mutated only through the repository's atomic operations.
type Conversation struct {
	ID            string         `db:"id"`
	Participants  []string       `db:"-"` // always exactly two user IDs
	LastMessageID *string        `db:"last_message_id"`
	UnreadCounts  map[string]int `db:"-"` // participant user ID -> count
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// HasParticipant tells whether userID is part of this conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	if c == nil {
		return false
	}
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the peer of userID. ok is false when userID is
// not a participant.
func (c *Conversation) OtherParticipant(userID string) (string, bool) {
	if c == nil || !c.HasParticipant(userID) {
		return "", false
	}
	for _, p := range c.Participants {
		if p != userID {
			return p, true
		}
	}
	return "", false
}

// UnreadFor returns the unread count tracked for userID.
func (c *Conversation) UnreadFor(userID string) int {
	if c == nil || c.UnreadCounts == nil {
		return 0
	}
	return c.UnreadCounts[userID]
}

// ConversationSummary is the listing projection: the conversation with the
// *other* participant resolved and the caller's own unread count.
type ConversationSummary struct {
	ID          string      `json:"id"`
	Participant UserDisplay `json:"participant"`
	LastMessage *Message    `json:"lastMessage,omitempty"`
	UnreadCount int         `json:"unreadCount"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
