package chat

import "errors"

// Domain-level errors for messaging behaviors. Controllers map these onto
// HTTP statuses and socket error frames; use cases pass them through
// unwrapped so errors.Is keeps working across layers.
var (
	ErrEmptyContent         = errors.New("chat: message content is required")
	ErrContentTooLong       = errors.New("chat: message content exceeds 2000 characters")
	ErrSelfConversation     = errors.New("chat: cannot open a conversation with yourself")
	ErrConversationNotFound = errors.New("chat: conversation not found")
	ErrNotificationNotFound = errors.New("chat: notification not found")
	ErrNotParticipant       = errors.New("chat: user is not a participant in the conversation")
	ErrNotOwner             = errors.New("chat: notification belongs to another user")
)
