package chat

import "time"

// NotificationKindMessage tags notifications produced by message delivery.
const NotificationKindMessage = "message"

// PreviewLength bounds the content preview carried in a notification.
const PreviewLength = 50

// Notification is a durable record of an event a user missed while not
// actively present in the relevant room. Mutated only by explicit
// read-acknowledgement, never deleted.
type Notification struct {
	ID        string           `db:"id" json:"id"`
	UserID    string           `db:"user_id" json:"userId"`
	Kind      string           `db:"kind" json:"kind"`
	Data      NotificationData `db:"-" json:"data"`
	IsRead    bool             `db:"is_read" json:"isRead"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
}

// NotificationData is the opaque payload for kind "message".
type NotificationData struct {
	ConversationID string `json:"conversationId"`
	MessageID      string `json:"messageId"`
	SenderName     string `json:"senderName"`
	Preview        string `json:"preview"`
}

// MessageNotification builds the notification for a message the recipient
// missed. The preview is truncated to PreviewLength characters.
func MessageNotification(recipientID, senderName string, m Message) Notification {
	return Notification{
		UserID: recipientID,
		Kind:   NotificationKindMessage,
		Data: NotificationData{
			ConversationID: m.ConversationID,
			MessageID:      m.ID,
			SenderName:     senderName,
			Preview:        Preview(m.Content),
		},
	}
}

// Preview returns the first PreviewLength characters of content.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLength {
		return content
	}
	return string(runes[:PreviewLength])
}
