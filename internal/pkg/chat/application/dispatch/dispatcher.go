package dispatch

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillswap/internal/infrastructure/realtime"
	chat "skillswap/internal/pkg/chat/application/domain"
	"skillswap/internal/pkg/chat/application/usecase"
	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

// RoomRouter is the slice of the realtime room router the dispatcher needs:
// fan-out to a conversation's subscribers and the membership probe that
// decides whether the recipient also needs a durable notification.
type RoomRouter interface {
	Broadcast(conversationID string, payload []byte, excludeUserID string) int
	IsMember(conversationID, userID string) bool
}

// Presence pushes a payload to a user's active connection, if any.
type Presence interface {
	NotifyUser(userID string, payload []byte) bool
}

// DisplayResolver resolves user display fields for outgoing payloads.
type DisplayResolver interface {
	Resolve(ctx context.Context, userID string) (chat.UserDisplay, error)
}

// MessageDispatcher runs the send-message protocol: persist via the use
// case, broadcast to the room, and alert the recipient. It comes in two
// named variants that differ only in how they decide on the notification:
//
//   - Send is the realtime path. The recipient gets a durable notification
//     only when no connection of theirs is subscribed to the room; a
//     recipient already viewing the conversation receives the broadcast and
//     nothing else.
//   - SendDirect is the plain request/response fallback. With no connection
//     to inspect, room membership is unknowable, so it always writes the
//     notification.
//
// The two variants stay separate on purpose: folding them together would
// either suppress legitimate notifications or duplicate realtime ones.
type MessageDispatcher struct {
	Messages      *usecase.SendMessageUseCase
	Notifications repository.NotificationRepository
	Display       DisplayResolver
	Rooms         RoomRouter
	Presence      Presence
}

func NewMessageDispatcher(
	messages *usecase.SendMessageUseCase,
	notifications repository.NotificationRepository,
	display DisplayResolver,
	rooms RoomRouter,
	presence Presence,
) *MessageDispatcher {
	return &MessageDispatcher{
		Messages:      messages,
		Notifications: notifications,
		Display:       display,
		Rooms:         rooms,
		Presence:      presence,
	}
}

// MessagePayload is the message shape broadcast to room members, with the
// sender's display fields resolved.
type MessagePayload struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"conversationId"`
	Sender         SenderPayload `json:"sender"`
	Content        string        `json:"content"`
	SeenBy         []string      `json:"seenBy"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// SenderPayload carries the resolved sender display fields.
type SenderPayload struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// MessageEventData is the chat:message:new event body.
type MessageEventData struct {
	Message        MessagePayload `json:"message"`
	ConversationID string         `json:"conversationId"`
}

// Send runs the realtime variant. The persisted message is returned even
// when the notification step fails, so callers can report the error while
// the send itself stands.
func (d *MessageDispatcher) Send(ctx context.Context, conversationID, senderID, content string) (*chat.Message, error) {
	msg, recipientID, err := d.Messages.Execute(ctx, usecase.SendMessageInput{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	})
	if err != nil {
		return nil, err
	}

	sender := d.resolveSender(ctx, senderID)
	d.broadcast(*msg, sender)

	if d.Rooms.IsMember(conversationID, recipientID) {
		return msg, nil
	}
	if err := d.notify(ctx, *msg, sender, recipientID); err != nil {
		return msg, err
	}
	return msg, nil
}

// SendDirect runs the fallback variant: no room membership signal exists, so
// the notification is written unconditionally. The room is still broadcast
// to, covering recipients who are viewing the conversation while the sender
// posts over plain HTTP.
func (d *MessageDispatcher) SendDirect(ctx context.Context, conversationID, senderID, content string) (*chat.Message, error) {
	msg, recipientID, err := d.Messages.Execute(ctx, usecase.SendMessageInput{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	})
	if err != nil {
		return nil, err
	}

	sender := d.resolveSender(ctx, senderID)
	d.broadcast(*msg, sender)

	if err := d.notify(ctx, *msg, sender, recipientID); err != nil {
		return msg, err
	}
	return msg, nil
}

func (d *MessageDispatcher) broadcast(msg chat.Message, sender SenderPayload) {
	data := MessageEventData{
		Message:        toPayload(msg, sender),
		ConversationID: msg.ConversationID,
	}
	payload, err := realtime.EncodeEvent(realtime.EventMessageNew, data)
	if err != nil {
		log.Printf("failed to encode message broadcast for %s: %v", msg.ConversationID, err)
		return
	}
	d.Rooms.Broadcast(msg.ConversationID, payload, "")
}

func (d *MessageDispatcher) notify(ctx context.Context, msg chat.Message, sender SenderPayload, recipientID string) error {
	created, err := d.Notifications.CreateNotification(ctx, chat.MessageNotification(recipientID, sender.Name, msg))
	if err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrPersistence, err)
	}

	payload, err := realtime.EncodeEvent(realtime.EventNotificationNew, created)
	if err != nil {
		log.Printf("failed to encode notification %s: %v", created.ID, err)
		return nil
	}
	// No active connection is fine; the notification persists for later
	// retrieval.
	d.Presence.NotifyUser(recipientID, payload)
	return nil
}

// resolveSender never fails a send over a display lookup: the fallback
// payload carries the bare user ID.
func (d *MessageDispatcher) resolveSender(ctx context.Context, senderID string) SenderPayload {
	display, err := d.Display.Resolve(ctx, senderID)
	if err != nil {
		log.Printf("failed to resolve display for %s: %v", senderID, err)
		return SenderPayload{ID: senderID}
	}
	return SenderPayload{ID: display.ID, Name: display.Name, AvatarURL: display.AvatarURL}
}

func toPayload(msg chat.Message, sender SenderPayload) MessagePayload {
	return MessagePayload{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Sender:         sender,
		Content:        msg.Content,
		SeenBy:         msg.SeenBy,
		CreatedAt:      msg.CreatedAt,
	}
}
