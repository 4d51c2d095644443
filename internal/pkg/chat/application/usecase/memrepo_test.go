package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	chat "skillswap/internal/pkg/chat/application/domain"
	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

// memChatRepo is an in-memory ChatRepository for use case tests. All
// mutations hold the mutex so the concurrency tests exercise real
// interleavings against a safe store.
type memChatRepo struct {
	mu      sync.Mutex
	convs   map[string]*chat.Conversation
	msgs    map[string][]chat.Message
	nextID  int
	baseNow time.Time
}

var _ repository.ChatRepository = (*memChatRepo)(nil)

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{
		convs:   make(map[string]*chat.Conversation),
		msgs:    make(map[string][]chat.Message),
		baseNow: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *memChatRepo) tick() time.Time {
	r.nextID++
	return r.baseNow.Add(time.Duration(r.nextID) * time.Millisecond)
}

func (r *memChatRepo) CreateConversation(_ context.Context, userA, userB string) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.tick()
	conv := &chat.Conversation{
		ID:           fmt.Sprintf("conv-%d", r.nextID),
		Participants: []string{userA, userB},
		UnreadCounts: map[string]int{userA: 0, userB: 0},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.convs[conv.ID] = conv
	return copyConv(conv), nil
}

func (r *memChatRepo) FindConversation(_ context.Context, id string) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[id]
	if !ok {
		return nil, chat.ErrConversationNotFound
	}
	return copyConv(conv), nil
}

func (r *memChatRepo) FindConversationByParticipants(_ context.Context, userA, userB string) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, conv := range r.convs {
		if conv.HasParticipant(userA) && conv.HasParticipant(userB) {
			return copyConv(conv), nil
		}
	}
	return nil, chat.ErrConversationNotFound
}

func (r *memChatRepo) ListConversations(_ context.Context, userID string) ([]chat.ConversationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var summaries []chat.ConversationSummary
	for _, conv := range r.convs {
		if !conv.HasParticipant(userID) {
			continue
		}
		other, _ := conv.OtherParticipant(userID)
		s := chat.ConversationSummary{
			ID:          conv.ID,
			Participant: chat.UserDisplay{ID: other, Name: other},
			UnreadCount: conv.UnreadCounts[userID],
			UpdatedAt:   conv.UpdatedAt,
		}
		if conv.LastMessageID != nil {
			for _, m := range r.msgs[conv.ID] {
				if m.ID == *conv.LastMessageID {
					msg := m
					s.LastMessage = &msg
					break
				}
			}
		}
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

func (r *memChatRepo) SaveMessage(_ context.Context, m chat.Message) (string, time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.CreatedAt = r.tick()
	m.ID = fmt.Sprintf("msg-%d", r.nextID)
	r.msgs[m.ConversationID] = append(r.msgs[m.ConversationID], m)
	return m.ID, m.CreatedAt, nil
}

func (r *memChatRepo) ListMessagesBefore(_ context.Context, conversationID string, before *time.Time, limit int) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []chat.Message
	for _, m := range r.msgs[conversationID] {
		if before != nil && !m.CreatedAt.Before(*before) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memChatRepo) MarkMessagesSeen(_ context.Context, messageIDs []string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[string]struct{}, len(messageIDs))
	for _, id := range messageIDs {
		ids[id] = struct{}{}
	}
	for convID, msgs := range r.msgs {
		for i := range msgs {
			if _, ok := ids[msgs[i].ID]; ok {
				msgs[i].SeenBy.Add(userID)
			}
		}
		r.msgs[convID] = msgs
	}
	return nil
}

func (r *memChatRepo) SetLastMessage(_ context.Context, conversationID, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[conversationID]
	if !ok {
		return chat.ErrConversationNotFound
	}
	conv.LastMessageID = &messageID
	conv.UpdatedAt = r.tick()
	return nil
}

func (r *memChatRepo) IncrementUnread(_ context.Context, conversationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[conversationID]
	if !ok {
		return chat.ErrConversationNotFound
	}
	conv.UnreadCounts[userID]++
	return nil
}

func (r *memChatRepo) ResetUnread(_ context.Context, conversationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[conversationID]
	if !ok {
		return chat.ErrConversationNotFound
	}
	conv.UnreadCounts[userID] = 0
	return nil
}

func (r *memChatRepo) unreadFor(conversationID, userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conv, ok := r.convs[conversationID]; ok {
		return conv.UnreadCounts[userID]
	}
	return -1
}

func copyConv(conv *chat.Conversation) *chat.Conversation {
	out := *conv
	out.Participants = append([]string(nil), conv.Participants...)
	out.UnreadCounts = make(map[string]int, len(conv.UnreadCounts))
	for k, v := range conv.UnreadCounts {
		out.UnreadCounts[k] = v
	}
	return &out
}

// memNotifRepo is an in-memory NotificationRepository.
type memNotifRepo struct {
	mu     sync.Mutex
	notifs []chat.Notification
	nextID int
}

var _ repository.NotificationRepository = (*memNotifRepo)(nil)

func newMemNotifRepo() *memNotifRepo {
	return &memNotifRepo{}
}

func (r *memNotifRepo) CreateNotification(_ context.Context, n chat.Notification) (*chat.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = fmt.Sprintf("notif-%d", r.nextID)
	n.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(r.nextID) * time.Millisecond)
	r.notifs = append(r.notifs, n)
	out := n
	return &out, nil
}

func (r *memNotifRepo) ListNotifications(_ context.Context, userID string, limit int, unreadOnly bool) ([]chat.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []chat.Notification
	for _, n := range r.notifs {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memNotifRepo) CountUnread(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifs {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memNotifRepo) FindNotification(_ context.Context, id string) (*chat.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifs {
		if n.ID == id {
			out := n
			return &out, nil
		}
	}
	return nil, chat.ErrNotificationNotFound
}

func (r *memNotifRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifs {
		if r.notifs[i].ID == id {
			r.notifs[i].IsRead = true
			return nil
		}
	}
	return chat.ErrNotificationNotFound
}

func (r *memNotifRepo) MarkAllRead(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifs {
		if r.notifs[i].UserID == userID {
			r.notifs[i].IsRead = true
		}
	}
	return nil
}
