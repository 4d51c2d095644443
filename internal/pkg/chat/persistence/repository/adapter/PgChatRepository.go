package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "skillswap/internal/pkg/chat/application/domain"
)

// PgChatRepository persists conversations and messages in postgres. Unread
// counters live on chat.participant rows and are mutated only with single
// UPDATE statements, so concurrent sends to one conversation never lose
// increments.
type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) CreateConversation(ctx context.Context, userA, userB string) (*chat.Conversation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	conv := chat.Conversation{
		Participants: []string{userA, userB},
		UnreadCounts: map[string]int{userA: 0, userB: 0},
	}
	// The unique pair key makes racing opens for the same pair fail here
	// instead of creating a duplicate thread; the use case retries the
	// lookup on conflict.
	err = tx.QueryRow(ctx, `
		INSERT INTO chat.conversation (pair_key)
		VALUES (least($1::uuid, $2::uuid)::text || ':' || greatest($1::uuid, $2::uuid)::text)
		RETURNING id::text, created_at, updated_at
	`, userA, userB).Scan(&conv.ID, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO chat.participant (conversation_id, user_id)
		VALUES ($1::uuid, $2::uuid), ($1::uuid, $3::uuid)
	`, conv.ID, userA, userB)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *PgChatRepository) FindConversation(ctx context.Context, id string) (*chat.Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.last_message_id::text, c.created_at, c.updated_at,
		       p.user_id::text, p.unread_count
		FROM chat.conversation c
		JOIN chat.participant p ON p.conversation_id = c.id
		WHERE c.id = $1::uuid
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conv *chat.Conversation
	for rows.Next() {
		var (
			userID string
			unread int
		)
		if conv == nil {
			conv = &chat.Conversation{UnreadCounts: map[string]int{}}
			if err := rows.Scan(&conv.ID, &conv.LastMessageID, &conv.CreatedAt, &conv.UpdatedAt, &userID, &unread); err != nil {
				return nil, err
			}
		} else {
			var discard chat.Conversation
			if err := rows.Scan(&discard.ID, &discard.LastMessageID, &discard.CreatedAt, &discard.UpdatedAt, &userID, &unread); err != nil {
				return nil, err
			}
		}
		conv.Participants = append(conv.Participants, userID)
		conv.UnreadCounts[userID] = unread
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	if conv == nil {
		return nil, chat.ErrConversationNotFound
	}
	return conv, nil
}

func (r *PgChatRepository) FindConversationByParticipants(ctx context.Context, userA, userB string) (*chat.Conversation, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		SELECT p1.conversation_id::text
		FROM chat.participant p1
		JOIN chat.participant p2 ON p2.conversation_id = p1.conversation_id
		WHERE p1.user_id = $1::uuid AND p2.user_id = $2::uuid
	`, userA, userB).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.FindConversation(ctx, id)
}

func (r *PgChatRepository) ListConversations(ctx context.Context, userID string) ([]chat.ConversationSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.updated_at, me.unread_count,
		       u.id::text, u.name, u.avatar_url, u.last_online_at,
		       m.id::text, m.sender_id::text, m.content, m.seen_by::text[], m.created_at
		FROM chat.conversation c
		JOIN chat.participant me ON me.conversation_id = c.id AND me.user_id = $1::uuid
		JOIN chat.participant other ON other.conversation_id = c.id AND other.user_id <> $1::uuid
		JOIN chat.app_user u ON u.id = other.user_id
		LEFT JOIN chat.message m ON m.id = c.last_message_id
		ORDER BY c.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []chat.ConversationSummary
	for rows.Next() {
		var (
			s         chat.ConversationSummary
			msgID     *string
			senderID  *string
			content   *string
			seenBy    []string
			createdAt *time.Time
		)
		if err := rows.Scan(
			&s.ID, &s.UpdatedAt, &s.UnreadCount,
			&s.Participant.ID, &s.Participant.Name, &s.Participant.AvatarURL, &s.Participant.LastOnlineAt,
			&msgID, &senderID, &content, &seenBy, &createdAt,
		); err != nil {
			return nil, err
		}
		if msgID != nil {
			s.LastMessage = &chat.Message{
				ID:             *msgID,
				ConversationID: s.ID,
				SenderID:       *senderID,
				Content:        *content,
				SeenBy:         seenBy,
				CreatedAt:      *createdAt,
			}
		}
		summaries = append(summaries, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return summaries, nil
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (string, time.Time, error) {
	var (
		id        string
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.message (conversation_id, sender_id, content, seen_by)
		VALUES ($1::uuid, $2::uuid, $3, $4::uuid[])
		RETURNING id::text, created_at
	`, m.ConversationID, m.SenderID, m.Content, []string(m.SeenBy)).Scan(&id, &createdAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return id, createdAt, nil
}

func (r *PgChatRepository) ListMessagesBefore(ctx context.Context, conversationID string, before *time.Time, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, content, seen_by::text[], created_at
		FROM chat.message
		WHERE conversation_id = $1::uuid
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`, conversationID, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var (
			m      chat.Message
			seenBy []string
		)
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &seenBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.SeenBy = seenBy
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgChatRepository) MarkMessagesSeen(ctx context.Context, messageIDs []string, userID string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	// Guarded append keeps the seen-set free of duplicates and the call
	// idempotent.
	_, err := r.pool.Exec(ctx, `
		UPDATE chat.message
		SET seen_by = array_append(seen_by, $2::uuid)
		WHERE id = ANY($1::uuid[]) AND NOT (seen_by @> ARRAY[$2]::uuid[])
	`, messageIDs, userID)
	return err
}

func (r *PgChatRepository) SetLastMessage(ctx context.Context, conversationID, messageID string) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.conversation
		SET last_message_id = $2::uuid, updated_at = now()
		WHERE id = $1::uuid
	`, conversationID, messageID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrConversationNotFound
	}
	return nil
}

func (r *PgChatRepository) IncrementUnread(ctx context.Context, conversationID, userID string) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.participant
		SET unread_count = unread_count + 1
		WHERE conversation_id = $1::uuid AND user_id = $2::uuid
	`, conversationID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrConversationNotFound
	}
	return nil
}

func (r *PgChatRepository) ResetUnread(ctx context.Context, conversationID, userID string) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.participant
		SET unread_count = 0
		WHERE conversation_id = $1::uuid AND user_id = $2::uuid
	`, conversationID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrConversationNotFound
	}
	return nil
}
