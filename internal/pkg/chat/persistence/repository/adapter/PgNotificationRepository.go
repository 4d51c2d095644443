package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "skillswap/internal/pkg/chat/application/domain"
)

// PgNotificationRepository persists the durable notification inbox.
type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

func (r *PgNotificationRepository) CreateNotification(ctx context.Context, n chat.Notification) (*chat.Notification, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.notification (user_id, kind, conversation_id, message_id, sender_name, preview)
		VALUES ($1::uuid, $2, NULLIF($3, '')::uuid, NULLIF($4, '')::uuid, $5, $6)
		RETURNING id::text, is_read, created_at
	`, n.UserID, n.Kind, n.Data.ConversationID, n.Data.MessageID, n.Data.SenderName, n.Data.Preview,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *PgNotificationRepository) ListNotifications(ctx context.Context, userID string, limit int, unreadOnly bool) ([]chat.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, user_id::text, kind,
		       COALESCE(conversation_id::text, ''), COALESCE(message_id::text, ''),
		       sender_name, preview, is_read, created_at
		FROM chat.notification
		WHERE user_id = $1::uuid AND ($2 = false OR is_read = false)
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []chat.Notification
	for rows.Next() {
		var n chat.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Kind,
			&n.Data.ConversationID, &n.Data.MessageID,
			&n.Data.SenderName, &n.Data.Preview, &n.IsRead, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return notifications, nil
}

func (r *PgNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM chat.notification WHERE user_id = $1::uuid AND is_read = false",
		userID,
	).Scan(&count)
	return count, err
}

func (r *PgNotificationRepository) FindNotification(ctx context.Context, id string) (*chat.Notification, error) {
	var n chat.Notification
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, user_id::text, kind,
		       COALESCE(conversation_id::text, ''), COALESCE(message_id::text, ''),
		       sender_name, preview, is_read, created_at
		FROM chat.notification
		WHERE id = $1::uuid
	`, id).Scan(
		&n.ID, &n.UserID, &n.Kind,
		&n.Data.ConversationID, &n.Data.MessageID,
		&n.Data.SenderName, &n.Data.Preview, &n.IsRead, &n.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx,
		"UPDATE chat.notification SET is_read = true WHERE id = $1::uuid",
		id,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrNotificationNotFound
	}
	return nil
}

func (r *PgNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE chat.notification SET is_read = true WHERE user_id = $1::uuid AND is_read = false",
		userID,
	)
	return err
}
