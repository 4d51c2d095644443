package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	chat "skillswap/internal/pkg/chat/application/domain"
)

// PgUserRepository reads user display fields and writes the best-effort
// last-online timestamp. The user table itself belongs to the profile
// service.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) FindDisplay(ctx context.Context, id string) (*chat.UserDisplay, error) {
	var d chat.UserDisplay
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, avatar_url, last_online_at
		FROM chat.app_user
		WHERE id = $1::uuid
	`, id).Scan(&d.ID, &d.Name, &d.AvatarURL, &d.LastOnlineAt)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return &d, nil
}

func (r *PgUserRepository) TouchLastOnline(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE chat.app_user SET last_online_at = $2 WHERE id = $1::uuid",
		id, at,
	)
	return err
}
