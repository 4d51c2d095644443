package repository

import (
	"context"
	"time"

	chat "skillswap/internal/pkg/chat/application/domain"
)

// UserRepository exposes the slice of the user store this service needs:
// display fields for resolving senders and peers, and the best-effort
// last-online timestamp written on connect/disconnect.
type UserRepository interface {
	FindDisplay(ctx context.Context, id string) (*chat.UserDisplay, error)

	// TouchLastOnline records when the user was last seen on a realtime
	// connection. Callers treat failures as non-fatal.
	TouchLastOnline(ctx context.Context, id string, at time.Time) error
}
