package task

import (
	"context"
	"encoding/json"
	"time"

	qport "skillswap/internal/infrastructure/queue/port"
	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

// TouchPresenceTaskType is the queue task name for last-online bookkeeping.
const TouchPresenceTaskType = "presence:touch"

// TouchPresenceTaskPayload records when a user connected or disconnected.
type TouchPresenceTaskPayload struct {
	UserID string    `json:"userId"`
	At     time.Time `json:"at"`
}

// NewTouchPresenceTask builds the queue task for a presence change observed
// now. Enqueuing is best-effort: the gateway logs failures and carries on,
// since last-seen is a convenience signal, not correctness-critical state.
func NewTouchPresenceTask(userID string, at time.Time) (qport.Task, error) {
	payload, err := json.Marshal(TouchPresenceTaskPayload{UserID: userID, At: at})
	if err != nil {
		return qport.Task{}, err
	}
	return qport.Task{Type: TouchPresenceTaskType, Payload: payload}, nil
}

// RegisterTouchPresenceTask binds the handler to the worker server.
func RegisterTouchPresenceTask(srv qport.Server, users repository.UserRepository) {
	srv.Register(TouchPresenceTaskType, func(ctx context.Context, t qport.Task) error {
		var p TouchPresenceTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return users.TouchLastOnline(ctx, p.UserID, p.At)
	})
}
