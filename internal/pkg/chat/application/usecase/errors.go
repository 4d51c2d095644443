package usecase

import (
	"errors"
	"fmt"

	chat "skillswap/internal/pkg/chat/application/domain"
)

// ErrPersistence indicates an infrastructure/repository failure inside a use
// case. The triggering operation fails; the caller's session stays up.
var ErrPersistence = fmt.Errorf("chat use case persistence error")

// wrapRepoErr passes domain sentinels (not-found, authorization) through
// untouched and wraps everything else as a persistence failure.
func wrapRepoErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, chat.ErrConversationNotFound),
		errors.Is(err, chat.ErrNotificationNotFound):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
}
