package display

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	cacheport "skillswap/internal/infrastructure/cache/port"
	chat "skillswap/internal/pkg/chat/application/domain"
	repository "skillswap/internal/pkg/chat/persistence/repository/port"
)

const defaultTTL = 5 * time.Minute

// Resolver looks up user display fields (name, avatar) for broadcast and
// notification payloads, with a cache in front of the user store. Cache
// failures are best-effort: they are logged and the lookup falls through to
// the repository.
type Resolver struct {
	users repository.UserRepository
	cache cacheport.Cache
	ttl   time.Duration
}

// NewResolver constructs a Resolver. cache may be nil to disable caching.
func NewResolver(users repository.UserRepository, cache cacheport.Cache, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Resolver{users: users, cache: cache, ttl: ttl}
}

// Resolve returns the display fields for userID.
func (r *Resolver) Resolve(ctx context.Context, userID string) (chat.UserDisplay, error) {
	key := cacheKey(userID)

	if r.cache != nil {
		cached, err := r.cache.Get(ctx, key)
		switch {
		case err == nil:
			var d chat.UserDisplay
			if jsonErr := json.Unmarshal([]byte(cached), &d); jsonErr == nil {
				return d, nil
			}
			// Corrupt entry; fall through and overwrite it.
		case !errors.Is(err, cacheport.ErrMiss):
			log.Printf("display cache get failed for %s: %v", userID, err)
		}
	}

	d, err := r.users.FindDisplay(ctx, userID)
	if err != nil {
		return chat.UserDisplay{}, err
	}

	if r.cache != nil {
		if encoded, err := json.Marshal(d); err == nil {
			if err := r.cache.Set(ctx, key, string(encoded), r.ttl); err != nil {
				log.Printf("display cache set failed for %s: %v", userID, err)
			}
		}
	}
	return *d, nil
}

func cacheKey(userID string) string {
	return "user:display:" + userID
}
