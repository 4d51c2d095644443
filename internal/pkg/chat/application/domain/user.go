package chat

import "time"

// UserDisplay carries the public display fields of a user, resolved when
// broadcasting messages and building conversation listings. The user record
// itself is owned by the profile service.
type UserDisplay struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	AvatarURL    *string    `db:"avatar_url" json:"avatarUrl,omitempty"`
	LastOnlineAt *time.Time `db:"last_online_at" json:"lastOnlineAt,omitempty"`
}
