package models

import "time"

// User is a community member profile. Identity issuance is external; this
// record only carries display data and the viewer's following set.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Following   []string  `json:"following,omitempty"` // user ids this user follows
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
