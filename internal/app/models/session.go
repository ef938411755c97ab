package models

import "time"

// Session defines a server-side login session based on the 'sessions' table.
// The token is an opaque UUID carried by the session cookie; nothing about
// the user is stored client-side.
type Session struct {
	Token     string    `json:"-" db:"token"`
	UserID    int64     `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	IsRevoked bool      `json:"-" db:"is_revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
