package auth

import (
	"time"

	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "madrassa_session"

// SessionHeaderName is the header fallback used by the mobile shell,
// which has no cookie jar.
const SessionHeaderName = "X-Session-Token"

// SessionConfig defines session lifetime settings.
type SessionConfig struct {
	TTL    time.Duration
	Secure bool // Secure cookie attribute, enabled in production mode
}

// NewSessionToken generates an opaque session token. The token is random,
// carries no user data, and is only meaningful to the sessions table.
func NewSessionToken() string {
	return uuid.New().String()
}
