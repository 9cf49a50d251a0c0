package domain

import "time"

// Session binds an opaque login token to a user until ExpiresAt.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
