package models

import "time"

// Session is a server-side record of an issued token. The wire token is a
// signed JWT whose jti must match a live session; deleting the record
// revokes the token regardless of its signature expiry.
type Session struct {
	ID        string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
