package models

import "time"

// Session is the identity carried in the signed session cookie.
type Session struct {
	Username  string    `json:"usuario"`
	IsAdmin   bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

// ExpiresAt returns the absolute expiry for the given lifetime.
func (s *Session) ExpiresAt(lifetime time.Duration) time.Time {
	return s.CreatedAt.Add(lifetime)
}

// Expired reports whether the session outlived lifetime at instant now.
func (s *Session) Expired(now time.Time, lifetime time.Duration) bool {
	return !now.Before(s.ExpiresAt(lifetime))
}
