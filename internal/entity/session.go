package entity

import "time"

// Session is the authenticated context for a client. Mutated only by
// replacement, never partially updated.
type Session struct {
	Identity  Identity   `json:"identity"`
	Token     string     `json:"-"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}
