package domain

import "time"

// AuthToken is a persisted login. Only the fingerprint of the opaque key is
// stored; ExpiresAt is nil for tokens that never expire.
type AuthToken struct {
	ID        string
	UserID    string
	KeyHash   string
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is no longer valid at now.
func (t AuthToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
