package domain

import "time"

// AuthToken is a server-side session record. UserID keeps the raw identity exactly as it was
// written by the session carrier, so readers must parse it before trusting it.
type AuthToken struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token is older than ttl at now.
func (t *AuthToken) Expired(now time.Time, ttl time.Duration) bool {
	return !now.Before(t.CreatedAt.Add(ttl))
}
