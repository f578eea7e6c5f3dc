package session

import "github.com/google/uuid"

// Identity is the raw value a session carries to say which user it belongs to.
// It is untrusted input until TryParseIdentifier accepts it.
type Identity struct {
	raw     string
	present bool
}

// NewIdentity wraps a raw identity value that is present in the session, even if it is empty.
func NewIdentity(raw string) Identity {
	return Identity{raw: raw, present: true}
}

// Present reports whether the session carried any identity at all.
func (i Identity) Present() bool {
	return i.present
}

// Raw returns the value as stored.
func (i Identity) Raw() string {
	return i.raw
}

// TryParseIdentifier returns the user id when the identity is a well-formed, non-nil UUID.
func (i Identity) TryParseIdentifier() (uuid.UUID, bool) {
	if !i.present {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(i.raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
