package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdentity_TryParseIdentifier(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		identity Identity
		wantOK   bool
	}{
		{"absent", Identity{}, false},
		{"well formed", NewIdentity(id.String()), true},
		{"empty after present", NewIdentity(""), false},
		{"nil uuid", NewIdentity(uuid.Nil.String()), false},
		{"number", NewIdentity("42"), false},
		{"garbage", NewIdentity("not-a-uuid"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.identity.TryParseIdentifier()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, id, got)
			} else {
				assert.Equal(t, uuid.Nil, got)
			}
		})
	}
}

func TestIdentity_Present(t *testing.T) {
	assert.False(t, Identity{}.Present())
	assert.True(t, NewIdentity("").Present())
	assert.Equal(t, "raw", NewIdentity("raw").Raw())
}
