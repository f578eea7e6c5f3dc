package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"bakery/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// DefaultTTL is how long a session token stays valid after login.
const DefaultTTL = 24 * time.Hour

// Store keeps the mapping from opaque session token to raw user identity.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	// Lookup returns an absent Identity for unknown or expired tokens; errors are infrastructure failures.
	Lookup(ctx context.Context, token string) (Identity, error)
	Revoke(ctx context.Context, token string) error
}

type tokenRepository interface {
	Create(ctx context.Context, t *domain.AuthToken) error
	GetByToken(ctx context.Context, token string) (*domain.AuthToken, error)
	DeleteByToken(ctx context.Context, token string) error
}

// DBStore persists sessions in the auth_tokens table.
type DBStore struct {
	tokens tokenRepository
	ttl    time.Duration
	now    func() time.Time
}

func NewDBStore(tokens tokenRepository, ttl time.Duration) *DBStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DBStore{tokens: tokens, ttl: ttl, now: time.Now}
}

func (s *DBStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.tokens.Create(ctx, &domain.AuthToken{
		Token:     token,
		UserID:    userID.String(),
		CreatedAt: s.now(),
	}); err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	return token, nil
}

func (s *DBStore) Lookup(ctx context.Context, token string) (Identity, error) {
	t, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, nil
		}
		return Identity{}, fmt.Errorf("session lookup: %w", err)
	}
	if t.Expired(s.now(), s.ttl) {
		_ = s.tokens.DeleteByToken(ctx, token)
		return Identity{}, nil
	}
	return NewIdentity(t.UserID), nil
}

func (s *DBStore) Revoke(ctx context.Context, token string) error {
	return s.tokens.DeleteByToken(ctx, token)
}

// RedisStore keeps sessions as plain keys that expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl, prefix: "session:"}
}

func (s *RedisStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.prefix+token, userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (Identity, error) {
	val, err := s.client.Get(ctx, s.prefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return Identity{}, nil
	}
	if err != nil {
		return Identity{}, fmt.Errorf("session lookup: %w", err)
	}
	return NewIdentity(val), nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.prefix+token).Err()
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
