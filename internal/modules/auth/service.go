package auth

import (
	"context"
	"errors"
	"time"

	"bakery/internal/domain"
	"bakery/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service contains the account logic: registration, credential checks and lookups.
type Service struct {
	users UserRepositoryInterface
	now   func() time.Time
}

func NewService(users UserRepositoryInterface) *Service {
	return &Service{users: users, now: time.Now}
}

// Register creates a new account. The email must not be taken; a concurrent insert that
// trips the unique index is reported the same way as the pre-check.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	now := s.now()
	user := &domain.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// Authenticate matches email exactly and compares the stored password as-is.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
