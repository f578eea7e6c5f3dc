package repository

import (
	"context"
	"time"

	"bakery/internal/domain"

	"gorm.io/gorm"
)

// AuthTokenRepository provides DB access for server-side session tokens.
type AuthTokenRepository struct {
	db *gorm.DB
}

func NewAuthTokenRepository(db *gorm.DB) *AuthTokenRepository {
	return &AuthTokenRepository{db: db}
}

type authTokenModel struct {
	Token     string    `gorm:"column:token;primaryKey;size:64"`
	UserID    string    `gorm:"column:user_id;index;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (authTokenModel) TableName() string { return "auth_tokens" }

func (r *AuthTokenRepository) Create(ctx context.Context, t *domain.AuthToken) error {
	m := authTokenModel{Token: t.Token, UserID: t.UserID, CreatedAt: t.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	t.CreatedAt = m.CreatedAt
	return nil
}

func (r *AuthTokenRepository) GetByToken(ctx context.Context, token string) (*domain.AuthToken, error) {
	var m authTokenModel
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&m).Error; err != nil {
		return nil, err
	}
	return &domain.AuthToken{Token: m.Token, UserID: m.UserID, CreatedAt: m.CreatedAt}, nil
}

func (r *AuthTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&authTokenModel{}).Error
}

// DeleteCreatedBefore removes tokens issued before cutoff and reports how many were removed.
func (r *AuthTokenRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&authTokenModel{})
	return tx.RowsAffected, tx.Error
}
