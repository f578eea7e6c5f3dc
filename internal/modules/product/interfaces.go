package product

import (
	"context"
	"mime/multipart"

	"bakery/internal/domain"

	"github.com/google/uuid"
)

type ProductRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssetStore is the part of upload.Service the catalog needs.
type AssetStore interface {
	Store(fileHeader *multipart.FileHeader) (string, error)
	Delete(publicPath string) bool
}
