package product

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"bakery/internal/domain"
	"bakery/internal/domain/upload"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the only writer of product records and of the image files they reference.
type Service struct {
	repo   ProductRepositoryInterface
	assets AssetStore
	locks  recordLocks
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo ProductRepositoryInterface, assets AssetStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, assets: assets, log: log, now: time.Now}
}

func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Product, error) {
	return s.repo.ListByUserID(ctx, ownerID)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create stores p for ownerID. The sold count is persisted as given, explicit zero included.
func (s *Service) Create(ctx context.Context, p *domain.Product, ownerID uuid.UUID) (*domain.Product, error) {
	now := s.now()
	p.ID = uuid.New()
	p.UserID = ownerID
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Update replaces the editable fields of product id with those of incoming. Owner, image
// and creation time are kept. Callers resolve absent fields with Merge first, or use UpdateMerged.
func (s *Service) Update(ctx context.Context, id uuid.UUID, incoming domain.Product) (*domain.Product, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.replace(ctx, p, incoming)
}

// UpdateMerged runs Merge against the stored record and Update in one step under the
// product's lock, so a sold count written in between is not lost.
func (s *Service) UpdateMerged(ctx context.Context, id uuid.UUID, incoming domain.Product) (*domain.Product, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.replace(ctx, p, Merge(*p, incoming))
}

func (s *Service) replace(ctx context.Context, p *domain.Product, incoming domain.Product) (*domain.Product, error) {
	p.ProductName = incoming.ProductName
	p.Category = incoming.Category
	p.Price = incoming.Price
	p.Stock = incoming.Stock
	p.Description = incoming.Description
	p.IsAvailable = incoming.IsAvailable
	p.SoldCount = incoming.SoldCount
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete removes the product and, best effort, its image. Deleting a missing product is not an error.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.lock(id)
	defer unlock()

	p, err := s.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if img := p.Image(); img != "" && !s.assets.Delete(img) {
		s.log.Warn("product image not removed", zap.String("product_id", id.String()), zap.String("path", img))
	}
	return nil
}

// UpdateImage swaps the product image. The new file is stored and persisted before the
// old one is removed, so a failure at any step leaves the product pointing at a file
// that exists. An empty file is a no-op.
func (s *Service) UpdateImage(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) error {
	unlock := s.locks.lock(id)
	defer unlock()

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if file == nil || file.Size == 0 {
		return nil
	}

	newPath, err := s.assets.Store(file)
	if err != nil {
		if errors.Is(err, upload.ErrStorageUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", upload.ErrStorageUnavailable, err)
	}
	if newPath == "" {
		return nil
	}

	oldPath := p.Image()
	p.ImageURL = &newPath
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		s.assets.Delete(newPath)
		return fmt.Errorf("update product image: %w", err)
	}

	if oldPath != "" && oldPath != newPath && !s.assets.Delete(oldPath) {
		s.log.Warn("old product image not removed", zap.String("product_id", id.String()), zap.String("path", oldPath))
	}
	return nil
}

func (s *Service) UpdateSoldCount(ctx context.Context, id uuid.UUID, soldCount int) error {
	unlock := s.locks.lock(id)
	defer unlock()

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.SoldCount = &soldCount
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return fmt.Errorf("update sold count: %w", err)
	}
	return nil
}
