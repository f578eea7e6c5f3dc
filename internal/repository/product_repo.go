package repository

import (
	"context"
	"fmt"
	"time"

	"bakery/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productModel struct {
	ID          string    `gorm:"column:id;primaryKey;size:36"`
	UserID      string    `gorm:"column:user_id;index;size:36;not null"`
	ProductName string    `gorm:"column:product_name;not null"`
	Category    string    `gorm:"column:category"`
	Price       float64   `gorm:"column:price"`
	Stock       *int      `gorm:"column:stock"`
	Description string    `gorm:"column:description"`
	IsAvailable *bool     `gorm:"column:is_available"`
	SoldCount   *int      `gorm:"column:sold_count"`
	ImageURL    *string   `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productModel) TableName() string { return "products" }

func toDomainProduct(m productModel) (*domain.Product, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", m.ID, err)
	}
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, fmt.Errorf("product %q owner %q: %w", m.ID, m.UserID, err)
	}
	return &domain.Product{
		ID:          id,
		UserID:      userID,
		ProductName: m.ProductName,
		Category:    m.Category,
		Price:       m.Price,
		Stock:       m.Stock,
		Description: m.Description,
		IsAvailable: m.IsAvailable,
		SoldCount:   m.SoldCount,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func toProductModel(p *domain.Product) productModel {
	return productModel{
		ID:          p.ID.String(),
		UserID:      p.UserID.String(),
		ProductName: p.ProductName,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
		IsAvailable: p.IsAvailable,
		SoldCount:   p.SoldCount,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m := toProductModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var m productModel
	tx := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProduct(m)
}

// ListByUserID returns the user's products in insertion order.
func (r *ProductRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Product, error) {
	var rows []productModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, m := range rows {
		p, err := toDomainProduct(m)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

// Update writes every column of p, including nil ones.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	m := toProductModel(p)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	p.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&productModel{}).Error
}
