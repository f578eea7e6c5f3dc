package product

import "bakery/internal/domain"

type ProductRequest struct {
	ProductName string  `form:"product_name" json:"product_name" validate:"required"`
	Category    string  `form:"category" json:"category" validate:"required"`
	Price       float64 `form:"price" json:"price" validate:"gte=0"`
	Stock       *int    `form:"stock" json:"stock" validate:"omitempty,gte=0"`
	Description string  `form:"description" json:"description"`
	IsAvailable *bool   `form:"is_available" json:"is_available"`
	SoldCount   *int    `form:"sold_count" json:"sold_count" validate:"omitempty,gte=0"`
}

func (r ProductRequest) toDomain() domain.Product {
	return domain.Product{
		ProductName: r.ProductName,
		Category:    r.Category,
		Price:       r.Price,
		Stock:       r.Stock,
		Description: r.Description,
		IsAvailable: r.IsAvailable,
		SoldCount:   r.SoldCount,
	}
}

type SoldCountRequest struct {
	SoldCount *int `form:"sold_count" json:"sold_count" validate:"required,gte=0"`
}
