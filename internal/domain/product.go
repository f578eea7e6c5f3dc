package domain

import (
	"time"

	"github.com/google/uuid"
)

// LowStockThreshold is the inclusive upper bound for a product to count as low on stock.
const LowStockThreshold = 10

// Categories is the suggested product vocabulary. It is not enforced on write.
var Categories = []string{"Kue", "Roti", "Pastry", "Cookies", "Donat", "Pie", "Tart"}

// Product is a bakery item owned by a single user.
// Stock, IsAvailable and SoldCount may be unset; see the helpers below for how unset values are read.
type Product struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       *int      `json:"stock"`
	Description string    `json:"description,omitempty"`
	IsAvailable *bool     `json:"is_available"`
	SoldCount   *int      `json:"sold_count"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Available reports true only when the flag is set and true.
func (p Product) Available() bool {
	return p.IsAvailable != nil && *p.IsAvailable
}

// LowStock reports true when stock is set and at or below LowStockThreshold.
// Unset stock is never low stock.
func (p Product) LowStock() bool {
	return p.Stock != nil && *p.Stock <= LowStockThreshold
}

// Sold returns the sold count, treating unset as zero.
func (p Product) Sold() int {
	if p.SoldCount == nil {
		return 0
	}
	return *p.SoldCount
}

// Image returns the image reference or "" when there is none.
func (p Product) Image() string {
	if p.ImageURL == nil {
		return ""
	}
	return *p.ImageURL
}
