// Package dashboard computes the per-user inventory statistics.
package dashboard

import (
	"sort"

	"bakery/internal/domain"
)

// BestSellingLimit caps the best-sellers list.
const BestSellingLimit = 5

type Summary struct {
	TotalCount     int              `json:"total_count"`
	AvailableCount int              `json:"available_count"`
	LowStockCount  int              `json:"low_stock_count"`
	TotalSold      int              `json:"total_sold"`
	BestSelling    []domain.Product `json:"best_selling"`
	LowStockList   []domain.Product `json:"low_stock_list"`

	BestSellingLabels []string `json:"best_selling_labels"`
	BestSellingData   []int    `json:"best_selling_data"`
	LowStockLabels    []string `json:"low_stock_labels"`
	LowStockData      []int    `json:"low_stock_data"`
}

// Summarize is a pure function of products; the input slice is not reordered.
func Summarize(products []domain.Product) Summary {
	s := Summary{TotalCount: len(products)}

	lowStock := make([]domain.Product, 0)
	for i := range products {
		p := &products[i]
		if p.Available() {
			s.AvailableCount++
		}
		if p.LowStock() {
			s.LowStockCount++
			lowStock = append(lowStock, *p)
		}
		s.TotalSold += p.Sold()
	}

	best := make([]domain.Product, len(products))
	copy(best, products)
	sort.SliceStable(best, func(i, j int) bool {
		return best[i].Sold() > best[j].Sold()
	})
	if len(best) > BestSellingLimit {
		best = best[:BestSellingLimit]
	}
	s.BestSelling = best

	sort.SliceStable(lowStock, func(i, j int) bool {
		return *lowStock[i].Stock < *lowStock[j].Stock
	})
	s.LowStockList = lowStock

	s.BestSellingLabels = make([]string, len(best))
	s.BestSellingData = make([]int, len(best))
	for i := range best {
		s.BestSellingLabels[i] = best[i].ProductName
		s.BestSellingData[i] = best[i].Sold()
	}

	s.LowStockLabels = make([]string, len(lowStock))
	s.LowStockData = make([]int, len(lowStock))
	for i := range lowStock {
		s.LowStockLabels[i] = lowStock[i].ProductName
		s.LowStockData[i] = *lowStock[i].Stock
	}

	return s
}
