package product

import "bakery/internal/domain"

// Merge resolves the fields a form may leave out against the stored record, so that
// Update always receives a complete product. An absent sold count keeps the stored
// value, or 0 when the stored one is absent too. Every other field is taken from incoming.
func Merge(existing, incoming domain.Product) domain.Product {
	merged := incoming
	if merged.SoldCount == nil {
		sold := existing.Sold()
		merged.SoldCount = &sold
	}
	return merged
}
