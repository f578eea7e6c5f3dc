package middleware

import (
	"context"
	"errors"
	"net/http"

	"bakery/internal/domain"
	"bakery/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

// OwnershipChecker provides middleware to verify product ownership
type OwnershipChecker struct {
	products productReader
}

// NewOwnershipChecker creates a new ownership checker
func NewOwnershipChecker(products productReader) *OwnershipChecker {
	return &OwnershipChecker{products: products}
}

// CheckProductOwnership verifies the current user owns the product in URL param "id".
// Products of other users are reported as not found.
func (oc *OwnershipChecker) CheckProductOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
			c.Abort()
			return
		}

		product, err := oc.products.GetByID(c.Request.Context(), productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
				c.Abort()
				return
			}
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load product")
			c.Abort()
			return
		}

		if product.UserID != userID {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			c.Abort()
			return
		}

		c.Next()
	}
}
