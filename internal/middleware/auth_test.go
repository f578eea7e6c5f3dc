package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bakery/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeProducts map[uuid.UUID]*domain.Product

func (f fakeProducts) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func setupOwnershipRouter(userID uuid.UUID, products fakeProducts) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	checker := NewOwnershipChecker(products)
	router.GET("/products/detail/:id", checker.CheckProductOwnership(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestCheckProductOwnership(t *testing.T) {
	owner := uuid.New()
	mine := &domain.Product{ID: uuid.New(), UserID: owner}
	theirs := &domain.Product{ID: uuid.New(), UserID: uuid.New()}
	router := setupOwnershipRouter(owner, fakeProducts{mine.ID: mine, theirs.ID: theirs})

	tests := []struct {
		name string
		id   string
		want int
	}{
		{"owner", mine.ID.String(), http.StatusOK},
		{"other user", theirs.ID.String(), http.StatusNotFound},
		{"missing", uuid.NewString(), http.StatusNotFound},
		{"bad id", "abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/detail/"+tt.id, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
