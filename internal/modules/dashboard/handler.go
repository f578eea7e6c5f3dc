package dashboard

import (
	"context"
	"net/http"

	"bakery/internal/domain"
	"bakery/internal/middleware"
	"bakery/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type productLister interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Product, error)
}

type Handler struct {
	products productLister
}

func NewHandler(products productLister) *Handler {
	return &Handler{products: products}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/dashboard", h.Get)
}

func (h *Handler) Get(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	products, err := h.products.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to load dashboard")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": Summarize(products)})
}
