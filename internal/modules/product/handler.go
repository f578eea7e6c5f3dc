package product

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"bakery/internal/domain"
	"bakery/internal/domain/upload"
	"bakery/internal/middleware"
	"bakery/internal/pkg/labels"
	"bakery/internal/pkg/response"
	"bakery/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	imageField      = "image"
	multipartMemory = 32 << 20
)

// optionalFields bind to pointers; an empty value means "not given", not zero.
var optionalFields = []string{"stock", "sold_count", "is_available"}

type Handler struct {
	service       *Service
	ownership     *middleware.OwnershipChecker
	maxUploadSize int64
	log           *zap.Logger
}

func NewHandler(service *Service, ownership *middleware.OwnershipChecker, maxUploadSize int64, log *zap.Logger) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = upload.MaxFileSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, ownership: ownership, maxUploadSize: maxUploadSize, log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	products := r.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/categories", h.Categories)
		products.POST("/create", h.Create)
		products.POST("/delete/:id", h.Delete)

		owned := products.Group("")
		owned.Use(h.ownership.CheckProductOwnership())
		owned.GET("/detail/:id", h.Detail)
		owned.POST("/update/:id", h.Update)
		owned.POST("/update-image/:id", h.UpdateImage)
		owned.POST("/update-sales/:id", h.UpdateSales)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	products, err := h.service.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "list products failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

func (h *Handler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"categories": domain.Categories})
}

func (h *Handler) Detail(c *gin.Context) {
	p, err := h.service.GetByID(c.Request.Context(), uuid.MustParse(c.Param("id")))
	if err != nil {
		h.fail(c, err, "get product failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": p})
}

// Create saves the product first and attaches the image afterwards. A failed image
// upload keeps the product and is reported next to it.
func (h *Handler) Create(c *gin.Context) {
	t := labels.For(c.GetHeader("Accept-Language"))
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	req, ok := h.bindProduct(c, t)
	if !ok {
		return
	}
	file, ok := h.formImage(c, t)
	if !ok {
		return
	}

	p := req.toDomain()
	if p.SoldCount == nil {
		zero := 0
		p.SoldCount = &zero
	}

	created, err := h.service.Create(c.Request.Context(), &p, userID)
	if err != nil {
		h.fail(c, err, "create product failed")
		return
	}

	body := gin.H{"message": t.Get(labels.ProductSaved)}
	if file != nil {
		if err := h.service.UpdateImage(c.Request.Context(), created.ID, file); err != nil {
			h.log.Error("image upload failed", zap.String("product_id", created.ID.String()), zap.Error(err))
			body["image_error"] = "image_upload_failed"
			body["image_message"] = t.Get(labels.ImageUploadFailed)
		} else if fresh, err := h.service.GetByID(c.Request.Context(), created.ID); err == nil {
			created = fresh
		}
	}
	body["product"] = created
	response.Success(c, http.StatusCreated, body)
}

// Update replaces the product fields. A form without sold_count keeps the stored value.
func (h *Handler) Update(c *gin.Context) {
	t := labels.For(c.GetHeader("Accept-Language"))
	id := uuid.MustParse(c.Param("id"))

	req, ok := h.bindProduct(c, t)
	if !ok {
		return
	}

	updated, err := h.service.UpdateMerged(c.Request.Context(), id, req.toDomain())
	if err != nil {
		h.fail(c, err, "update product failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": updated, "message": t.Get(labels.ProductSaved)})
}

func (h *Handler) UpdateImage(c *gin.Context) {
	t := labels.For(c.GetHeader("Accept-Language"))
	id := uuid.MustParse(c.Param("id"))

	file, ok := h.formImage(c, t)
	if !ok {
		return
	}

	if err := h.service.UpdateImage(c.Request.Context(), id, file); err != nil {
		if errors.Is(err, upload.ErrStorageUnavailable) {
			h.log.Error("image upload failed", zap.String("product_id", id.String()), zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "IMAGE_UPLOAD_FAILED", t.Get(labels.ImageUploadFailed))
			return
		}
		h.fail(c, err, "update image failed")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get product failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": p})
}

func (h *Handler) UpdateSales(c *gin.Context) {
	t := labels.For(c.GetHeader("Accept-Language"))
	id := uuid.MustParse(c.Param("id"))

	var req SoldCountRequest
	dropEmptyFields(c.Request, optionalFields...)
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", t.Get(labels.ValidationFailed))
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", t.Get(labels.ValidationFailed), t.Fields(errs))
		return
	}

	if err := h.service.UpdateSoldCount(c.Request.Context(), id, *req.SoldCount); err != nil {
		h.fail(c, err, "update sold count failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "sold_count": *req.SoldCount})
}

// Delete is idempotent, so it skips the ownership middleware: a missing product is a
// success, while another user's product is still reported as not found.
func (h *Handler) Delete(c *gin.Context) {
	t := labels.For(c.GetHeader("Accept-Language"))
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	switch {
	case errors.Is(err, ErrProductNotFound):
	case err != nil:
		h.fail(c, err, "get product failed")
		return
	case p.UserID != userID:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", t.Get(labels.ProductNotFound))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "delete product failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "message": t.Get(labels.ProductDeleted)})
}

func (h *Handler) bindProduct(c *gin.Context, t labels.Table) (ProductRequest, bool) {
	var req ProductRequest
	dropEmptyFields(c.Request, optionalFields...)
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", t.Get(labels.ValidationFailed))
		return req, false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", t.Get(labels.ValidationFailed), t.Fields(errs))
		return req, false
	}
	return req, true
}

// formImage returns the optional image part after the type and size checks.
func (h *Handler) formImage(c *gin.Context, t labels.Table) (*multipart.FileHeader, bool) {
	file, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", t.Get(labels.ValidationFailed))
		return nil, false
	}

	switch err := upload.Validate(file, h.maxUploadSize); {
	case errors.Is(err, upload.ErrFileTooLarge):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", t.Get(labels.ValidationFailed),
			map[string]string{imageField: t.Get(labels.ImageTooLarge)})
		return nil, false
	case errors.Is(err, upload.ErrInvalidMimeType):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", t.Get(labels.ValidationFailed),
			map[string]string{imageField: t.Get(labels.ImageInvalid)})
		return nil, false
	}
	if file.Size == 0 {
		return nil, true
	}
	return file, true
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	t := labels.For(c.GetHeader("Accept-Language"))
	if errors.Is(err, ErrProductNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", t.Get(labels.ProductNotFound))
		return
	}
	_ = c.Error(fmt.Errorf("%s: %w", msg, err))
	response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", t.Get(labels.GenericError))
}

// dropEmptyFields removes blank values of fields from the parsed form before binding.
func dropEmptyFields(r *http.Request, fields ...string) {
	// ErrNotMultipart still leaves r.Form and r.PostForm parsed
	_ = r.ParseMultipartForm(multipartMemory)
	for _, f := range fields {
		for _, values := range []url.Values{r.Form, r.PostForm} {
			if values != nil && strings.TrimSpace(values.Get(f)) == "" {
				delete(values, f)
			}
		}
		if r.MultipartForm != nil && len(r.MultipartForm.Value[f]) > 0 && strings.TrimSpace(r.MultipartForm.Value[f][0]) == "" {
			delete(r.MultipartForm.Value, f)
		}
	}
}
