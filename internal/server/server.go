// Package server assembles the HTTP router from the feature modules.
package server

import (
	"net/http"
	"os"
	"path/filepath"

	"bakery/internal/domain"
	"bakery/internal/domain/upload"
	"bakery/internal/middleware"
	"bakery/internal/modules/auth"
	"bakery/internal/modules/dashboard"
	"bakery/internal/modules/product"
	"bakery/internal/pkg/response"
	"bakery/internal/repository"
	"bakery/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	StaticDir     string
	MaxUploadSize int64
	CORSOrigins   []string
	LoginRate     float64
	LoginBurst    int
}

// NewRouter wires repositories, services and handlers behind the access gate.
func NewRouter(db *gorm.DB, assets *upload.Service, sessions *session.Manager, opts Options, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)

	authService := auth.NewService(userRepo)
	productService := product.NewService(productRepo, assets, log.Named("product"))

	authHandler := auth.NewHandler(authService, sessions, log.Named("auth"))
	productHandler := product.NewHandler(productService, middleware.NewOwnershipChecker(productRepo), opts.MaxUploadSize, log.Named("product"))
	dashboardHandler := dashboard.NewHandler(productService)

	r := gin.New()
	r.Use(
		middleware.ErrorLogger(log),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		middleware.CORS(opts.CORSOrigins),
		middleware.AccessGate(sessions),
	)

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}
	r.Static("/uploads", assets.BaseDir())

	registerPages(r, opts.StaticDir)

	var loginLimit gin.HandlerFunc
	if opts.LoginRate > 0 && opts.LoginBurst > 0 {
		loginLimit = middleware.RateLimit(middleware.NewClientRateLimiter(opts.LoginRate, opts.LoginBurst), log)
	}
	authHandler.RegisterPublicRoutes(r, loginLimit)
	authHandler.RegisterProtectedRoutes(r)
	productHandler.RegisterRoutes(r)
	dashboardHandler.RegisterRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Page not found")
	})

	return r
}

func registerPages(r gin.IRouter, staticDir string) {
	r.GET("/", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"app":   "bakery",
			"login": middleware.LoginPath,
		})
	})
	r.GET("/about", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"app":        "bakery",
			"about":      "Inventory and sales tracking for small bakeries",
			"categories": domain.Categories,
		})
	})
	r.GET("/error", func(c *gin.Context) {
		response.Error(c, http.StatusInternalServerError, "ERROR", "Something went wrong")
	})
	r.GET("/favicon.ico", func(c *gin.Context) {
		if staticDir != "" {
			icon := filepath.Join(staticDir, "favicon.ico")
			if _, err := os.Stat(icon); err == nil {
				c.File(icon)
				return
			}
		}
		c.Status(http.StatusNoContent)
	})
}
