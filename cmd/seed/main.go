package main

import (
	"context"
	"errors"
	"os"

	"bakery/internal/config"
	"bakery/internal/database"
	"bakery/internal/domain"
	"bakery/internal/logger"
	"bakery/internal/modules/auth"
	"bakery/internal/modules/product"
	"bakery/internal/repository"

	"go.uber.org/zap"
)

const (
	demoEmail    = "demo@bakery.local"
	demoPassword = "demo123"
)

type demoProduct struct {
	name     string
	category string
	price    float64
	stock    int
	sold     int
	desc     string
}

var demoProducts = []demoProduct{
	{"Roti Tawar", "Roti", 15000, 25, 120, "Roti tawar lembut"},
	{"Croissant Mentega", "Pastry", 18000, 8, 95, "Croissant renyah dengan mentega"},
	{"Donat Gula", "Donat", 6000, 40, 210, ""},
	{"Kue Lapis Legit", "Kue", 85000, 3, 30, "Lapis legit spesial"},
	{"Cookies Cokelat", "Cookies", 25000, 12, 64, ""},
	{"Pie Apel", "Pie", 45000, 6, 18, ""},
	{"Tart Buah", "Tart", 120000, 2, 9, "Tart buah segar"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}

	log.Info("running migrations")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	authService := auth.NewService(users)

	owner, err := authService.Register(ctx, "Demo Baker", demoEmail, demoPassword)
	switch {
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		log.Info("demo user already exists, skipping seed", zap.String("email", demoEmail))
		return
	case err != nil:
		log.Fatal("create demo user failed", zap.Error(err))
	}
	log.Info("demo user created", zap.String("email", demoEmail), zap.String("password", demoPassword))

	// images are not seeded, so the catalog never touches the asset store here
	products := product.NewService(repository.NewProductRepository(db), nil, log)
	for _, d := range demoProducts {
		stock, sold := d.stock, d.sold
		available := stock > 0
		p := &domain.Product{
			ProductName: d.name,
			Category:    d.category,
			Price:       d.price,
			Stock:       &stock,
			SoldCount:   &sold,
			IsAvailable: &available,
			Description: d.desc,
		}
		if _, err := products.Create(ctx, p, owner.ID); err != nil {
			log.Fatal("create product failed", zap.String("product", d.name), zap.Error(err))
		}
	}

	log.Info("seed completed",
		zap.String("owner_id", owner.ID.String()),
		zap.Int("products", len(demoProducts)),
	)
}
