package main

import (
	"context"
	"os"
	"time"

	"bakery/internal/config"
	"bakery/internal/database"
	"bakery/internal/logger"
	"bakery/internal/repository"

	"go.uber.org/zap"
)

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
		log.Fatal("db connect failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := repository.NewAuthTokenRepository(db).DeleteCreatedBefore(ctx, time.Now().Add(-cfg.Session.TTL))
	if err != nil {
		log.Fatal("cleanup auth_tokens failed", zap.Error(err))
	}

	log.Info("session cleanup completed", zap.Int64("auth_tokens", removed))
}
