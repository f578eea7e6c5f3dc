package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakery/internal/config"
	"bakery/internal/database"
	"bakery/internal/domain/upload"
	"bakery/internal/logger"
	"bakery/internal/metrics"
	jwtsvc "bakery/internal/pkg/jwt"
	"bakery/internal/repository"
	"bakery/internal/server"
	"bakery/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	assets, err := upload.NewService(cfg.Storage.UploadDir, log.Named("upload"))
	if err != nil {
		log.Fatal("upload storage unavailable", zap.Error(err))
	}

	store, closeStore := newSessionStore(ctx, cfg, repository.NewAuthTokenRepository(db), log)
	defer closeStore()

	sessions := session.NewManager(
		store,
		jwtsvc.New(cfg.Session.Secret, cfg.Session.TTL),
		session.CookieConfig{
			Name:     cfg.Cookie.Name,
			Secure:   cfg.Cookie.Secure,
			SameSite: cfg.SameSiteMode(),
			MaxAge:   int(cfg.Session.TTL.Seconds()),
		},
		log.Named("session"),
	)

	router := server.NewRouter(db, assets, sessions, server.Options{
		StaticDir:     cfg.Storage.StaticDir,
		MaxUploadSize: cfg.Storage.MaxUploadSize,
		CORSOrigins:   cfg.CORSOrigins,
		LoginRate:     cfg.LoginLimit.PerSecond,
		LoginBurst:    cfg.LoginLimit.Burst,
	}, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler())
	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		log.Info("bakery listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("env", cfg.AppEnv),
			zap.String("session_store", cfg.Session.Store),
			zap.Bool("cookie_secure", cfg.Cookie.Secure),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("metrics shutdown failed", zap.Error(err))
	}
}

// newSessionStore picks the session backend. The DB store gets a background sweeper;
// redis expires keys by itself.
func newSessionStore(ctx context.Context, cfg *config.Config, tokens *repository.AuthTokenRepository, log *zap.Logger) (session.Store, func()) {
	if cfg.Session.Store == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Fatal("redis unavailable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		return session.NewRedisStore(client, cfg.Session.TTL), func() { _ = client.Close() }
	}

	session.StartSweeper(ctx, tokens, cfg.Session.SweepInterval, cfg.Session.TTL, log.Named("sweeper"))
	return session.NewDBStore(tokens, cfg.Session.TTL), func() {}
}
