// Package config loads the service settings from the environment (and an optional .env file).
package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const DefaultSessionSecret = "change-me-session-secret"

type Config struct {
	AppEnv      string `env:"APP_ENV" env-default:"dev"`
	HTTPAddr    string `env:"HTTP_ADDR" env-default:":8080"`
	MetricsAddr string `env:"METRICS_ADDR" env-default:":9090"`
	DatabaseURL string `env:"DATABASE_URL" env-default:"bakery.db"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	Storage
	Session
	Cookie
	Redis
	LoginLimit

	CORSOrigins []string `env:"CORS_ORIGINS" env-separator:","`
}

type Storage struct {
	UploadDir     string `env:"UPLOAD_DIR" env-default:"./uploads"`
	StaticDir     string `env:"STATIC_DIR" env-default:"./static"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" env-default:"5242880"`
}

type Session struct {
	Secret        string        `env:"SESSION_SECRET" env-default:"change-me-session-secret"`
	TTL           time.Duration `env:"SESSION_TTL" env-default:"24h"`
	Store         string        `env:"SESSION_STORE" env-default:"db"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" env-default:"1h"`
}

type Cookie struct {
	Name     string `env:"COOKIE_NAME" env-default:"bakery_session"`
	Secure   bool   `env:"COOKIE_SECURE" env-default:"false"`
	SameSite string `env:"COOKIE_SAMESITE" env-default:"Lax"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// LoginLimit throttles POST /login per client IP.
type LoginLimit struct {
	PerSecond float64 `env:"LOGIN_RATE_PER_SEC" env-default:"1"`
	Burst     int     `env:"LOGIN_BURST" env-default:"5"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.Session.Store = strings.ToLower(strings.TrimSpace(cfg.Session.Store))

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProd reports whether the app runs in a prod-like environment.
func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

// SameSiteMode maps COOKIE_SAMESITE onto net/http. validateConfig has already rejected unknown values.
func (c *Config) SameSiteMode() http.SameSite {
	switch strings.ToLower(strings.TrimSpace(c.Cookie.SameSite)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be > 0")
	}
	if cfg.Session.SweepInterval <= 0 {
		return errors.New("SESSION_SWEEP_INTERVAL must be > 0")
	}
	if cfg.Session.Store != "db" && cfg.Session.Store != "redis" {
		return fmt.Errorf("SESSION_STORE must be one of: db, redis (got %q)", cfg.Session.Store)
	}
	if cfg.Storage.MaxUploadSize <= 0 {
		return errors.New("MAX_UPLOAD_SIZE must be > 0")
	}
	if strings.TrimSpace(cfg.Storage.UploadDir) == "" {
		return errors.New("UPLOAD_DIR must not be empty")
	}
	if strings.TrimSpace(cfg.Cookie.Name) == "" {
		return errors.New("COOKIE_NAME must not be empty")
	}
	sameSite := strings.ToLower(strings.TrimSpace(cfg.Cookie.SameSite))
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return errors.New("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.Cookie.Secure {
		return errors.New("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}
	if cfg.LoginLimit.PerSecond <= 0 || cfg.LoginLimit.Burst <= 0 {
		return errors.New("LOGIN_RATE_PER_SEC and LOGIN_BURST must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.Session.Secret, DefaultSessionSecret) {
			return errors.New("in prod/release SESSION_SECRET must be set and not default")
		}
		if !cfg.Cookie.Secure {
			return errors.New("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
