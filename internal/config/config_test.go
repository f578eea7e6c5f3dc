package config

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "db", cfg.Session.Store)
	assert.Equal(t, "bakery_session", cfg.Cookie.Name)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxUploadSize)
	assert.Equal(t, http.SameSiteLaxMode, cfg.SameSiteMode())
	assert.False(t, cfg.IsProd())
}

func TestLoad_FromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SAMESITE", "Strict")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, http.SameSiteStrictMode, cfg.SameSiteMode())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func validConfig() *Config {
	return &Config{
		AppEnv:     "dev",
		Storage:    Storage{UploadDir: "./uploads", MaxUploadSize: 1},
		Session:    Session{Secret: DefaultSessionSecret, TTL: time.Hour, Store: "db", SweepInterval: time.Minute},
		Cookie:     Cookie{Name: "bakery_session", SameSite: "Lax"},
		LoginLimit: LoginLimit{PerSecond: 1, Burst: 1},
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "valid", mutate: func(*Config) {}, ok: true},
		{name: "zero ttl", mutate: func(c *Config) { c.Session.TTL = 0 }},
		{name: "unknown store", mutate: func(c *Config) { c.Session.Store = "memcached" }},
		{name: "bad samesite", mutate: func(c *Config) { c.Cookie.SameSite = "sometimes" }},
		{name: "samesite none needs secure", mutate: func(c *Config) { c.Cookie.SameSite = "None" }},
		{name: "prod default secret", mutate: func(c *Config) { c.AppEnv = "prod"; c.Cookie.Secure = true }},
		{name: "prod insecure cookie", mutate: func(c *Config) { c.AppEnv = "prod"; c.Session.Secret = "real" }},
		{name: "prod ok", mutate: func(c *Config) {
			c.AppEnv = "production"
			c.Session.Secret = "real"
			c.Cookie.Secure = true
		}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
