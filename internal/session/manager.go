package session

import (
	"net/http"

	"bakery/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CookieConfig struct {
	Name     string
	Path     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

// Session is what the carrier knows about the current request.
type Session struct {
	Token    string
	Identity Identity
}

// Manager ties the session cookie to a Store. The cookie carries a signed session id,
// never the user id itself.
type Manager struct {
	store  Store
	signer *jwt.Service
	cookie CookieConfig
	log    *zap.Logger
}

func NewManager(store Store, signer *jwt.Service, cookie CookieConfig, log *zap.Logger) *Manager {
	if cookie.Name == "" {
		cookie.Name = "bakery_session"
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, signer: signer, cookie: cookie, log: log}
}

// Load reads the session for the request. Missing, forged, unknown and expired sessions all
// come back with an absent Identity.
func (m *Manager) Load(c *gin.Context) Session {
	raw, err := c.Cookie(m.cookie.Name)
	if err != nil || raw == "" {
		return Session{}
	}

	claims, err := m.signer.ValidateToken(raw)
	if err != nil {
		m.clearCookie(c)
		return Session{}
	}

	identity, err := m.store.Lookup(c.Request.Context(), claims.SessionID)
	if err != nil {
		m.log.Error("session lookup failed", zap.Error(err))
		return Session{}
	}
	if !identity.Present() {
		m.clearCookie(c)
	}

	return Session{Token: claims.SessionID, Identity: identity}
}

// Start opens a new session for userID and sets the cookie.
func (m *Manager) Start(c *gin.Context, userID uuid.UUID) error {
	token, err := m.store.Create(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	signed, err := m.signer.GenerateToken(token)
	if err != nil {
		_ = m.store.Revoke(c.Request.Context(), token)
		return err
	}

	c.SetSameSite(m.cookie.SameSite)
	c.SetCookie(m.cookie.Name, signed, m.cookie.MaxAge, m.cookie.Path, "", m.cookie.Secure, true)
	return nil
}

// Invalidate revokes the session server-side and clears the cookie.
func (m *Manager) Invalidate(c *gin.Context, s Session) {
	if s.Token != "" {
		if err := m.store.Revoke(c.Request.Context(), s.Token); err != nil {
			m.log.Warn("session revoke failed", zap.Error(err))
		}
	}
	m.clearCookie(c)
}

func (m *Manager) clearCookie(c *gin.Context) {
	c.SetSameSite(m.cookie.SameSite)
	c.SetCookie(m.cookie.Name, "", -1, m.cookie.Path, "", m.cookie.Secure, true)
}
