package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bakery/internal/pkg/jwt"
	"bakery/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var publicPaths = []string{
	"/", "/login", "/register", "/about", "/error", "/favicon.ico",
	"/static/css/app.css", "/static/", "/uploads/abc_roti.jpg", "/h2-console/", "/h2-console/login.do",
	"/anything/style.css", "/js/app.js", "/img/logo.png", "/img/photo.jpg", "/icons/x.ico",
}

var privatePaths = []string{
	"/dashboard", "/products", "/products/create", "/users/profile", "/logout",
	"/login/extra", "/static", "/uploads", "/img/photo.jpeg", "/img/photo.gif",
}

func TestDecide_PublicPathsAlwaysAllowed(t *testing.T) {
	identities := []session.Identity{
		{},
		session.NewIdentity("garbage"),
		session.NewIdentity(uuid.NewString()),
	}

	for _, path := range publicPaths {
		for _, identity := range identities {
			calls := 0
			d := Decide(path, identity, func() { calls++ })
			assert.Equal(t, Allow, d.Outcome, path)
			assert.Equal(t, 0, calls, path)
		}
	}
}

func TestDecide_NoIdentityRedirectsToLogin(t *testing.T) {
	for _, path := range privatePaths {
		calls := 0
		d := Decide(path, session.Identity{}, func() { calls++ })
		assert.Equal(t, DenyRedirect, d.Outcome, path)
		assert.Equal(t, "/login", d.Target, path)
		assert.Equal(t, 0, calls, path)
	}
}

func TestDecide_MalformedIdentityInvalidatesOnce(t *testing.T) {
	for _, raw := range []string{"", "42", "not-a-uuid", uuid.Nil.String()} {
		calls := 0
		d := Decide("/dashboard", session.NewIdentity(raw), func() { calls++ })
		assert.Equal(t, DenyRedirect, d.Outcome, raw)
		assert.Equal(t, "/login", d.Target, raw)
		assert.Equal(t, 1, calls, raw)
	}
}

func TestDecide_WellFormedIdentityAllowed(t *testing.T) {
	id := uuid.New()
	calls := 0

	d := Decide("/products", session.NewIdentity(id.String()), func() { calls++ })

	assert.Equal(t, Allow, d.Outcome)
	assert.Equal(t, id, d.UserID)
	assert.Equal(t, 0, calls)
}

type stubStore struct {
	identities map[string]session.Identity
	revoked    []string
}

func (s *stubStore) Create(_ context.Context, userID uuid.UUID) (string, error) {
	token := uuid.NewString()
	s.identities[token] = session.NewIdentity(userID.String())
	return token, nil
}

func (s *stubStore) Lookup(_ context.Context, token string) (session.Identity, error) {
	return s.identities[token], nil
}

func (s *stubStore) Revoke(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	delete(s.identities, token)
	return nil
}

func setupGateRouter(t *testing.T, store *stubStore) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	signer := jwt.New("gate-secret", time.Hour)
	manager := session.NewManager(store, signer, session.CookieConfig{Name: "sid"}, nil)

	router := gin.New()
	router.Use(AccessGate(manager))
	router.GET("/dashboard", func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})
	router.GET("/about", func(c *gin.Context) {
		c.String(http.StatusOK, "about")
	})
	return router, signer
}

func gateRequest(router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAccessGate_RedirectsAnonymous(t *testing.T) {
	router, _ := setupGateRouter(t, &stubStore{identities: map[string]session.Identity{}})

	w := gateRequest(router, "/dashboard", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAccessGate_PublicPathWithoutSession(t *testing.T) {
	router, _ := setupGateRouter(t, &stubStore{identities: map[string]session.Identity{}})

	w := gateRequest(router, "/about", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "about", w.Body.String())
}

func TestAccessGate_AllowsValidSession(t *testing.T) {
	userID := uuid.New()
	store := &stubStore{identities: map[string]session.Identity{
		"tok": session.NewIdentity(userID.String()),
	}}
	router, signer := setupGateRouter(t, store)
	signed, err := signer.GenerateToken("tok")
	require.NoError(t, err)

	w := gateRequest(router, "/dashboard", &http.Cookie{Name: "sid", Value: signed})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
	assert.Empty(t, store.revoked)
}

func TestAccessGate_MalformedSessionIsInvalidated(t *testing.T) {
	store := &stubStore{identities: map[string]session.Identity{
		"tok": session.NewIdentity("12345"),
	}}
	router, signer := setupGateRouter(t, store)
	signed, err := signer.GenerateToken("tok")
	require.NoError(t, err)

	w := gateRequest(router, "/dashboard", &http.Cookie{Name: "sid", Value: signed})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, []string{"tok"}, store.revoked)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
}
