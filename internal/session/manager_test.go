package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bakery/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values  map[string]string
	revoked []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (s *memoryStore) Create(_ context.Context, userID uuid.UUID) (string, error) {
	token := uuid.NewString()
	s.values[token] = userID.String()
	return token, nil
}

func (s *memoryStore) Lookup(_ context.Context, token string) (Identity, error) {
	v, ok := s.values[token]
	if !ok {
		return Identity{}, nil
	}
	return NewIdentity(v), nil
}

func (s *memoryStore) Revoke(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	delete(s.values, token)
	return nil
}

func newTestManager(store Store) *Manager {
	return NewManager(store, jwt.New("test-secret", time.Hour), CookieConfig{Name: "sid"}, nil)
}

func TestManager_StartThenLoad(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemoryStore()
	m := newTestManager(store)
	userID := uuid.New()

	router := gin.New()
	router.GET("/start", func(c *gin.Context) {
		require.NoError(t, m.Start(c, userID))
		c.Status(http.StatusNoContent)
	})
	var loaded Session
	router.GET("/load", func(c *gin.Context) {
		loaded = m.Load(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/start", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotContains(t, cookies[0].Value, userID.String())

	req := httptest.NewRequest(http.MethodGet, "/load", nil)
	req.AddCookie(cookies[0])
	router.ServeHTTP(httptest.NewRecorder(), req)

	got, ok := loaded.Identity.TryParseIdentifier()
	require.True(t, ok)
	assert.Equal(t, userID, got)
	assert.NotEmpty(t, loaded.Token)
}

func TestManager_LoadWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestManager(newMemoryStore())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	s := m.Load(c)
	assert.False(t, s.Identity.Present())
	assert.Empty(t, w.Result().Cookies())
}

func TestManager_LoadForgedCookieClearsIt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestManager(newMemoryStore())

	forged, err := jwt.New("other-secret", time.Hour).GenerateToken("whatever")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: "sid", Value: forged})

	s := m.Load(c)
	assert.False(t, s.Identity.Present())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestManager_Invalidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemoryStore()
	m := newTestManager(store)
	token, err := store.Create(context.Background(), uuid.New())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	m.Invalidate(c, Session{Token: token, Identity: NewIdentity("x")})

	assert.Equal(t, []string{token}, store.revoked)
	identity, err := store.Lookup(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, identity.Present())
	require.Len(t, w.Result().Cookies(), 1)
}
