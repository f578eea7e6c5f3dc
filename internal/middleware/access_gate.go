package middleware

import (
	"net/http"
	"strings"

	"bakery/internal/metrics"
	"bakery/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

var (
	publicPrefixes = []string{"/static/", "/uploads/", "/h2-console/"}
	publicExact    = map[string]bool{
		"/":            true,
		"/login":       true,
		"/register":    true,
		"/about":       true,
		"/error":       true,
		"/favicon.ico": true,
	}
	publicSuffixes = []string{".css", ".js", ".png", ".jpg", ".ico"}
)

type Outcome int

const (
	Allow Outcome = iota
	DenyRedirect
)

func (o Outcome) String() string {
	if o == Allow {
		return "allow"
	}
	return "deny_redirect"
}

// Decision is the gate's verdict for one request. UserID is set only for authenticated allows.
type Decision struct {
	Outcome Outcome
	Target  string
	UserID  uuid.UUID
}

// IsPublicPath reports whether path bypasses identity checks.
func IsPublicPath(path string) bool {
	if publicExact[path] {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, s := range publicSuffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}

// Decide applies the access rules. invalidate is called once, and only, when the session
// carries an identity that is not a well-formed user id.
func Decide(path string, identity session.Identity, invalidate func()) Decision {
	if IsPublicPath(path) {
		return Decision{Outcome: Allow}
	}
	if !identity.Present() {
		return Decision{Outcome: DenyRedirect, Target: LoginPath}
	}

	userID, ok := identity.TryParseIdentifier()
	if !ok {
		if invalidate != nil {
			invalidate()
		}
		return Decision{Outcome: DenyRedirect, Target: LoginPath}
	}

	return Decision{Outcome: Allow, UserID: userID}
}

// AccessGate runs Decide for every request. Allowed authenticated requests get "user_id"
// (uuid.UUID) in the context; denied ones are redirected and aborted.
func AccessGate(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if IsPublicPath(path) {
			metrics.GateDecisions.WithLabelValues("public").Inc()
			c.Next()
			return
		}

		s := sessions.Load(c)
		d := Decide(path, s.Identity, func() { sessions.Invalidate(c, s) })
		metrics.GateDecisions.WithLabelValues(d.Outcome.String()).Inc()

		if d.Outcome == DenyRedirect {
			c.Redirect(http.StatusFound, d.Target)
			c.Abort()
			return
		}

		c.Set("user_id", d.UserID)
		c.Next()
	}
}

// CurrentUserID returns the id set by AccessGate.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
