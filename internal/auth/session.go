package auth

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"pedidos-backend/internal/models"
)

// Session value keys
const (
	keyUsername  = "usuario"
	keyAdmin     = "admin"
	keyCreatedAt = "created_at"
)

// SessionConfig configures the signed cookie session.
type SessionConfig struct {
	Name     string
	Secret   string
	Lifetime time.Duration
	Secure   bool
}

// NewCookieStore returns a signed and encrypted cookie store. Both keys are
// derived from the configured secret.
func NewCookieStore(cfg SessionConfig) *sessions.CookieStore {
	hashKey := sha256.Sum256([]byte("hash:" + cfg.Secret))
	blockKey := sha256.Sum256([]byte("block:" + cfg.Secret))

	store := sessions.NewCookieStore(hashKey[:], blockKey[:])
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(cfg.Lifetime / time.Second))
	return store
}

// Sessions reads and writes the identity held in the session cookie. It
// needs session.Middleware to have run for the request.
type Sessions struct {
	name     string
	lifetime time.Duration
	now      func() time.Time
}

func NewSessions(cfg SessionConfig) *Sessions {
	return &Sessions{name: cfg.Name, lifetime: cfg.Lifetime, now: time.Now}
}

// Lifetime returns the absolute session lifetime.
func (m *Sessions) Lifetime() time.Duration {
	return m.lifetime
}

// Load returns the current identity, or nil for an anonymous request. A
// session past its lifetime is cleared and treated as anonymous.
func (m *Sessions) Load(c echo.Context) (*models.Session, error) {
	sess, err := session.Get(m.name, c)
	if sess == nil {
		return nil, err
	}
	if err != nil {
		// Tampered or undecodable cookie.
		return nil, nil
	}

	username, ok := sess.Values[keyUsername].(string)
	if !ok || username == "" {
		return nil, nil
	}
	admin, _ := sess.Values[keyAdmin].(bool)
	createdAt, _ := sess.Values[keyCreatedAt].(int64)

	s := &models.Session{
		Username:  username,
		IsAdmin:   admin,
		CreatedAt: time.Unix(createdAt, 0),
	}
	if s.Expired(m.now(), m.lifetime) {
		return nil, m.Clear(c)
	}
	return s, nil
}

// Start replaces whatever the cookie held with s.
func (m *Sessions) Start(c echo.Context, s *models.Session) error {
	sess, err := m.get(c)
	if err != nil {
		return err
	}

	sess.Values = map[interface{}]interface{}{
		keyUsername:  s.Username,
		keyAdmin:     s.IsAdmin,
		keyCreatedAt: s.CreatedAt.Unix(),
	}
	sess.Options.MaxAge = int(m.lifetime / time.Second)
	return sess.Save(c.Request(), c.Response())
}

// Clear drops every session value and expires the cookie. Calling it
// without a session is fine.
func (m *Sessions) Clear(c echo.Context) error {
	sess, err := m.get(c)
	if err != nil {
		return err
	}

	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// AddFlash queues a one-shot message for the next page render.
func (m *Sessions) AddFlash(c echo.Context, msg string) error {
	sess, err := m.get(c)
	if err != nil {
		return err
	}

	sess.AddFlash(msg)
	if sess.Options.MaxAge <= 0 {
		sess.Options.MaxAge = int(m.lifetime / time.Second)
	}
	return sess.Save(c.Request(), c.Response())
}

// Flashes pops the queued messages.
func (m *Sessions) Flashes(c echo.Context) ([]string, error) {
	sess, err := m.get(c)
	if err != nil {
		return nil, err
	}

	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs, sess.Save(c.Request(), c.Response())
}

// get returns the request's session. A cookie that fails to decode still
// yields a usable empty session, so only a missing store is an error.
func (m *Sessions) get(c echo.Context) (*sessions.Session, error) {
	sess, err := session.Get(m.name, c)
	if sess == nil {
		return nil, err
	}
	return sess, nil
}
