package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pedidos-backend/internal/models"
)

// ContextKeySession is where the gate stores the current identity.
const ContextKeySession = "session"

// Entry points the gate redirects to.
const (
	LoginPath   = "/login"
	LandingPath = "/"
)

// RequireSession redirects anonymous and expired sessions to the login page.
// Nothing from the protected handler is rendered for them.
func RequireSession(m *Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := m.Load(c)
			if err != nil {
				return err
			}
			if s == nil {
				return c.Redirect(http.StatusFound, LoginPath)
			}

			c.Set(ContextKeySession, s)
			return next(c)
		}
	}
}

// RequireSessionJSON is RequireSession for JSON endpoints: it answers 401
// instead of redirecting.
func RequireSessionJSON(m *Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := m.Load(c)
			if err != nil {
				return err
			}
			if s == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}

			c.Set(ContextKeySession, s)
			return next(c)
		}
	}
}

// RequireAdmin sends non-admin sessions back to the landing page.
// Must be used after RequireSession
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := GetSessionFromContext(c)
			if s == nil {
				return c.Redirect(http.StatusFound, LoginPath)
			}
			if !s.IsAdmin {
				return c.Redirect(http.StatusFound, LandingPath)
			}
			return next(c)
		}
	}
}

// RedirectIfAuthenticated keeps logged-in users off the login page.
func RedirectIfAuthenticated(m *Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := m.Load(c)
			if err != nil {
				return err
			}
			if s != nil {
				return c.Redirect(http.StatusFound, LandingPath)
			}
			return next(c)
		}
	}
}

// GetSessionFromContext retrieves the current session from the context
func GetSessionFromContext(c echo.Context) *models.Session {
	s, ok := c.Get(ContextKeySession).(*models.Session)
	if !ok {
		return nil
	}
	return s
}
