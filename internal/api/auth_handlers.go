package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"pedidos-backend/internal/auth"
	"pedidos-backend/internal/models"
	"pedidos-backend/internal/templates"
)

const msgInvalidLogin = "Usuário ou senha inválidos"

// loginPage handles GET /login
func (h *Handler) loginPage(c echo.Context) error {
	flashes, err := h.sessions.Flashes(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, templates.ViewLogin, templates.PageData{Flashes: flashes})
}

// login handles POST /login
func (h *Handler) login(c echo.Context) error {
	var form models.LoginForm
	if err := c.Bind(&form); err != nil {
		return h.rejectLogin(c, form.Username)
	}
	if err := c.Validate(&form); err != nil {
		return h.rejectLogin(c, form.Username)
	}

	s, err := h.auth.Authenticate(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return h.rejectLogin(c, form.Username)
		}
		return err
	}

	if err := h.sessions.Start(c, s); err != nil {
		return err
	}
	h.metrics.LoginAttempt(true)
	h.log.Info().Str("user", s.Username).Bool("admin", s.IsAdmin).Str("ip", c.RealIP()).Msg("login")

	return c.Redirect(http.StatusFound, auth.LandingPath)
}

func (h *Handler) rejectLogin(c echo.Context, username string) error {
	h.metrics.LoginAttempt(false)
	h.log.Warn().Str("user", username).Str("ip", c.RealIP()).Msg("login rejected")

	if err := h.sessions.AddFlash(c, msgInvalidLogin); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, auth.LoginPath)
}

// logout handles GET /logout
func (h *Handler) logout(c echo.Context) error {
	if s, _ := h.sessions.Load(c); s != nil {
		h.log.Info().Str("user", s.Username).Msg("logout")
	}
	if err := h.sessions.Clear(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, auth.LoginPath)
}

// indexPage handles GET / and GET /index
func (h *Handler) indexPage(c echo.Context) error {
	s := auth.GetSessionFromContext(c)
	return c.Render(http.StatusOK, templates.ViewIndex, templates.PageData{
		Username: s.Username,
		Admin:    s.IsAdmin,
	})
}

// historicoPage handles GET /historico
func (h *Handler) historicoPage(c echo.Context) error {
	s := auth.GetSessionFromContext(c)
	summary, err := h.summarize(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, templates.ViewHistorico, templates.PageData{
		Username: s.Username,
		Admin:    true,
		Summary:  &summary,
	})
}
