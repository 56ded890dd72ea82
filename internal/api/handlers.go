package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"pedidos-backend/internal/auth"
	"pedidos-backend/internal/metrics"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	log          zerolog.Logger
	db           Pinger
	orders       OrderStore
	catalog      CatalogStore
	auth         Authenticator
	sessions     *auth.Sessions
	metrics      *metrics.Metrics
	recentWindow time.Duration
	prices       map[string]float64
}

// healthCheck handles GET /healthz
func (h *Handler) healthCheck(c echo.Context) error {
	if h.db != nil {
		if err := h.db.PingContext(c.Request().Context()); err != nil {
			h.log.Error().Err(err).Msg("health check: store unreachable")
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// parseID reads the :id path parameter. Anything that is not an integer is
// a 404, the same as a route that does not exist.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return id, nil
}
