package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"

	"pedidos-backend/internal/auth"
)

// RegisterRoutes sets up the page and API routes. The /api routes are open
// unless lockAPI is set.
func RegisterRoutes(e *echo.Echo, h *Handler, lockAPI bool) {
	requireSession := auth.RequireSession(h.sessions)

	// Pages
	e.GET("/", h.indexPage, requireSession)
	e.GET("/index", h.indexPage, requireSession)
	e.GET("/historico", h.historicoPage, requireSession, auth.RequireAdmin())

	// Session routes
	e.GET("/login", h.loginPage, auth.RedirectIfAuthenticated(h.sessions))
	e.POST("/login", h.login, auth.RedirectIfAuthenticated(h.sessions))
	e.GET("/logout", h.logout)

	// Operations
	e.GET("/healthz", h.healthCheck)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: h.metrics.Registry,
	}))

	api := e.Group("/api")
	if lockAPI {
		api.Use(auth.RequireSessionJSON(h.sessions))
	}

	api.GET("/produtos", h.listProducts)
	api.GET("/roshs", h.listAccessories)

	api.GET("/pedidos", h.listRecentOrders)
	api.GET("/pedidos/todos", h.listAllOrders)
	api.GET("/pedidos/resumo", h.orderSummary)
	api.POST("/pedido", h.createOrder)
	api.PUT("/pedido/:id", h.updateOrder)
	api.PUT("/pedido/:id/ativo", h.setOrderActive)
	api.DELETE("/pedido/:id", h.deleteOrder)
}
