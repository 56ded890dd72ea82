package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// listProducts handles GET /api/produtos
func (h *Handler) listProducts(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// listAccessories handles GET /api/roshs
func (h *Handler) listAccessories(c echo.Context) error {
	roshs, err := h.catalog.ListAccessories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roshs)
}
