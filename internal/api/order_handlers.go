package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"pedidos-backend/internal/metrics"
	"pedidos-backend/internal/models"
)

// Response messages are part of the contract with the web UI.
const (
	msgOrderCreated   = "Pedido criado com sucesso!"
	msgOrderUpdated   = "Pedido atualizado com sucesso"
	msgStatusUpdated  = "Status atualizado com sucesso"
	msgOrderDeleted   = "Pedido excluído com sucesso"
	msgInvalidActive  = "Valor de ativo inválido"
	msgInvalidPayload = "invalid request body"
)

// listRecentOrders handles GET /api/pedidos
func (h *Handler) listRecentOrders(c echo.Context) error {
	orders, err := h.orders.ListRecent(c.Request().Context(), h.recentWindow)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// orderSummary handles GET /api/pedidos/resumo
func (h *Handler) orderSummary(c echo.Context) error {
	summary, err := h.summarize(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// summarize counts every order per product and prices it. Rows follow the
// catalog order.
func (h *Handler) summarize(ctx context.Context) (models.OrderSummary, error) {
	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		return models.OrderSummary{}, err
	}
	counts, err := h.orders.CountByProduct(ctx)
	if err != nil {
		return models.OrderSummary{}, err
	}
	return models.Summarize(products, counts, h.prices), nil
}

// listAllOrders handles GET /api/pedidos/todos
func (h *Handler) listAllOrders(c echo.Context) error {
	orders, err := h.orders.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// createOrder handles POST /api/pedido
func (h *Handler) createOrder(c echo.Context) error {
	var in models.OrderInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidPayload)
	}

	id, err := h.orders.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	h.metrics.OrderMutation(metrics.OpCreate, true)
	h.log.Info().Int64("order", id).Msg("order created")

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  msgOrderCreated,
		"pedidoid": id,
	})
}

// updateOrder handles PUT /api/pedido/:id
func (h *Handler) updateOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var in models.OrderInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidPayload)
	}

	found, err := h.orders.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	h.metrics.OrderMutation(metrics.OpUpdate, found)
	h.logMutation("order updated", id, found)

	return c.JSON(http.StatusOK, map[string]string{
		"message": msgOrderUpdated,
	})
}

// setOrderActive handles PUT /api/pedido/:id/ativo
func (h *Handler) setOrderActive(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req models.ActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidActive)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidActive)
	}

	found, err := h.orders.SetActive(c.Request().Context(), id, req.Flag())
	if err != nil {
		return err
	}
	h.metrics.OrderMutation(metrics.OpSetActive, found)
	h.logMutation("order active flag set", id, found)

	return c.JSON(http.StatusOK, map[string]string{
		"message": msgStatusUpdated,
	})
}

// deleteOrder handles DELETE /api/pedido/:id
func (h *Handler) deleteOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	found, err := h.orders.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	h.metrics.OrderMutation(metrics.OpDelete, found)
	h.logMutation("order deleted", id, found)

	return c.JSON(http.StatusOK, map[string]string{
		"message": msgOrderDeleted,
	})
}

// logMutation logs a write; writes to an unknown id are no-ops, logged at
// debug level only.
func (h *Handler) logMutation(msg string, id int64, found bool) {
	if !found {
		h.log.Debug().Int64("order", id).Msg(msg + " (no such order)")
		return
	}
	h.log.Info().Int64("order", id).Msg(msg)
}
