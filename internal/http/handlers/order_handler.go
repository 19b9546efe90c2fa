package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "intellivend/internal/log"
	"intellivend/internal/services"
)

type OrderHandler struct {
	Order *services.OrderService
}

// POST /api/v1/orders pays for the session cart and records the order.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	o, err := h.Order.Place(c.UserContext(), sid, currentUser(c))
	if err != nil {
		return fail(c, "order.place", err)
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "total": o.Total, "items": len(o.Items)})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":   o,
		"message": "Order placed successfully! Order ID: " + o.ID,
	})
}

// GET /api/v1/orders lists the signed-in user's orders.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Order.History(c.UserContext(), currentUser(c))
	if err != nil {
		return fail(c, "orders.history", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}
