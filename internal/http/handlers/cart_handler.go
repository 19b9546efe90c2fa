package handlers

import (
	"github.com/gofiber/fiber/v2"

	"intellivend/internal/services"
	"intellivend/internal/validate"
)

type CartHandler struct {
	Cart    *services.CartService
	Catalog *services.CatalogService
}

type cartRequest struct {
	ProductID string `json:"productId"`
	Delta     int    `json:"delta"`
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(h.Cart.View(ensureSID(c)))
}

// POST /api/v1/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	productID, ok := validate.ID(req.ProductID)
	if !ok {
		return badRequest(c, "productId", "missing productId")
	}
	p, err := h.Catalog.Product(c.UserContext(), productID)
	if err != nil {
		return fail(c, "cart.add", err)
	}
	h.Cart.Add(sid, p)
	return c.JSON(fiber.Map{"cart": h.Cart.View(sid), "message": "Added " + p.Name + " to cart"})
}

// PATCH /api/v1/cart/:id
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "productId", "missing productId")
	}
	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	h.Cart.UpdateQuantity(sid, productID, validate.Delta(req.Delta))
	return c.JSON(h.Cart.View(sid))
}

// DELETE /api/v1/cart/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "productId", "missing productId")
	}
	h.Cart.Remove(sid, productID)
	return c.JSON(h.Cart.View(sid))
}
