package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "intellivend/internal/log"
	"intellivend/internal/services"
	"intellivend/internal/validate"
)

type WishlistHandler struct {
	Wish    *services.WishlistService
	Catalog *services.CatalogService
}

// GET /api/v1/wishlist
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	products, err := h.Catalog.All(c.UserContext())
	if err != nil {
		return fail(c, "wishlist.list", err)
	}
	return c.JSON(fiber.Map{"ids": h.Wish.IDs(sid), "products": h.Wish.List(sid, products)})
}

// POST /api/v1/wishlist/:id toggles the product.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "productId", "missing productId")
	}
	saved := h.Wish.Toggle(sid, pid)
	msg := "Removed from wishlist"
	if saved {
		msg = "Added to wishlist"
	}
	applog.Audit(c, "wishlist.toggle", map[string]any{"product": pid, "saved": saved})
	return c.JSON(fiber.Map{"saved": saved, "message": msg})
}
