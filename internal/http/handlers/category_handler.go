package handlers

import (
	"github.com/gofiber/fiber/v2"

	"intellivend/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/categories lists categories in use, in catalog order.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		return fail(c, "categories", err)
	}
	return c.JSON(fiber.Map{"categories": append([]string{services.CategoryAll}, cats...)})
}

// GET /api/v1/taxonomy
func (h *CategoryHandler) Taxonomy(c *fiber.Ctx) error {
	return c.JSON(h.Catalog.Taxonomy())
}
