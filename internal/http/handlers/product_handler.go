package handlers

import (
	"github.com/gofiber/fiber/v2"

	"intellivend/internal/log"
	"intellivend/internal/services"
	"intellivend/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, "This item is no longer available")
	}
	p, err := h.Catalog.Product(c.UserContext(), id)
	if err != nil {
		return fail(c, "product.detail", err)
	}
	return c.JSON(p)
}

// POST /api/v1/products/:id/reviews
func (h *ProductHandler) Review(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "This item is no longer available")
	}
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	if !validate.Rating(req.Rating) {
		return badRequest(c, "rating", "Rating must be 1 to 5 stars")
	}
	comment, ok := validate.Text(req.Comment, 1000)
	if !ok || comment == "" {
		return badRequest(c, "comment", "Write a short comment")
	}

	rev, err := h.Catalog.AddReview(c.UserContext(), id, currentUser(c), req.Rating, comment)
	if err != nil {
		return fail(c, "review.add", err)
	}
	log.Audit(c, "review.add", map[string]any{"product": id, "rating": req.Rating})
	return c.Status(fiber.StatusCreated).JSON(rev)
}

// GET /api/v1/vendors/:id
func (h *ProductHandler) Storefront(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Vendor not found.")
	}
	sf, found, err := h.Catalog.Storefront(c.UserContext(), id)
	if err != nil {
		return fail(c, "storefront", err)
	}
	if !found {
		return notFound(c, "Vendor not found.")
	}
	return c.JSON(sf)
}
