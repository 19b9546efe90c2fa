package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "intellivend/internal/log"
	"intellivend/internal/services"
	"intellivend/internal/validate"
)

type AdminHandler struct {
	Admin   *services.AdminService
	Catalog *services.CatalogService
}

// GET /api/v1/admin/overview?q=
func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	term, ok := validate.Q(c.Query("q"))
	if !ok {
		return badRequest(c, "q", "Enter a valid search term")
	}
	o, err := h.Admin.Overview(c.UserContext())
	if err != nil {
		return fail(c, "admin.overview", err)
	}
	return c.JSON(o.Filter(term))
}

// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "missing id")
	}
	if err := h.Admin.DeleteUser(c.UserContext(), currentUser(c), id); err != nil {
		return fail(c, "admin.users.delete", err)
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"target": id})
	return c.JSON(fiber.Map{"message": "User deleted."})
}

// POST /api/v1/admin/users/:id/verify
func (h *AdminHandler) ToggleVerified(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "missing id")
	}
	u, err := h.Admin.ToggleVerified(c.UserContext(), id)
	if err != nil {
		return fail(c, "admin.users.verify", err)
	}
	applog.Audit(c, "admin.users.verify", map[string]any{"target": id, "verified": u.IsVerified})
	return c.JSON(u)
}

// DELETE /api/v1/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "missing id")
	}
	if err := h.Catalog.DeleteProduct(c.UserContext(), currentUser(c), id); err != nil {
		return fail(c, "admin.products.delete", err)
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.JSON(fiber.Map{"message": "Product removed successfully."})
}
