package handlers

import (
	"github.com/gofiber/fiber/v2"

	"intellivend/internal/assistant"
	applog "intellivend/internal/log"
	"intellivend/internal/repos"
	"intellivend/internal/services"
	"intellivend/internal/validate"
)

// InventoryHandler serves the vendor dashboard: the vendor's own listings,
// their weekly sales and AI copywriting for the listing form.
type InventoryHandler struct {
	Catalog *services.CatalogService
	Orders  *repos.OrderRepo
	AI      *assistant.Service
}

type describeRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Keywords string `json:"keywords"`
}

// GET /api/v1/vendor/products
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.VendorProducts(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return fail(c, "vendor.products", err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// GET /api/v1/vendor/stats
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Orders.VendorStats(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return fail(c, "vendor.stats", err)
	}
	var revenue float64
	var sales int
	for _, s := range stats {
		revenue += s.Revenue
		sales += s.Sales
	}
	return c.JSON(fiber.Map{"stats": stats, "totalRevenue": revenue, "totalSales": sales})
}

// POST /api/v1/vendor/products and PUT /api/v1/vendor/products/:id
func (h *InventoryHandler) Save(c *fiber.Ctx) error {
	var form services.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	name, ok := validate.Name(form.Name)
	if !ok {
		return badRequest(c, "name", "Enter a product name")
	}
	if !validate.Price(form.Price) {
		return badRequest(c, "price", "Enter a valid price")
	}
	if form.OriginalPrice != 0 && !validate.Price(form.OriginalPrice) {
		return badRequest(c, "originalPrice", "Enter a valid original price")
	}
	desc, ok := validate.Text(form.Description, 2000)
	if !ok {
		return badRequest(c, "description", "Description is too long")
	}
	form.Name, form.Description = name, desc

	editing := ""
	if raw := c.Params("id"); raw != "" {
		id, ok := validate.ID(raw)
		if !ok {
			return notFound(c, "This item is no longer available")
		}
		editing = id
	}

	p, err := h.Catalog.SaveVendorProduct(c.UserContext(), currentUser(c), editing, form)
	if err != nil {
		return fail(c, "vendor.products.save", err)
	}
	if editing != "" {
		applog.Audit(c, "vendor.products.update", map[string]any{"product": p.ID})
		return c.JSON(fiber.Map{"product": p, "message": "Product updated successfully!"})
	}
	applog.Audit(c, "vendor.products.create", map[string]any{"product": p.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": p, "message": "Product listed successfully!"})
}

// DELETE /api/v1/vendor/products/:id
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "This item is no longer available")
	}
	if err := h.Catalog.DeleteProduct(c.UserContext(), currentUser(c), id); err != nil {
		return fail(c, "vendor.products.delete", err)
	}
	applog.Audit(c, "vendor.products.delete", map[string]any{"product": id})
	return c.JSON(fiber.Map{"message": "Product removed successfully."})
}

// POST /api/v1/vendor/describe drafts a description for the listing form.
func (h *InventoryHandler) Describe(c *fiber.Ctx) error {
	var req describeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "name", "Enter a product name first")
	}
	keywords, _ := validate.Text(req.Keywords, 200)
	text := h.AI.GenerateDescription(c.UserContext(), name, req.Category, keywords)
	return c.JSON(fiber.Map{"description": text})
}
