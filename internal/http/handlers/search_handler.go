package handlers

import (
	"github.com/gofiber/fiber/v2"

	"intellivend/internal/log"
	"intellivend/internal/services"
	"intellivend/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) query(c *fiber.Ctx) (services.Query, bool) {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": c.Query("q")})
		return services.Query{}, false
	}
	category, ok := validate.Text(c.Query("category", services.CategoryAll), 60)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return services.Query{}, false
	}
	sort := c.Query("sort", services.SortFeatured)
	switch sort {
	case services.SortFeatured, services.SortPriceLow, services.SortPriceHigh, services.SortRating:
	default:
		sort = services.SortFeatured
	}
	return services.Query{Search: q, Category: category, Sort: sort, Deals: c.QueryBool("deals")}, true
}

// GET /api/v1/products
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q, ok := h.query(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Enter a valid keyword"})
	}
	products, err := h.Catalog.Browse(c.UserContext(), q)
	if err != nil {
		return fail(c, "search", err)
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

// GET /
func (h *SearchHandler) Home(c *fiber.Ctx) error {
	q, ok := h.query(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Enter a valid keyword (letters/numbers only)"})
	}
	products, err := h.Catalog.Browse(c.UserContext(), q)
	if err != nil {
		log.Error(c, "home.load.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}
	cats, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		log.Error(c, "home.load.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}
	return render(c, "home", fiber.Map{
		"Q": q.Search, "Category": q.Category, "Sort": q.Sort, "Deals": q.Deals,
		"Categories": cats, "Products": products, "Count": len(products),
	})
}
