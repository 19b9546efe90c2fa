package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"intellivend/internal/domain"
	applog "intellivend/internal/log"
)

// Mount registers the storefront page, the JSON API and the 404 fallback.
// Global middleware (request id, access log, security headers) is the
// caller's job; session lookup happens here.
func Mount(app *fiber.App, d *Deps) {
	app.Use(AttachUser(d.AuthSvc))

	app.Get("/", d.SearchHandler.Home)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api/v1")

	// Auth (login throttled)
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	})
	api.Post("/auth/login", authLimiter, d.AuthHandler.Login)
	api.Post("/auth/register", authLimiter, d.AuthHandler.Register)
	api.Post("/auth/logout", d.AuthHandler.Logout)
	api.Post("/auth/reset/request", authLimiter, d.AuthHandler.RequestReset)
	api.Post("/auth/reset", authLimiter, d.AuthHandler.ResetPassword)
	api.Get("/me", d.AuthHandler.Me)
	api.Put("/me", RequireUser(), d.AuthHandler.UpdateProfile)

	// Catalog
	api.Get("/products", d.SearchHandler.Search)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Post("/products/:id/reviews", RequireUser(), d.ProductHandler.Review)
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/taxonomy", d.CategoryHandler.Taxonomy)
	api.Get("/vendors/:id", d.ProductHandler.Storefront)

	// Cart, wishlist & orders
	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart", d.CartHandler.Add)
	api.Patch("/cart/:id", d.CartHandler.UpdateQuantity)
	api.Delete("/cart/:id", d.CartHandler.Remove)
	api.Get("/wishlist", RequireUser(), d.WishlistHandler.List)
	api.Post("/wishlist/:id", RequireUser(), d.WishlistHandler.Toggle)
	api.Post("/orders", RequireUser(), d.OrderHandler.Place)
	api.Get("/orders", RequireUser(), d.OrderHandler.History)

	// Assistant
	aiLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.assistant.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Post("/assistant/chat", aiLimiter, d.AssistantHandler.Chat)

	// Vendor dashboard
	vendor := api.Group("/vendor", RequireRole(domain.RoleVendor, domain.RoleAdmin))
	vendor.Get("/products", d.InventoryHandler.List)
	vendor.Post("/products", d.InventoryHandler.Save)
	vendor.Put("/products/:id", d.InventoryHandler.Save)
	vendor.Delete("/products/:id", d.InventoryHandler.Delete)
	vendor.Get("/stats", d.InventoryHandler.Stats)
	vendor.Post("/describe", aiLimiter, d.InventoryHandler.Describe)

	// Admin
	admin := api.Group("/admin", RequireRole(domain.RoleAdmin))
	admin.Get("/overview", d.AdminHandler.Overview)
	admin.Delete("/users/:id", d.AdminHandler.DeleteUser)
	admin.Post("/users/:id/verify", d.AdminHandler.ToggleVerified)
	admin.Delete("/products/:id", d.AdminHandler.DeleteProduct)

	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
}
