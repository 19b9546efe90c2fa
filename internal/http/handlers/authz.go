package handlers

import (
	"slices"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"intellivend/internal/domain"
	applog "intellivend/internal/log"
	"intellivend/internal/services"
)

const sessionCookie = "sid"

// ensureSID returns the browser session id, issuing a cookie on first visit.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sessionCookie)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

func expireSID(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// AttachUser puts the session's user, if any, into Locals for handlers,
// templates and log lines.
func AttachUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies(sessionCookie); sid != "" {
			if u := auth.CurrentUser(sid); u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

// RequireUser rejects anonymous requests.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please sign in to continue."})
		}
		return c.Next()
	}
}

// RequireRole admits signed-in users holding one of roles.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := currentUser(c)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please sign in to continue."})
		}
		if !slices.Contains(roles, u.Role) {
			applog.Security(c, "access.denied.role", map[string]any{"need": roles})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
		}
		return c.Next()
	}
}
