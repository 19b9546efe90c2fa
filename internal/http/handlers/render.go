package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "intellivend/internal/log"
	"intellivend/internal/repos"
	"intellivend/internal/services"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := currentUser(c); u != nil {
		data["User"] = u
	}
	if tok, _ := c.Locals("csrf").(string); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

func badRequest(c *fiber.Ctx, field, msg string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// fail maps service errors to a status and a message safe to show. Anything
// unrecognised is logged and reported as a generic 500.
func fail(c *fiber.Ctx, action string, err error) error {
	status, msg := fiber.StatusInternalServerError, "Something went wrong. Please try again."
	switch {
	case errors.Is(err, services.ErrNotSignedIn):
		status, msg = fiber.StatusUnauthorized, "Please sign in to continue."
	case errors.Is(err, repos.ErrInvalidResetCode):
		status, msg = fiber.StatusUnauthorized, "Invalid reset code"
	case errors.Is(err, services.ErrNotOwner):
		status, msg = fiber.StatusForbidden, "Access denied"
	case errors.Is(err, services.ErrSelfDelete):
		status, msg = fiber.StatusBadRequest, "You cannot delete yourself."
	case errors.Is(err, services.ErrCartEmpty):
		status, msg = fiber.StatusBadRequest, "Your cart is empty."
	case errors.Is(err, services.ErrUnknownProduct):
		status, msg = fiber.StatusNotFound, "This item is no longer available"
	case errors.Is(err, services.ErrUnknownUser):
		status, msg = fiber.StatusNotFound, "User not found"
	}
	if status >= fiber.StatusInternalServerError {
		applog.Error(c, action+".fail", err, nil)
	} else {
		applog.Security(c, action+".fail", map[string]any{"reason": err.Error()})
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
