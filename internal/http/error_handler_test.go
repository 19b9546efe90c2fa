package handlers_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	applog "intellivend/internal/log"
)

// friendly error surface, no internal leakage
func TestErrorHandlerFriendlyMessage(t *testing.T) {
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Use(requestid.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "redis timeout: secret trace")
	})

	entries := captureLogs(t, func() {
		r, err := app.Test(httptest.NewRequest("GET", "/err", nil))
		if err != nil {
			t.Fatalf("test request failed: %v", err)
		}
		if r.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", r.StatusCode)
		}
		body, _ := io.ReadAll(r.Body)
		s := string(body)
		if !strings.Contains(s, "Something went wrong") {
			t.Fatalf("friendly message missing; body=%s", s)
		}
		if strings.Contains(s, "redis timeout") || strings.Contains(s, "secret") {
			t.Fatalf("internal details leaked to user; body=%s", s)
		}
	})
	if _, ok := findLog(entries, "server.error"); !ok {
		t.Fatal("server.error not logged")
	}
}

func TestStoreFailureIsFriendly(t *testing.T) {
	env := newTestApp(t)
	_ = env.st.Close()

	entries := captureLogs(t, func() {
		resp, body := call(t, env.app, "GET", "/api/v1/vendors/v9", "", nil)
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", resp.StatusCode)
		}
		if msg, _ := body["error"].(string); strings.Contains(msg, "sql") || msg == "" {
			t.Fatalf("unexpected error body %+v", body)
		}
	})
	if _, ok := findLog(entries, "storefront.fail"); !ok {
		t.Fatal("storefront.fail not logged")
	}
}
