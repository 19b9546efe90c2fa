package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"intellivend/internal/domain"
)

func TestVendorListingLifecycle(t *testing.T) {
	env := newTestApp(t)
	login(t, env.app, "sid-alex", "alex.developer@example.com", domain.RoleVendor)

	var created map[string]any
	entries := captureLogs(t, func() {
		resp, body := call(t, env.app, "POST", "/api/v1/vendor/products", "sid-alex", fiber.Map{"name": "Smart Mug", "price": 20})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create: %d %+v", resp.StatusCode, body)
		}
		created = body["product"].(map[string]any)
	})
	if _, ok := findLog(entries, "vendor.products.create"); !ok {
		t.Fatal("missing vendor.products.create audit")
	}
	if created["category"] != "General" || created["vendorId"] != "v1" {
		t.Fatalf("defaults not applied: %+v", created)
	}
	id := created["id"].(string)

	_, all := call(t, env.app, "GET", "/api/v1/products", "", nil)
	first := all["products"].([]any)[0].(map[string]any)
	if first["id"] != id {
		t.Fatalf("new listing should be first, got %v", first["id"])
	}

	// another vendor may not touch it
	login(t, env.app, "sid-other", "other@example.com", domain.RoleVendor)
	resp, _ := call(t, env.app, "PUT", "/api/v1/vendor/products/"+id, "sid-other", fiber.Map{"name": "Hijack", "price": 1})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign edit: expected 403, got %d", resp.StatusCode)
	}

	resp, body := call(t, env.app, "PUT", "/api/v1/vendor/products/"+id, "sid-alex", fiber.Map{"name": "Smart Mug Pro", "price": 18, "originalPrice": 25})
	if resp.StatusCode != http.StatusOK || body["product"].(map[string]any)["name"] != "Smart Mug Pro" {
		t.Fatalf("edit: %d %+v", resp.StatusCode, body)
	}

	_, mine := call(t, env.app, "GET", "/api/v1/vendor/products", "sid-alex", nil)
	if len(mine["products"].([]any)) == 0 {
		t.Fatal("vendor listings empty")
	}

	resp, _ = call(t, env.app, "DELETE", "/api/v1/vendor/products/"+id, "sid-alex", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
	resp, _ = call(t, env.app, "GET", "/api/v1/products/"+id, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted listing still served: %d", resp.StatusCode)
	}
}

func TestVendorStatsAndDescribe(t *testing.T) {
	env := newTestApp(t)
	login(t, env.app, "sid-alex", "alex.developer@example.com", domain.RoleVendor)

	_, stats := call(t, env.app, "GET", "/api/v1/vendor/stats", "sid-alex", nil)
	days := stats["stats"].([]any)
	if len(days) != 7 || days[0].(map[string]any)["name"] != "Mon" {
		t.Fatalf("unexpected stats %+v", stats)
	}

	_, desc := call(t, env.app, "POST", "/api/v1/vendor/describe", "sid-alex", fiber.Map{"name": "Smart Mug", "category": "Kitchen", "keywords": "warm"})
	if desc["description"] != "stub reply" {
		t.Fatalf("describe: %+v", desc)
	}

	_, chat := call(t, env.app, "POST", "/api/v1/assistant/chat", "", fiber.Map{
		"message": "any chairs?",
		"history": []fiber.Map{{"role": "user", "text": "hi"}, {"role": "model", "text": "hello"}},
	})
	if chat["role"] != "model" || chat["text"] != "stub reply" {
		t.Fatalf("chat: %+v", chat)
	}
}
