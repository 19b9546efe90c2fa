package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"intellivend/internal/assistant"
	"intellivend/internal/config"
	"intellivend/internal/domain"
	"intellivend/internal/events"
	"intellivend/internal/http/handlers"
	"intellivend/internal/repos"
	"intellivend/internal/store"
)

type stubModel struct{ reply string }

func (m stubModel) Generate(context.Context, string) (string, error) { return m.reply, nil }
func (m stubModel) Chat(context.Context, string, []domain.ChatMessage, string) (string, error) {
	return m.reply, nil
}

type testEnv struct {
	app  *fiber.App
	st   *store.Store
	deps *handlers.Deps
}

// newTestApp builds the full route table over an in-memory store with no
// artificial delays.
func newTestApp(t *testing.T, middleware ...fiber.Handler) testEnv {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", StoreDriver: "sqlite", KeyPrefix: "intellivend_"}
	st, err := repos.OpenStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	deps, err := handlers.NewDeps(context.Background(), st, events.NewBus(), cfg, assistant.New(stubModel{reply: "stub reply"}))
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	t.Cleanup(deps.Close)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	for _, m := range middleware {
		app.Use(m)
	}
	handlers.Mount(app, deps)
	return testEnv{app: app, st: st, deps: deps}
}

// call sends body as JSON with the given session cookie and decodes a JSON
// object response when there is one.
func call(t *testing.T, app *fiber.App, method, path, sid string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func login(t *testing.T, app *fiber.App, sid, email string, role domain.Role) map[string]any {
	t.Helper()
	resp, body := call(t, app, "POST", "/api/v1/auth/login", sid, fiber.Map{"email": email, "role": role})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	return body["user"].(map[string]any)
}

func cookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf lockedBuf
	oldW, oldFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
