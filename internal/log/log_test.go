package log

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, fn func()) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	oldW, oldFlags := stdlog.Writer(), stdlog.Flags()
	stdlog.SetOutput(&buf)
	stdlog.SetFlags(0)
	defer func() {
		stdlog.SetOutput(oldW)
		stdlog.SetFlags(oldFlags)
	}()

	fn()

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &out))
	return out
}

func TestErrorWithoutRequest(t *testing.T) {
	got := capture(t, func() {
		Error(nil, "store.bootstrap.fail", errors.New("disk full"), map[string]any{"key": "intellivend_products"})
	})

	require.Equal(t, "error", got["level"])
	require.Equal(t, "store.bootstrap.fail", got["action"])
	require.Equal(t, "disk full", got["err"])
	require.Equal(t, "intellivend_products", got["fields"].(map[string]any)["key"])
	require.NotContains(t, got, "path")
}

func TestSecurityLevelIsWarn(t *testing.T) {
	got := capture(t, func() { Security(nil, "auth.reset.fail", nil) })
	require.Equal(t, "warn", got["level"])
}
