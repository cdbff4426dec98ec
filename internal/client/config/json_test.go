package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()

	t.Run("overlays values", func(t *testing.T) {
		path := writeTempJSON(t, dir, "full.json", map[string]any{
			"server_url": "http://www.example:9000",
			"timeout":    "30s",
		})

		cfg := &Config{ServerURL: "x", Timeout: time.Second, TokenFile: "keep"}
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, "http://www.example:9000", cfg.ServerURL)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, "keep", cfg.TokenFile)
	})

	t.Run("nanosecond timeout", func(t *testing.T) {
		path := writeTempJSON(t, dir, "ns.json", map[string]any{"timeout": 2000000000})

		cfg := &Config{}
		require.NoError(t, parseJson(cfg, path))
		assert.Equal(t, 2*time.Second, cfg.Timeout)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		assert.Error(t, parseJson(&Config{}, bad))
	})
}
