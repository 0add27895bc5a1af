package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 50, cfg.Recommend.MaxLimit)
	assert.False(t, cfg.Cache.Enabled)

	eng := cfg.Engine()
	assert.InDelta(t, 0.6, eng.CompatibilityWeight, 1e-9)
	assert.InDelta(t, 0.7, eng.Caps.TypeRatio, 1e-9)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  read_timeout: 2s
log:
  level: debug
  format: json
recommend:
  max_limit: 20
`), 0o600))

	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VAR", "x")

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 20, cfg.Recommend.MaxLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"cache without addr": "CACHE_ENABLED",
		"bad log level":      "LOG_LEVEL",
		"limit over 50":      "RECOMMEND_MAX_LIMIT",
	}
	values := map[string]string{
		"CACHE_ENABLED":       "true",
		"LOG_LEVEL":           "verbose",
		"RECOMMEND_MAX_LIMIT": "500",
	}
	for name, key := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(key, values[key])
			_, err := load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
