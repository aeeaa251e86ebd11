package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// isolate moves the test into an empty directory with an empty home so no
// real config.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://geodesie.ign.fr/fiches/index.php?module=e&action=visugeod", cfg.IGN.SearchURL)
	assert.Equal(t, "https://geodesie.ign.fr/ripgeo/fr/api/nivrn/bbox", cfg.IGN.BBoxBaseURL)
	assert.Equal(t, 30, cfg.IGN.TimeoutSecs)
	assert.Equal(t, 2.0, cfg.IGN.RatePerSec)
	assert.Equal(t, 1, cfg.IGN.MaxAttempts)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 24, cfg.Cache.TTLHours)
	assert.Equal(t, "default", cfg.Save.Name)
	assert.True(t, cfg.Display.Color)
	assert.False(t, cfg.Display.Diagnostics)
	assert.Equal(t, "text", cfg.Display.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Batch.MaxConcurrent)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := isolate(t)

	yaml := `
ign:
  rate_per_sec: 0.5
  max_attempts: 3
cache:
  enabled: false
display:
  color: false
  format: json
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.IGN.RatePerSec)
	assert.Equal(t, 3, cfg.IGN.MaxAttempts)
	assert.False(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Display.Color)
	assert.Equal(t, "json", cfg.Display.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply to missing keys
	assert.Equal(t, 30, cfg.IGN.TimeoutSecs)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)

	yaml := `
save:
  name: terrain
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("GEODESIE_SAVE_NAME", "bureau")
	t.Setenv("GEODESIE_LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bureau", cfg.Save.Name)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	isolate(t)

	t.Setenv("GEODESIE_SERVER_PORT", "3000")
	t.Setenv("GEODESIE_DISPLAY_DIAGNOSTICS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.True(t, cfg.Display.Diagnostics)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ign: [\n"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func validDefaults() *Config {
	return &Config{
		IGN: IGNConfig{
			SearchURL:   "http://example.test/search",
			BBoxBaseURL: "http://example.test/bbox",
			TimeoutSecs: 30,
			RatePerSec:  2,
			MaxAttempts: 1,
		},
		Cache:  CacheConfig{Enabled: true, TTLHours: 24},
		Save:   SaveConfig{Name: "default"},
		Server: ServerConfig{Port: 8080},
		Batch:  BatchConfig{MaxConcurrent: 4},
		Log:    LogConfig{Level: "warn", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"search url", func(c *Config) { c.IGN.SearchURL = "" }, "ign.search_url"},
		{"bbox url", func(c *Config) { c.IGN.BBoxBaseURL = "" }, "ign.bbox_base_url"},
		{"timeout", func(c *Config) { c.IGN.TimeoutSecs = 0 }, "ign.timeout_secs"},
		{"rate", func(c *Config) { c.IGN.RatePerSec = -1 }, "ign.rate_per_sec"},
		{"attempts", func(c *Config) { c.IGN.MaxAttempts = 0 }, "ign.max_attempts"},
		{"ttl", func(c *Config) { c.Cache.TTLHours = 0 }, "cache.ttl_hours"},
		{"save name empty", func(c *Config) { c.Save.Name = "" }, "save.name"},
		{"save name path", func(c *Config) { c.Save.Name = "../etc" }, "save.name"},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"concurrency", func(c *Config) { c.Batch.MaxConcurrent = 0 }, "batch.max_concurrent"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, validDefaults().Validate())
}

func TestDurations(t *testing.T) {
	t.Parallel()
	cfg := validDefaults()
	assert.Equal(t, 30*time.Second, cfg.IGN.Timeout())
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL())
}

func TestPaths(t *testing.T) {
	t.Parallel()
	cfg := validDefaults()
	cfg.Save.Dir = "/srv/geodesie"

	p, err := cfg.Save.FilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/geodesie", "default", "save.json"), p)

	p, err = cfg.CachePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/geodesie", "cache.db"), p)

	cfg.Cache.Path = "/tmp/c.db"
	p, err = cfg.CachePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/c.db", p)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
