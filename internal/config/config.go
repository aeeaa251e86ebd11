package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jd-develop/geodesie-de-bureau/internal/save"
)

// Config holds the full application configuration.
type Config struct {
	IGN     IGNConfig     `yaml:"ign" mapstructure:"ign"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Save    SaveConfig    `yaml:"save" mapstructure:"save"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// IGNConfig configures access to the IGN geodesy site.
type IGNConfig struct {
	SearchURL   string  `yaml:"search_url" mapstructure:"search_url"`
	BBoxBaseURL string  `yaml:"bbox_base_url" mapstructure:"bbox_base_url"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	// MaxAttempts counts the first try; 1 disables retries.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// CacheConfig configures the local response cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Path     string `yaml:"path" mapstructure:"path"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// SaveConfig locates the save file.
type SaveConfig struct {
	Dir  string `yaml:"dir" mapstructure:"dir"`
	Name string `yaml:"name" mapstructure:"name"`
}

// DisplayConfig configures record output.
type DisplayConfig struct {
	Color       bool   `yaml:"color" mapstructure:"color"`
	Diagnostics bool   `yaml:"diagnostics" mapstructure:"diagnostics"`
	Format      string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// BatchConfig configures batch lookups.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml, searched in the working
// directory then the application directory, and GEODESIE_* variables.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := save.DefaultDir(); err == nil {
		v.AddConfigPath(dir)
	}

	// Environment
	v.SetEnvPrefix("GEODESIE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ign.search_url", "https://geodesie.ign.fr/fiches/index.php?module=e&action=visugeod")
	v.SetDefault("ign.bbox_base_url", "https://geodesie.ign.fr/ripgeo/fr/api/nivrn/bbox")
	v.SetDefault("ign.timeout_secs", 30)
	v.SetDefault("ign.rate_per_sec", 2)
	v.SetDefault("ign.max_attempts", 1)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", "")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("save.dir", "")
	v.SetDefault("save.name", "default")
	v.SetDefault("display.color", true)
	v.SetDefault("display.diagnostics", false)
	v.SetDefault("display.format", "text")
	v.SetDefault("server.port", 8080)
	v.SetDefault("batch.max_concurrent", 4)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.IGN.SearchURL == "":
		return eris.New("config: ign.search_url is empty")
	case c.IGN.BBoxBaseURL == "":
		return eris.New("config: ign.bbox_base_url is empty")
	case c.IGN.TimeoutSecs <= 0:
		return eris.Errorf("config: ign.timeout_secs must be positive, got %d", c.IGN.TimeoutSecs)
	case c.IGN.RatePerSec <= 0:
		return eris.Errorf("config: ign.rate_per_sec must be positive, got %g", c.IGN.RatePerSec)
	case c.IGN.MaxAttempts < 1:
		return eris.Errorf("config: ign.max_attempts must be at least 1, got %d", c.IGN.MaxAttempts)
	case c.Cache.TTLHours <= 0:
		return eris.Errorf("config: cache.ttl_hours must be positive, got %d", c.Cache.TTLHours)
	case c.Save.Name == "" || strings.ContainsAny(c.Save.Name, `/\`):
		return eris.Errorf("config: invalid save.name %q", c.Save.Name)
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return eris.Errorf("config: server.port out of range: %d", c.Server.Port)
	case c.Batch.MaxConcurrent <= 0:
		return eris.Errorf("config: batch.max_concurrent must be positive, got %d", c.Batch.MaxConcurrent)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return eris.Wrap(err, "config: log.level")
	}
	return nil
}

// Timeout returns the upstream request timeout.
func (c IGNConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// DirOrDefault returns the configured save directory, or the application
// directory (created if needed) when none is set.
func (c SaveConfig) DirOrDefault() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	return save.Dir()
}

// FilePath returns the path of the configured save file.
func (c SaveConfig) FilePath() (string, error) {
	dir, err := c.DirOrDefault()
	if err != nil {
		return "", err
	}
	return save.Path(dir, c.Name), nil
}

// CachePath returns the configured cache database path, defaulting to
// cache.db in the save directory.
func (c *Config) CachePath() (string, error) {
	if c.Cache.Path != "" {
		return c.Cache.Path, nil
	}
	dir, err := c.Save.DirOrDefault()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.db"), nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
