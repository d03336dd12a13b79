// Package config loads CLI settings from defaults, an optional config file and
// FORMLAYERS_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FORMLAYERS_FORMAT=yaml.
const EnvPrefix = "FORMLAYERS"

// Config holds CLI configuration.
type Config struct {
	Format   string       `mapstructure:"format"`
	Renderer string       `mapstructure:"renderer"`
	Loader   LoaderConfig `mapstructure:"loader"`
	Theme    ThemeConfig  `mapstructure:"theme"`
	Log      LogConfig    `mapstructure:"log"`
}

// LoaderConfig controls document loading.
type LoaderConfig struct {
	AllowHTTP bool          `mapstructure:"allow_http"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxBytes  int64         `mapstructure:"max_bytes"`
}

// ThemeConfig describes the theme applied by the HTML renderer.
type ThemeConfig struct {
	Name    string            `mapstructure:"name"`
	Variant string            `mapstructure:"variant"`
	Tokens  map[string]string `mapstructure:"tokens"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration. An explicit path must exist; otherwise
// FORMLAYERS_CONFIG, then config.yaml under the user config directory and the
// working directory are tried, and a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("format", "json")
	v.SetDefault("renderer", "html")
	v.SetDefault("loader.allow_http", true)
	v.SetDefault("loader.timeout", 15*time.Second)
	v.SetDefault("loader.max_bytes", 10<<20)
	v.SetDefault("theme.name", "default")
	v.SetDefault("theme.variant", "")
	v.SetDefault("log.level", "info")

	explicit := strings.TrimSpace(path)
	if explicit == "" {
		explicit = strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG"))
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "formlayers"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("formlayers")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "json", "yaml":
	default:
		return fmt.Errorf("config: unsupported format %q", c.Format)
	}
	if strings.TrimSpace(c.Renderer) == "" {
		return errors.New("config: renderer is required")
	}
	if c.Loader.Timeout < 0 {
		return fmt.Errorf("config: negative loader timeout %s", c.Loader.Timeout)
	}
	if c.Loader.MaxBytes < 0 {
		return fmt.Errorf("config: negative loader max_bytes %d", c.Loader.MaxBytes)
	}
	return nil
}
