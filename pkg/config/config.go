package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kerbaras/komik/pkg/sources"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "KOMIK"
	AppName   = "komik"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Reader  ReaderConfig  `mapstructure:"reader"`
	Export  ExportConfig  `mapstructure:"export"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	ProxyURL  string        `mapstructure:"proxy_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	RateBurst int           `mapstructure:"rate_burst"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type ReaderConfig struct {
	ProbeImages   bool `mapstructure:"probe_images"`
	HideThreshold int  `mapstructure:"hide_threshold"`
}

type ExportConfig struct {
	Dir         string  `mapstructure:"dir"`
	Concurrency int     `mapstructure:"concurrency"`
	RateLimit   float64 `mapstructure:"rate_limit"`
}

// Dir is the per-user directory holding the database, the log and the
// default config file.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, AppName)
}

func setDefaults(v *viper.Viper) {
	dir := Dir()
	v.SetDefault("api.base_url", sources.DefaultBaseURL)
	v.SetDefault("api.proxy_url", sources.DefaultProxyURL)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.rate_limit", 5.0)
	v.SetDefault("api.rate_burst", 5)
	v.SetDefault("storage.path", filepath.Join(dir, "komik.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", filepath.Join(dir, "komik.log"))
	v.SetDefault("reader.probe_images", true)
	v.SetDefault("reader.hide_threshold", 100)
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.concurrency", 3)
	v.SetDefault("export.rate_limit", 4.0)
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults always decode.
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load resolves configuration from, in increasing priority: defaults, the
// config file, a .env file in the working directory and KOMIK_* variables.
// An explicit path must exist; the default locations are optional.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if c.API.RateLimit <= 0 {
		errs = append(errs, errors.New("api.rate_limit must be positive"))
	}
	if c.API.RateBurst <= 0 {
		errs = append(errs, errors.New("api.rate_burst must be positive"))
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, errors.New("storage.path is required"))
	}
	if c.Reader.HideThreshold <= 0 {
		errs = append(errs, errors.New("reader.hide_threshold must be positive"))
	}
	if c.Export.Concurrency <= 0 {
		errs = append(errs, errors.New("export.concurrency must be positive"))
	}
	if c.Export.RateLimit <= 0 {
		errs = append(errs, errors.New("export.rate_limit must be positive"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func findConfigFile() string {
	candidates := []string{
		filepath.Join(Dir(), "config.yaml"),
		AppName + ".yaml",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
