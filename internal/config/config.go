package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrConfigMissing is returned when a required setting, such as the
// geocoder API key, is absent at startup.
var ErrConfigMissing = errors.New("required configuration missing")

const (
	DefaultEnvFile      = ".env"
	DefaultStaticMapURL = "https://static-maps.yandex.ru/1.x/"
	DefaultGeocodeURL   = "https://geocode-maps.yandex.ru/1.x/"
	DefaultImagePath    = "map.png"
)

// Config holds all application configuration.
type Config struct {
	APIKey       string `mapstructure:"api_key"`
	StaticMapURL string `mapstructure:"static_map_url"`
	GeocodeURL   string `mapstructure:"geocode_url"`
	ImagePath    string `mapstructure:"image_path"`

	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Retry          RetryConfig   `mapstructure:",squash"`

	LogLevel string `mapstructure:"log_level"`
	JSONLogs bool   `mapstructure:"json_logs"`
}

// RetryConfig bounds the exponential backoff applied to connection failures
// of the static map fetch.
type RetryConfig struct {
	MaxRetries      uint64        `mapstructure:"retry_max"`
	InitialInterval time.Duration `mapstructure:"retry_initial_interval"`
	MaxElapsed      time.Duration `mapstructure:"retry_max_elapsed"`
}

// Load reads configuration from defaults, an optional dotenv file and the
// environment. Variables use the MAPVIEWER_ prefix; the API key is also
// accepted as a bare API_KEY.
func Load(envFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api_key", "")
	v.SetDefault("static_map_url", DefaultStaticMapURL)
	v.SetDefault("geocode_url", DefaultGeocodeURL)
	v.SetDefault("image_path", DefaultImagePath)
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("retry_max", 5)
	v.SetDefault("retry_initial_interval", 500*time.Millisecond)
	v.SetDefault("retry_max_elapsed", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("json_logs", false)

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read %s: %w", envFile, err)
			}
		}
	}

	v.SetEnvPrefix("MAPVIEWER")
	v.AutomaticEnv()
	if err := v.BindEnv("api_key", "MAPVIEWER_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: API_KEY is not set", ErrConfigMissing)
	}

	var errs []string
	if c.StaticMapURL == "" {
		errs = append(errs, "static_map_url is required")
	}
	if c.GeocodeURL == "" {
		errs = append(errs, "geocode_url is required")
	}
	if c.ImagePath == "" {
		errs = append(errs, "image_path is required")
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, "request_timeout must be positive")
	}
	if c.Retry.InitialInterval <= 0 {
		errs = append(errs, "retry_initial_interval must be positive")
	}
	if c.Retry.MaxElapsed <= 0 {
		errs = append(errs, "retry_max_elapsed must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
