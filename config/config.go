// Package config handles loading and validation of application configuration
// from environment variables, an optional .env file and an optional config.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/NomadCrew/feedback-intake/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// DefaultMinMessageLength is the shortest accepted feedback message, in characters.
	DefaultMinMessageLength = 10
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse proxies.
	// If empty, X-Forwarded-For headers are ignored entirely.
	TrustedProxies         []string `mapstructure:"TRUSTED_PROXIES" yaml:"trusted_proxies"`
	ReadTimeoutSeconds     int      `mapstructure:"READ_TIMEOUT_SECONDS" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int      `mapstructure:"WRITE_TIMEOUT_SECONDS" yaml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int      `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" yaml:"shutdown_timeout_seconds"`
}

// FormConfig controls the feedback form and its validation.
type FormConfig struct {
	PageTitle        string `mapstructure:"PAGE_TITLE" yaml:"page_title"`
	MinMessageLength int    `mapstructure:"MIN_MESSAGE_LENGTH" yaml:"min_message_length"`
	// TagOptions are the checkboxes offered on the form. Submissions may still
	// carry any tag value.
	TagOptions []string `mapstructure:"TAG_OPTIONS" yaml:"tag_options"`
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"ENABLED" yaml:"enabled"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server   ServerConfig  `mapstructure:"SERVER" yaml:"server"`
	Form     FormConfig    `mapstructure:"FORM" yaml:"form"`
	Metrics  MetricsConfig `mapstructure:"METRICS" yaml:"metrics"`
	LogLevel string        `mapstructure:"LOG_LEVEL" yaml:"log_level"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// SetDefaults registers every default value on v. It is shared with the
// sample config generator so both agree on what an unset key means.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8000")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("SERVER.READ_TIMEOUT_SECONDS", 15)
	v.SetDefault("SERVER.WRITE_TIMEOUT_SECONDS", 15)
	v.SetDefault("SERVER.SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("FORM.PAGE_TITLE", "Send us your feedback")
	v.SetDefault("FORM.MIN_MESSAGE_LENGTH", DefaultMinMessageLength)
	v.SetDefault("FORM.TAG_OPTIONS", []string{"bug", "feature", "ui", "performance", "other"})
	v.SetDefault("METRICS.ENABLED", false)
	v.SetDefault("LOG_LEVEL", "info")
}

// LoadConfig loads configuration using Viper. Values are resolved in order:
// environment (including a .env file, if present), the config file (CONFIG_FILE
// or config.yaml in the working directory), then defaults. The result is validated before being returned.
func LoadConfig() (*Config, error) {
	log := logger.GetLogger()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	SetDefaults(v)

	// CONFIG_FILE names an explicit file which must exist; otherwise
	// config.yaml in the working directory is optional.
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		{"SERVER.VERSION", "VERSION"},
		{"FORM.MIN_MESSAGE_LENGTH", "MIN_MESSAGE_LENGTH"},
		{"METRICS.ENABLED", "METRICS_ENABLED"},
	}
	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"trusted_proxies", cfg.Server.TrustedProxies,
		"min_message_length", cfg.Form.MinMessageLength,
		"metrics_enabled", cfg.Metrics.Enabled,
		"log_level", cfg.LogLevel,
	)
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	switch cfg.Server.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unknown environment %q", cfg.Server.Environment)
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if cfg.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("server shutdown timeout must be positive")
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}
	if cfg.Form.MinMessageLength <= 0 {
		return fmt.Errorf("minimum message length must be positive")
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level '%s': %w", cfg.LogLevel, err)
	}
	return nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
