package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/adityarawat/prepometer/internal/constants"
)

// RemoteConfig holds the connection settings for the hosted record store.
type RemoteConfig struct {
	// DSN is the PostgreSQL connection string of the prep vault. Empty
	// disables syncing entirely; the app then runs purely local.
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

// EmailConfig holds settings for delivering magic-link sign-in emails.
type EmailConfig struct {
	// ResendAPIKey enables delivery through the Resend HTTP API.
	ResendAPIKey string `mapstructure:"resend_api_key" yaml:"resend_api_key"`
	FromEmail    string `mapstructure:"from_email" yaml:"from_email"`

	// SMTP fallback, used when SMTPHost is set and no Resend key is present.
	SMTPHost string `mapstructure:"smtp_host" yaml:"smtp_host"`
	SMTPPort string `mapstructure:"smtp_port" yaml:"smtp_port"`
	SMTPUser string `mapstructure:"smtp_user" yaml:"smtp_user"`
	SMTPPass string `mapstructure:"smtp_pass" yaml:"smtp_pass"`
}

// Config is the top-level application configuration.
type Config struct {
	// Storage selects the local store backend: "json" (default) or "sqlite".
	Storage string       `mapstructure:"storage" yaml:"storage"`
	Remote  RemoteConfig `mapstructure:"remote" yaml:"remote"`
	Email   EmailConfig  `mapstructure:"email" yaml:"email"`

	// BaseURL is embedded into magic-link emails.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// DefaultConfigDir returns ~/.config/prepometer, falling back to the
// working directory when the home directory cannot be resolved.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", constants.AppName)
}

// ExpandPath resolves a leading ~ in user-supplied paths.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// Load reads the config file from dir (config.yaml), layering
// PREPOMETER_* environment variables on top. A missing file is not an
// error; defaults apply.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("storage", "json")
	v.SetDefault("base_url", "http://localhost:3000")
	v.SetDefault("email.smtp_port", "587")

	v.SetEnvPrefix(strings.ToUpper(constants.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
