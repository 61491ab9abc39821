// Package config loads engine configuration from an optional YAML
// file, environment variables, and defaults via viper. Client
// credentials are configuration, never stored in the vault.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the engine's runtime configuration.
type Config struct {
	GoogleClientID     string        `mapstructure:"google_client_id"`
	GoogleClientSecret string        `mapstructure:"google_client_secret"`
	Logging            LoggingConfig `mapstructure:"logging"`
	Polling            PollingConfig `mapstructure:"polling"`
	Clipboard          ClipConfig    `mapstructure:"clipboard"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// PollingConfig controls the mailbox scan cadence.
type PollingConfig struct {
	IntervalMs             int  `mapstructure:"interval_ms"`
	NotificationCooldownMs int  `mapstructure:"notification_cooldown_ms"`
	NotificationsEnabled   bool `mapstructure:"notifications_enabled"`
}

// ClipConfig controls the clipboard timed clear.
type ClipConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Dir returns the config directory, created on first use.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	dir := filepath.Join(base, "otpbar")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// Load reads configuration in precedence order: defaults, then an
// optional config.yaml in the config directory, then OTPBAR_*
// environment variables. The bare GOOGLE_CLIENT_ID and
// GOOGLE_CLIENT_SECRET variables are honoured as aliases.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("polling.interval_ms", 8000)
	v.SetDefault("polling.notification_cooldown_ms", 3000)
	v.SetDefault("polling.notifications_enabled", true)
	v.SetDefault("clipboard.timeout_seconds", 30)

	v.SetEnvPrefix("OTPBAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("google_client_id", "OTPBAR_GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_ID"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("google_client_secret", "OTPBAR_GOOGLE_CLIENT_SECRET", "GOOGLE_CLIENT_SECRET"); err != nil {
		return nil, err
	}

	if dir, err := Dir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
