package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default configuration values applied when neither the environment nor a
// config file provides a setting.
const (
	defaultServerPort           = 8000
	defaultLogLevel             = "info"
	defaultTokenLifetimeMinutes = 24 * 60 // 24 hours, matching the issued token contract
	defaultBcryptCost           = 10
	defaultAdminUsername        = "admin"
	defaultAdminFullName        = "Project Manager"
	defaultAdminRole            = "project_manager"
)

// DefaultAdminRole is the role assigned to the seeded admin account.
const DefaultAdminRole = defaultAdminRole

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take precedence
// over values from the config file and use the TASKTRACKER_ prefix with
// underscores for nesting (e.g. TASKTRACKER_DATABASE_URL, TASKTRACKER_AUTH_JWT_SECRET).
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("auth.token_lifetime_minutes", defaultTokenLifetimeMinutes)
	v.SetDefault("auth.bcrypt_cost", defaultBcryptCost)
	v.SetDefault("auth.default_admin_username", defaultAdminUsername)
	v.SetDefault("auth.default_admin_full_name", defaultAdminFullName)

	// Optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from the
		// environment. Any other read error is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override file values.
	v.SetEnvPrefix("TASKTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults must be bound explicitly for AutomaticEnv to
	// see them during Unmarshal.
	for _, key := range []string{
		"database.url",
		"auth.jwt_secret",
		"auth.default_admin_password",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
