package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory, applies defaults, and validates the
// result. Environment variables use the VERDANT_ prefix with underscores
// separating sections (VERDANT_SERVER_PORT, VERDANT_DATABASE_URL) and take
// precedence over values from the config file.
//
// Returns a populated Config struct or an error if loading or validation
// fails.
func Load() (*Config, error) {
	v := viper.New()

	// Register a default for every key so env-only values are visible to
	// Unmarshal; viper ignores environment variables for unknown keys.
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// The config file is optional; environment variables can carry
		// the full configuration.
	}

	v.SetEnvPrefix("VERDANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)

	v.SetDefault("mailer.sendgrid_api_key", "")
	v.SetDefault("mailer.from_address", "")
	v.SetDefault("mailer.from_name", "Verdant")

	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.progress_ttl_seconds", 300)

	v.SetDefault("scheduler.rollover_spec", "0 3 * * *")

	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.stuck_task_age_minutes", 30)
	v.SetDefault("task.stuck_task_check_interval_minutes", 5)
}
