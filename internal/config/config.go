package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Mailer    MailerConfig    `mapstructure:"mailer"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Task      TaskConfig      `mapstructure:"task"`
}

// ServerConfig contains all HTTP server related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// MailerConfig contains settings for outbound email delivery. An empty
// SendGridAPIKey disables sending; notices are logged instead.
type MailerConfig struct {
	SendGridAPIKey string `mapstructure:"sendgrid_api_key"`
	FromAddress    string `mapstructure:"from_address" validate:"required_with=SendGridAPIKey,omitempty,email"`
	FromName       string `mapstructure:"from_name"`
}

// CacheConfig contains settings for the Redis progress cache. An empty
// RedisAddr disables caching; reads fall through to the database.
type CacheConfig struct {
	RedisAddr          string `mapstructure:"redis_addr"`
	ProgressTTLSeconds int    `mapstructure:"progress_ttl_seconds" validate:"required,gt=0"`
}

// SchedulerConfig contains settings for scheduled background jobs.
type SchedulerConfig struct {
	// RolloverSpec is the cron expression for the nightly enrollment day
	// rollover job.
	RolloverSpec string `mapstructure:"rollover_spec" validate:"required"`
}

// TaskConfig contains settings for the background task runner.
type TaskConfig struct {
	WorkerCount                   int `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize                     int `mapstructure:"queue_size" validate:"required,gt=0"`
	StuckTaskAgeMinutes           int `mapstructure:"stuck_task_age_minutes" validate:"required,gt=0"`
	StuckTaskCheckIntervalMinutes int `mapstructure:"stuck_task_check_interval_minutes" validate:"required,gt=0"`
}
