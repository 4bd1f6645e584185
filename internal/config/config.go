package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// App holds runtime configuration for the trivia API.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080" validate:"required"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Database Database
	Redis    Redis
	CORS     CORS
}

// Database selects and configures the question store.
type Database struct {
	Driver      string `env:"DB_DRIVER" envDefault:"postgres" validate:"oneof=postgres sqlite"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`

	// URL overrides the individual PG_* settings when set.
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432" validate:"gt=0"`
	User     string `env:"PG_USER"`
	Password string `env:"PG_PASSWORD"`
	Name     string `env:"PG_DATABASE" envDefault:"trivia"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10" validate:"gt=0"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"trivia.db"`
}

// Redis configures the optional category cache. An empty Addr disables it.
type Redis struct {
	Addr        string        `env:"REDIS_ADDR"`
	DB          int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize    int           `env:"REDIS_POOL_SIZE" envDefault:"20" validate:"gt=0"`
	CategoryTTL time.Duration `env:"REDIS_CATEGORY_TTL" envDefault:"5m"`
}

// CORS holds the fixed Cross-Origin Resource Sharing allowances.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,PUT,POST,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
}

// PostgresDSN builds the pgx connection string. Pool sizing is applied separately
// so the DSN also works with database/sql.
func (d Database) PostgresDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Load parses environment variables into App config and validates it.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field rules and driver specific requirements.
func (c *App) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Database.Driver == DriverPostgres && c.Database.URL == "" {
		if c.Database.User == "" || c.Database.Password == "" {
			return fmt.Errorf("invalid config: PG_USER and PG_PASSWORD are required when DATABASE_URL is unset")
		}
	}
	if c.Database.Driver == DriverSQLite && c.Database.SQLitePath == "" {
		return fmt.Errorf("invalid config: SQLITE_PATH is required for the sqlite driver")
	}
	return nil
}
