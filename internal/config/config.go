package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env             string        `env:"ENV" env-default:"development"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	Port            string        `env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	CORSOrigins     string        `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	MetricsAPIKey   string        `env:"METRICS_API_KEY"`

	// Database
	DBDriver       string `env:"DB_DRIVER" env-default:"postgres"`
	DBHost         string `env:"DB_HOST" env-default:"localhost"`
	DBPort         string `env:"DB_PORT" env-default:"5432"`
	DBUser         string `env:"DB_USER" env-default:"plantonize"`
	DBPassword     string `env:"DB_PASSWORD" env-default:"plantonize"`
	DBName         string `env:"DB_NAME" env-default:"plantonize"`
	DBSSLMode      string `env:"DB_SSLMODE" env-default:"disable"`
	DBSQLitePath   string `env:"DB_SQLITE_PATH" env-default:"plantonize.db"`
	MigrationsPath string `env:"MIGRATIONS_PATH" env-default:"migrations"`

	// JWT
	JWTSecret       string        `env:"JWT_SECRET" env-default:"fallback-secret-key-for-dev-only"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TTL" env-default:"168h"`
}

var appConfig *Config

// Load loads configuration from the .env file (if any) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	appConfig = &cfg
	return &cfg, nil
}

// Validate checks values cleanenv cannot express with tags.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	return nil
}

// AllowedOrigins splits CORSOrigins into its comma-separated entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the global configuration. Intended for tests and CLIs that
// build a Config by hand.
func Set(cfg *Config) {
	appConfig = cfg
}
