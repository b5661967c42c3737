package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, parsed from the environment.
type Config struct {
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	JWTSecret     string `env:"JWT_SECRET,required"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"24"`

	// Optional: empty disables the video-list cache and the view worker.
	RedisURL string `env:"REDIS_URL"`

	RunMigrations bool   `env:"RUN_MIGRATIONS"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	// AppEnv gates debug detail in 500 responses.
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// Optional: empty disables the media upload endpoints.
	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `env:"R2_BUCKET_NAME"`
	R2PublicURL       string `env:"R2_PUBLIC_URL"`
}

// LoadConfig reads .env if present, then parses the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}

	if cfg.TokenTTLHours <= 0 {
		cfg.TokenTTLHours = 24
	}

	return cfg, nil
}

// IsProduction reports whether debug detail should be suppressed.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MediaConfigured reports whether the R2 object-storage settings are complete.
func (c *Config) MediaConfigured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicURL != ""
}
