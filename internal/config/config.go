package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the service.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	// JWTSecret signs session tokens. Symmetric, server-only.
	JWTSecret string `env:"JWT_SECRET,required"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"password"`
	DBName     string `env:"DB_NAME" envDefault:"dailydiet"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	DBMaxOpenConns        int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns        int `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	DBConnMaxIdleMinutes  int `env:"DB_CONN_MAX_IDLE_MINUTES" envDefault:"5"`
	DBConnMaxLifetimeMins int `env:"DB_CONN_MAX_LIFETIME_MINUTES" envDefault:"30"`

	MonitoringAPIKey string `env:"MONITORING_API_KEY"`
	DataPath         string `env:"DATA_PATH" envDefault:"."`
}

// Load reads configuration from the environment, loading a local .env file
// first when one exists.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return &cfg, nil
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
