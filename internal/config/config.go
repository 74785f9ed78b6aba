// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Share       ShareConfig
	Report      ReportConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Path     string
	LogLevel string
}

type ShareConfig struct {
	// BaseURL is the origin+path share links are built on.
	BaseURL string
	// LaunchURL is the URL this session was opened from. When it carries a
	// snapshot parameter the session boots in shared read-only mode.
	LaunchURL string
}

type ReportConfig struct {
	Endpoint string
	APIKey   string
	Model    string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Path:     getEnv("DB_PATH", "stockflow.db"),
			LogLevel: getEnv("DB_LOG_LEVEL", "silent"),
		},
		Share: ShareConfig{
			BaseURL:   getEnv("SHARE_BASE_URL", "http://localhost:8080/"),
			LaunchURL: getEnv("LAUNCH_URL", ""),
		},
		Report: ReportConfig{
			Endpoint: getEnv("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com"),
			APIKey:   getEnv("GEMINI_API_KEY", ""),
			Model:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if _, err := url.Parse(c.Share.BaseURL); err != nil {
		return fmt.Errorf("SHARE_BASE_URL is not a valid URL: %w", err)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}

	// A missing API key is not an error: report generation degrades to the
	// fallback text.
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
