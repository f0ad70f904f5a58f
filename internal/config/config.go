package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Registry backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration
type Config struct {
	Port            string
	RegistryBackend string
	SQLiteDSN       string
	LogLevel        string
	LogFormat       string
	GinMode         string
	CORSOrigins     []string
	BrideName       string
	GroomName       string

	APIURL         string
	RequestTimeout time.Duration
}

// LoadConfig loads configuration from a .env file (if present), environment
// variables, or defaults
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("GUESTLIST_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GUESTLIST_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8088"),
		RegistryBackend: strings.ToLower(getEnv("REGISTRY_BACKEND", BackendMemory)),
		SQLiteDSN:       getEnv("SQLITE_DSN", "file:guests?mode=memory&cache=shared"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		GinMode:         getEnv("GIN_MODE", "release"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		BrideName:       getEnv("BRIDE_NAME", "Molly"),
		GroomName:       getEnv("GROOM_NAME", "James"),
		APIURL:          getEnv("GUESTLIST_API_URL", "http://localhost:8088"),
		RequestTimeout:  timeout,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	switch c.RegistryBackend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("unknown REGISTRY_BACKEND %q (want %q or %q)", c.RegistryBackend, BackendMemory, BackendSQLite)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("GUESTLIST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// Addr is the listen address for the server
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
