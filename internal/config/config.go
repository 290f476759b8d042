package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	ServerPort string

	// StoreBackend selects where state lives: "memory" (default),
	// "sqlite", "postgres" or "mysql".
	StoreBackend   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// PlatformTokenSecret verifies the caller-identity tokens minted by
	// the surrounding platform. When empty the server trusts the
	// X-Caller-Identity header instead (development mode).
	PlatformTokenSecret string

	// AdminMobile is the well-known mobile number of the seeded
	// administrator account.
	AdminMobile   string
	AdminPassword string
	SeedOnStart   bool

	LoginRateLimit  int
	LoginRateWindow time.Duration

	// SES notification settings; email is disabled when NotifyFromEmail
	// is empty.
	AWSRegion       string
	NotifyFromEmail string
	NotifyToEmail   string
	EmailDebug      bool
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:          getEnv("PORT", "8080"),
		StoreBackend:        getEnv("STORE_BACKEND", "memory"),
		DatabasePath:        getEnv("DB_PATH", "./typedrill.db"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		MigrationsPath:      getEnv("MIGRATIONS_PATH", "./migrations"),
		PlatformTokenSecret: getEnv("PLATFORM_TOKEN_SECRET", ""),
		AdminMobile:         getEnv("ADMIN_MOBILE", "9999999999"),
		AdminPassword:       getEnv("ADMIN_PASSWORD", "admin123"),
		SeedOnStart:         getEnv("SEED_ON_START", "false") == "true",
		LoginRateLimit:      10,
		LoginRateWindow:     time.Minute,
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		NotifyFromEmail:     getEnv("SES_FROM_EMAIL", ""),
		NotifyToEmail:       getEnv("SES_NOTIFY_EMAIL", ""),
		EmailDebug:          getEnv("EMAIL_DEBUG", "false") == "true",
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
