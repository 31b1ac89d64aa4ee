package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Env         string
	APIBaseURL  string
	HTTPTimeout time.Duration

	CatalogPageSize int
	AdminPageSize   int

	// StatePath is where the session and display preferences persist
	// across runs.
	StatePath string

	// Dev API server settings, unused by the client binary.
	Port      string
	JWTSecret string
	JWTExpiry time.Duration
}

func Load() Config {
	return Config{
		Env:             getEnv("ENV", "development"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8080"),
		HTTPTimeout:     getDuration("HTTP_TIMEOUT", 10*time.Second),
		CatalogPageSize: getInt("CATALOG_PAGE_SIZE", 8),
		AdminPageSize:   getInt("ADMIN_PAGE_SIZE", 10),
		StatePath:       getEnv("STATE_PATH", defaultStatePath()),
		Port:            getEnv("PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:       getDuration("JWT_EXPIRY", 24*time.Hour),
	}
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "eventbooker", "state.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
