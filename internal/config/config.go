package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings shared by the API server and CLI.
type Config struct {
	DataFile       string
	Autosave       bool
	Addr           string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	EnableHSTS     bool
}

// LoadEnvFiles loads .env and .env.local without overriding environment
// provided by the runtime (e.g. Docker).
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds a Config from the environment.
func Load() Config {
	return Config{
		DataFile:       getEnv("LIBRARY_DATA_FILE", defaultDataFile()),
		Autosave:       boolEnv("LIBRARY_AUTOSAVE", true),
		Addr:           getEnv("APP_ADDR", ":8080"),
		AllowedOrigins: splitEnv("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:   floatEnv("RATE_LIMIT_RPS", 10),
		RateLimitBurst: intEnv("RATE_LIMIT_BURST", 20),
		EnableHSTS:     os.Getenv("ENABLE_HSTS") == "true",
	}
}

func defaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".library.json")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func boolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func splitEnv(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
