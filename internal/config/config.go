package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey         string
	GeminiModel          string
	GeminiConcurrentReqs int

	// Rate limiting
	ChatRequestsPerMin int
	RedisURL           string

	// Logging
	LogLevel string
	LogDir   string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		Env:                  getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:         mustGetEnv("GEMINI_API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiConcurrentReqs: getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		ChatRequestsPerMin:   getEnvAsIntOrDefault("CHAT_REQUESTS_PER_MINUTE", 30),
		RedisURL:             getEnvOrDefault("REDIS_URL", ""),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogDir:               getEnvOrDefault("LOG_DIR", ""),
		FrontendURL:          getEnvOrDefault("FRONTEND_URL", "*"),
	}

	if cfg.GeminiConcurrentReqs < 1 {
		cfg.GeminiConcurrentReqs = 1
	}

	return cfg
}

// IsDevelopment reports whether the service runs with developer-friendly defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
