package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For session lifetime

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort      string        // Application port
	DBPath       string        // Path to the SQLite database file
	UploadDir    string        // Directory for uploaded recipe images
	RedisAddr    string        // Redis server address
	RedisPass    string        // Redis password
	RedisDB      int           // Redis database number
	CookieSecure bool          // Whether the session cookie is HTTPS-only
	SessionTTL   time.Duration // Server-side session lifetime
	IsProd       bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	ttl := 3600 // Default session lifetime: 1 hour
	if v, err := strconv.Atoi(os.Getenv("SESSION_TTL_SECONDS")); err == nil && v > 0 {
		ttl = v // Override lifetime if a valid value is set
	}
	return &Config{
		AppPort:      getEnv("APP_PORT", "8080"),                // Application port
		DBPath:       getEnv("DB_PATH", "instance/recipes.db"),  // SQLite database file
		UploadDir:    getEnv("UPLOAD_DIR", "static/uploads"),    // Image upload directory
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),    // Redis server address
		RedisPass:    os.Getenv("REDIS_PASS"),                   // Redis password
		RedisDB:      redisDB,                                   // Redis database number
		CookieSecure: os.Getenv("COOKIE_SECURE") != "false",     // Secure cookie unless explicitly disabled for local dev
		SessionTTL:   time.Duration(ttl) * time.Second,          // Session lifetime
		IsProd:       os.Getenv("IS_PROD") == "true",            // Is production environment
	}
}

// getEnv returns the value of key, or fallback when unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
