package main

import (
	"context" // context package is needed for the Redis ping
	"log"     // log package is needed for logging

	"recipe_share/internal/api"     // Custom package for API handlers
	"recipe_share/internal/config"  // Custom package for configuration
	"recipe_share/internal/db"      // Custom package for database access
	"recipe_share/internal/session" // Custom package for session storage
	"recipe_share/internal/upload"  // Custom package for image uploads

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Open the SQLite database file
	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client for the session store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Sessions live in Redis with a server-side TTL
	store := session.NewRedisStore(redisClient, cfg.SessionTTL)

	// Recipe images live under the upload directory
	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		logrus.Fatalf("failed to create upload directory: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin with every route wired
	r := api.NewRouter(gdb, store, uploads, cfg)

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
