package api

import (
	"net/http" // HTTP status codes

	"recipe_share/internal/config" // Application configuration
	"recipe_share/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Diagnostic endpoints. Both leaked state unauthenticated in earlier
// revisions; they are now registered only outside production, and the data
// dump additionally sits behind the admin gate.

// TestSecurityHandler reports the session cookie configuration
func TestSecurityHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"session_cookie_secure":   cfg.CookieSecure,             // HTTPS-only cookie flag
			"session_cookie_httponly": true,                         // Always set
			"session_cookie_samesite": "Lax",                        // Always Lax
			"session_ttl_seconds":     int(cfg.SessionTTL.Seconds()), // Server-side lifetime
			"session_store_set":       cfg.RedisAddr != "",          // Redis session store configured
		})
	}
}

// DebugHandler dumps all users, recipes, comments and ratings
func DebugHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User       // All users; password hashes are never serialized
		var recipes []domain.Recipe   // All recipes
		var comments []domain.Comment // All comments
		var ratings []domain.Rating   // All ratings
		if err := db.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		if err := db.Find(&recipes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
			return
		}
		if err := db.Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
		if err := db.Find(&ratings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"users":    users,    // All users
			"recipes":  recipes,  // All recipes
			"comments": comments, // All comments
			"ratings":  ratings,  // All ratings
		})
	}
}
