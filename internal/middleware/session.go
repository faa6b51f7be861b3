package middleware

import (
	"net/http" // HTTP status codes

	"recipe_share/internal/domain"  // Importing domain models
	"recipe_share/internal/session" // Session store and cookie helpers

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ResolveUser returns the User owning the request's session cookie, or nil
// when there is no cookie, the session is absent/expired, or the user row
// is gone.
func ResolveUser(c *gin.Context, db *gorm.DB, store session.Store) *domain.User {
	token, err := c.Cookie(session.CookieName) // Read the session cookie
	if err != nil || token == "" {
		return nil // No session cookie present
	}
	userID, ok, err := store.Get(c.Request.Context(), token) // Resolve the session
	if err != nil || !ok {
		return nil // Session invalid or expired
	}
	var user domain.User // Fetch the owning user
	if err := db.First(&user, userID).Error; err != nil {
		return nil // User no longer exists
	}
	return &user
}

// SessionAuth requires a valid session and stores the current user in the context
func SessionAuth(db *gorm.DB, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := ResolveUser(c, db, store) // Resolve the session to a user
		if user == nil {
			// No valid session, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please log in to access this page"})
			return
		}
		c.Set("userID", user.ID)   // Store userID in context
		c.Set("currentUser", user) // Store the full user for handlers that need it
		c.Next()                   // Proceed to the next handler
	}
}
