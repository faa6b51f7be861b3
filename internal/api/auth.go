package api

import (
	"net/http" // HTTP status codes
	"net/url"  // Redirect target parsing
	"strings"  // String manipulation

	"recipe_share/internal/domain"     // Importing domain models
	"recipe_share/internal/middleware" // Session resolution
	"recipe_share/internal/session"    // Session store and cookie helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username             string `json:"username" binding:"required"`              // Username must be provided
	Password             string `json:"password" binding:"required"`              // Password must be provided
	PasswordConfirmation string `json:"password_confirmation" binding:"required"` // Repeat of the password
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// isValidUsername checks if the username length is between 3 and 20 characters
func isValidUsername(username string) bool {
	return len(username) >= 3 && len(username) <= 20 // Return true if length is valid
}

// isValidPassword checks if the password is at least 6 characters
func isValidPassword(password string) bool {
	return len(password) >= 6 // Return true if length is valid
}

// safeNext returns target when it is a same-origin relative path, and the
// landing page otherwise. Anything carrying a host or a scheme would leave
// the site, so it falls back to "/" (open-redirect guard).
func safeNext(target string) string {
	if target == "" {
		return "/" // No requested page, go to the landing page
	}
	u, err := url.Parse(target) // Parse the redirect target
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/" // External or malformed target, fall back
	}
	return target
}

// RegisterHandler creates a new user account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate username and password
		if !isValidUsername(req.Username) {
			// If username is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 3-20 characters"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			// If password is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
			return
		}
		// Both password fields must match
		if req.Password != req.PasswordConfirmation {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
			return
		}
		username := strings.ToLower(req.Username) // Lowercase username to ensure uniqueness
		// Reject duplicates before insert
		var existing domain.User
		if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists. Please choose a different one."})
			return
		}
		// Hash the password and create the user; the plaintext is never stored
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Username: username, Password: string(hash)}
		// Attempt to create the user; the unique constraint backstops the pre-check
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists. Please choose a different one."})
			return
		}
		// Log the registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Congratulations, you are now a registered user!"})
	}
}

// LoginHandler authenticates a user and establishes a session. The optional
// ?next= query parameter is honored only for same-origin relative paths.
func LoginHandler(db *gorm.DB, store session.Store, cookie session.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Already logged in, go to the index
		if middleware.ResolveUser(c, db, store) != nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", strings.ToLower(req.Username)).First(&user).Error; err != nil {
			// Same generic message as a bad password, no username-existence leak
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		// Establish the server-tracked session
		token, err := store.Create(c.Request.Context(), user.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		session.SetCookie(c, token, cookie) // Attach the session cookie
		// Log the login
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("User logged in")
		// Redirect to the page they were trying to access, if it is safe
		c.Redirect(http.StatusFound, safeNext(c.Query("next")))
	}
}

// LogoutHandler invalidates the session and expires the cookie
func LogoutHandler(store session.Store, cookie session.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
			_ = store.Delete(c.Request.Context(), token) // Invalidate server-side
		}
		session.ClearCookie(c, cookie)      // Expire the cookie on the client
		c.Redirect(http.StatusFound, "/") // Back to the landing page
	}
}

// LoginFormHandler tells clients how to log in; rendering is left to the frontend
func LoginFormHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "POST username and password to this endpoint to log in"})
}

// RegisterFormHandler tells clients how to register; rendering is left to the frontend
func RegisterFormHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "POST username, password and password_confirmation to this endpoint to register"})
}
