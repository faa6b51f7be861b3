package api

import (
	"recipe_share/internal/config"     // Application configuration
	"recipe_share/internal/middleware" // Auth middleware
	"recipe_share/internal/session"    // Session store and cookie helpers
	"recipe_share/internal/upload"     // Image upload store

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// NewRouter wires every route onto a gin engine. The same wiring serves
// the server binary and the handler tests.
func NewRouter(db *gorm.DB, store session.Store, uploads *upload.Store, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance with logging and recovery

	// Session cookie flags, shared by login and logout
	cookie := session.CookieConfig{Secure: cfg.CookieSecure, TTL: cfg.SessionTTL}

	// Uploaded images are served as plain static files
	r.Static("/uploads", uploads.Dir())

	// Public routes
	r.GET("/", IndexHandler(db, store))                 // Landing page or recipe list
	r.GET("/login", LoginFormHandler)                   // Login form placeholder
	r.POST("/login", LoginHandler(db, store, cookie))   // Authenticate, redirect-safe next param
	r.GET("/register", RegisterFormHandler)             // Registration form placeholder
	r.POST("/register", RegisterHandler(db))            // Create account

	// Authenticated routes (session required)
	authGroup := r.Group("")
	authGroup.Use(middleware.SessionAuth(db, store))
	authGroup.GET("/recipe/:id", GetRecipeHandler(db))      // View recipe with comments and rating
	authGroup.POST("/recipe/:id", SubmitCommentHandler(db)) // Submit comment and rating
	authGroup.GET("/search", SearchHandler(db))             // Substring search
	authGroup.GET("/logout", LogoutHandler(store, cookie))  // End session

	// Admin routes (session + admin flag required)
	adminGroup := r.Group("")
	adminGroup.Use(middleware.SessionAuth(db, store), middleware.AdminOnly(db))
	adminGroup.GET("/admin_dashboard", DashboardHandler(db))             // Manage recipes
	adminGroup.POST("/add_recipe", AddRecipeHandler(db, uploads))        // Create recipe, optional image
	adminGroup.POST("/update_recipe/:id", UpdateRecipeHandler(db, uploads)) // Edit recipe, optional replacement image
	adminGroup.POST("/delete_recipe/:id", DeleteRecipeHandler(db))       // Delete recipe and dependents

	// Diagnostics stay off production builds; the data dump is admin-only
	if !cfg.IsProd {
		r.GET("/test-security", TestSecurityHandler(cfg)) // Cookie flag report
		adminGroup.GET("/debug", DebugHandler(db))        // Full data dump
	}

	return r
}
