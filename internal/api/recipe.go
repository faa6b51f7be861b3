package api

import (
	"errors"   // Error inspection
	"math"     // Average rounding
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation
	"time"     // Comment timestamps

	"recipe_share/internal/domain"     // Importing domain models
	"recipe_share/internal/middleware" // Session resolution
	"recipe_share/internal/session"    // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CommentRequest represents a combined comment-and-rating submission
type CommentRequest struct {
	Content string `json:"content" binding:"required"`            // Comment text must be provided
	Rating  int    `json:"rating" binding:"required,min=1,max=5"` // Star value, 1-5
}

// CommentResponse represents a comment as rendered on the recipe page
type CommentResponse struct {
	ID        uint      `json:"id"`         // Comment ID
	Content   string    `json:"content"`    // Comment text
	CreatedAt time.Time `json:"created_at"` // Timestamp of creation
	Username  string    `json:"username"`   // Commenting user's name
}

// recipeID parses the :id route parameter
func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64) // Parse the path parameter
	if err != nil {
		return 0, false // Not a numeric ID
	}
	return uint(id), true
}

// averageRating returns the mean rating for a recipe rounded to one decimal
// place, or 0 when the recipe has no ratings yet.
func averageRating(db *gorm.DB, recipeID uint) (float64, error) {
	var avg float64 // Average value, 0 when no rows
	err := db.Model(&domain.Rating{}).
		Where("recipe_id = ?", recipeID).
		Select("COALESCE(AVG(value), 0)").
		Scan(&avg).Error
	return math.Round(avg*10) / 10, err // Round to one decimal place
}

// IndexHandler shows the landing payload to anonymous visitors and the full
// recipe list to logged-in users.
func IndexHandler(db *gorm.DB, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.ResolveUser(c, db, store) // Optional session
		if user == nil {
			// Anonymous visitor, show the landing payload
			c.JSON(http.StatusOK, gin.H{"message": "Welcome to Recipe Share! Log in to browse recipes."})
			return
		}
		var recipes []domain.Recipe // Slice to hold recipes
		if err := db.Find(&recipes).Error; err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipes": recipes}) // Return the recipe list
	}
}

// GetRecipeHandler returns a recipe with its comments and average rating
func GetRecipeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := recipeID(c) // Parse the recipe ID
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		var recipe domain.Recipe // Fetch the recipe
		if err := db.First(&recipe, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		var comments []domain.Comment // Comments with their authors, oldest first
		if err := db.Preload("User").Where("recipe_id = ?", id).Order("created_at asc").Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
		avg, err := averageRating(db, id) // Average star rating
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute rating"})
			return
		}
		// Map comments to response format
		resp := make([]CommentResponse, len(comments))
		for i, cm := range comments {
			resp[i] = CommentResponse{
				ID:        cm.ID,            // Comment ID
				Content:   cm.Content,       // Comment text
				CreatedAt: cm.CreatedAt,     // Timestamp
				Username:  cm.User.Username, // Author
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"recipe":         recipe, // The recipe itself
			"comments":       resp,   // Its comments
			"average_rating": avg,    // Mean star value, one decimal
		})
	}
}

// SubmitCommentHandler posts a comment and a star rating together. The
// rating is upserted (one row per user and recipe, latest value wins) while
// comments are append-only; both writes commit together or neither does.
func SubmitCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, ok := recipeID(c) // Parse the recipe ID
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		var req CommentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment and a rating between 1 and 5 are required"})
			return
		}
		var recipe domain.Recipe // The recipe must exist
		if err := db.First(&recipe, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		uid := userID.(uint) // Authenticated user's ID
		// Atomic rating upsert plus comment insert
		err := db.Transaction(func(tx *gorm.DB) error {
			var rating domain.Rating // Existing rating for this user and recipe, if any
			err := tx.Where("user_id = ? AND recipe_id = ?", uid, id).First(&rating).Error
			switch {
			case err == nil:
				// Update the existing rating in place
				if err := tx.Model(&rating).Update("value", req.Rating).Error; err != nil {
					return err // Return error to rollback
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				// First rating from this user for this recipe
				rating = domain.Rating{Value: req.Rating, UserID: uid, RecipeID: id}
				if err := tx.Create(&rating).Error; err != nil {
					return err // Return error to rollback
				}
			default:
				return err // Lookup failed, rollback
			}
			// Comments are append-only, always a new row
			comment := domain.Comment{Content: req.Content, UserID: uid, RecipeID: id}
			return tx.Create(&comment).Error
		})
		// Handle transaction result
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":   uid,         // Commenting user
				"recipe_id": id,          // Recipe
				"error":     err.Error(), // Error message
			}).Error("Comment and rating failed") // Log the failure
			// Return a generic failure, no internal detail
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post comment and rating"})
			return
		}
		// Log the successful submission
		logrus.WithFields(logrus.Fields{
			"user_id":   uid,        // Commenting user
			"recipe_id": id,         // Recipe
			"rating":    req.Rating, // Star value
		}).Info("Comment and rating posted")
		// Back to the recipe page
		c.Redirect(http.StatusFound, "/recipe/"+strconv.FormatUint(uint64(id), 10))
	}
}

// SearchHandler performs a case-insensitive substring search on recipe
// names. A blank query returns no results rather than every recipe.
func SearchHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q")) // Trim the search term
		recipes := []domain.Recipe{}             // Empty slice, not nil, so the JSON is always an array
		if query != "" {
			// Case-insensitive substring match on the name
			if err := db.Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").Find(&recipes).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"recipes": recipes, // Matching recipes, empty for a blank query
			"query":   query,   // Echo the trimmed query
		})
	}
}
