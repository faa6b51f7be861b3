package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"recipe_share/internal/domain" // Importing domain models
	"recipe_share/internal/upload" // Image upload store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// DashboardHandler lists all recipes for management
func DashboardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var recipes []domain.Recipe // Slice to hold recipes
		if err := db.Find(&recipes).Error; err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipes": recipes}) // Return the recipe list
	}
}

// recipeForm pulls the trimmed text fields out of a multipart recipe form
func recipeForm(c *gin.Context) (name, ingredients, instructions string, ok bool) {
	name = strings.TrimSpace(c.PostForm("name"))                 // Recipe name
	ingredients = strings.TrimSpace(c.PostForm("ingredients"))   // Ingredients text
	instructions = strings.TrimSpace(c.PostForm("instructions")) // Instructions text
	ok = name != "" && ingredients != "" && instructions != ""   // All three are required
	return
}

// saveImage stores an optional uploaded image and returns its sanitized
// filename. A missing image is not an error; the returned name is "".
func saveImage(c *gin.Context, uploads *upload.Store) (string, error) {
	fh, err := c.FormFile("image_file") // Optional image file
	if err != nil || fh.Filename == "" {
		return "", nil // No image supplied
	}
	return uploads.Save(fh) // Persist under the sanitized name
}

// AddRecipeHandler creates a recipe with an optional image
func AddRecipeHandler(db *gorm.DB, uploads *upload.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, ingredients, instructions, ok := recipeForm(c) // Read the form fields
		if !ok {
			// Missing required fields, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, ingredients and instructions are required"})
			return
		}
		filename, err := saveImage(c, uploads) // Store the image, if any
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"name":  name,        // Recipe name
				"error": err.Error(), // Error message
			}).Error("Failed to save recipe image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding recipe"})
			return
		}
		// Create the recipe row; the image reference is the sanitized filename only
		recipe := domain.Recipe{Name: name, Ingredients: ingredients, Instructions: instructions, ImageFilename: filename}
		if err := db.Create(&recipe).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"name":  name,        // Recipe name
				"error": err.Error(), // Error message
			}).Error("Failed to add recipe")
			// Return a generic failure, no internal detail
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding recipe"})
			return
		}
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"recipe_id": recipe.ID, // New recipe ID
			"name":      name,      // Recipe name
			"image":     filename,  // Stored image reference, empty when none
		}).Info("Recipe added")
		// Back to the dashboard
		c.Redirect(http.StatusFound, "/admin_dashboard")
	}
}

// UpdateRecipeHandler edits a recipe; a new image replaces the stored
// reference, otherwise the existing one is kept. An unknown ID is a no-op
// redirect back to the dashboard.
func UpdateRecipeHandler(db *gorm.DB, uploads *upload.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := recipeID(c) // Parse the recipe ID
		if !ok {
			c.Redirect(http.StatusFound, "/admin_dashboard")
			return
		}
		var recipe domain.Recipe // Fetch the recipe
		if err := db.First(&recipe, id).Error; err != nil {
			// Unknown recipe, nothing to update
			c.Redirect(http.StatusFound, "/admin_dashboard")
			return
		}
		name, ingredients, instructions, ok := recipeForm(c) // Read the form fields
		if !ok {
			// Missing required fields, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, ingredients and instructions are required"})
			return
		}
		filename, err := saveImage(c, uploads) // Store the replacement image, if any
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"recipe_id": id,          // Recipe ID
				"error":     err.Error(), // Error message
			}).Error("Failed to save recipe image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating recipe"})
			return
		}
		recipe.Name = name                 // Update the name
		recipe.Ingredients = ingredients   // Update the ingredients
		recipe.Instructions = instructions // Update the instructions
		if filename != "" {
			recipe.ImageFilename = filename // Only replace the image reference when a new image arrived
		}
		if err := db.Save(&recipe).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"recipe_id": id,          // Recipe ID
				"error":     err.Error(), // Error message
			}).Error("Failed to update recipe")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating recipe"})
			return
		}
		// Log the update
		logrus.WithFields(logrus.Fields{
			"recipe_id": id,   // Recipe ID
			"name":      name, // New name
		}).Info("Recipe updated")
		// Back to the dashboard
		c.Redirect(http.StatusFound, "/admin_dashboard")
	}
}

// DeleteRecipeHandler removes a recipe together with its comments and
// ratings in one transaction. An unknown ID is a no-op redirect back to
// the dashboard.
func DeleteRecipeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := recipeID(c) // Parse the recipe ID
		if !ok {
			c.Redirect(http.StatusFound, "/admin_dashboard")
			return
		}
		var recipe domain.Recipe // Fetch the recipe
		if err := db.First(&recipe, id).Error; err != nil {
			// Unknown recipe, nothing to delete
			c.Redirect(http.StatusFound, "/admin_dashboard")
			return
		}
		// Cascade-delete dependents with the recipe so no orphan rows remain
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("recipe_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
				return err // Return error to rollback
			}
			if err := tx.Where("recipe_id = ?", id).Delete(&domain.Rating{}).Error; err != nil {
				return err // Return error to rollback
			}
			return tx.Delete(&recipe).Error // Finally the recipe itself
		})
		// Handle transaction result
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"recipe_id": id,          // Recipe ID
				"error":     err.Error(), // Error message
			}).Error("Failed to delete recipe")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting recipe"})
			return
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"recipe_id": id, // Deleted recipe ID
		}).Info("Recipe deleted")
		// Back to the dashboard
		c.Redirect(http.StatusFound, "/admin_dashboard")
	}
}
