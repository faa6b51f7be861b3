package domain

import "time"

// Comment Model
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`          // Primary key
	Content   string    `gorm:"type:text;not null" json:"content"` // Comment text
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`  // Timestamp of creation
	UserID    uint      `gorm:"not null;index" json:"user_id"`     // Foreign key to the commenting User
	RecipeID  uint      `gorm:"not null;index" json:"recipe_id"`   // Foreign key to the Recipe
	User      User      `json:"-"`                                 // Commenting user, preloaded for display
}
