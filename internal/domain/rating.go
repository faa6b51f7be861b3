package domain

// Rating Model
type Rating struct {
	ID       uint `gorm:"primaryKey" json:"id"`                                             // Primary key
	Value    int  `gorm:"not null" json:"value"`                                            // Star value, 1-5
	UserID   uint `gorm:"not null;uniqueIndex:one_rating_per_user_recipe" json:"user_id"`   // Foreign key to the rating User
	RecipeID uint `gorm:"not null;uniqueIndex:one_rating_per_user_recipe" json:"recipe_id"` // Foreign key to the Recipe
}
