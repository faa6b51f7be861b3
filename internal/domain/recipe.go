package domain

// Recipe Model
type Recipe struct {
	ID            uint   `gorm:"primaryKey" json:"id"`                            // Primary key
	Name          string `gorm:"not null;size:100" json:"name"`                   // Recipe name
	Ingredients   string `gorm:"type:text;not null" json:"ingredients"`           // Free-text ingredients
	Instructions  string `gorm:"type:text;not null" json:"instructions"`          // Free-text instructions
	ImageFilename string `gorm:"size:255" json:"image_filename,omitempty"`        // Sanitized filename of the uploaded image, empty when none
}
