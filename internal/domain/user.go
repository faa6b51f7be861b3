package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                     // Primary key
	Username string `gorm:"unique;not null;size:100" json:"username"` // Unique username
	Password string `gorm:"not null" json:"-"`                        // Hashed password, never serialized
	IsAdmin  bool   `gorm:"default:false" json:"is_admin"`            // Admin flag
}
