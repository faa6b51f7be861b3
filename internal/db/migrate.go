package db

import (
	"os"            // For creating the database directory
	"path/filepath" // For path manipulation

	"recipe_share/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
)

// Open opens the SQLite database file, creating its directory if needed
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err // Fail if the directory cannot be created
		}
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{}) // Open a connection to the database
}

// Migrate performs automatic migration for the database schema
func Migrate(path string) {
	gdb, err := Open(path) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = gdb.AutoMigrate(&domain.User{}, &domain.Recipe{}, &domain.Comment{}, &domain.Rating{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
