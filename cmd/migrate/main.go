package main

import (
	"recipe_share/internal/config" // Custom import path (Config)
	"recipe_share/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	db.Migrate(cfg.DBPath) // Migrate the SQLite database file
}
