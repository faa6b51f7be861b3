package main

import (
	"fmt"           // Usage output
	"io"            // File copying
	"os"            // Arguments and filesystem access
	"path/filepath" // Backup path joining
	"time"          // Backup timestamps

	"recipe_share/internal/config" // Custom import path (Config)
	"recipe_share/internal/db"     // Custom import path (Database)
	"recipe_share/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Operator CLI: promote a user to admin, back up the database file, or
// restore it from a backup.
func main() {
	cfg := config.LoadConfig() // Load configuration

	if len(os.Args) < 2 {
		usage() // No subcommand given
		os.Exit(1)
	}
	switch os.Args[1] {
	case "make-admin":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		makeAdmin(cfg.DBPath, os.Args[2]) // Flip the admin flag
	case "backup-db":
		backupDB(cfg.DBPath) // Copy the database file aside
	case "restore-db":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		restoreDB(cfg.DBPath, os.Args[2]) // Replace the database file
	default:
		usage()
		os.Exit(1)
	}
}

// usage prints the available subcommands
func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin make-admin <username> | backup-db | restore-db <backup_file>")
}

// makeAdmin flips the admin flag on an existing user
func makeAdmin(dbPath, username string) {
	gdb, err := db.Open(dbPath) // Open the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	var user domain.User // Look up the user by name
	if err := gdb.Where("username = ?", username).First(&user).Error; err != nil {
		logrus.Fatalf("user %s not found", username)
	}
	// Set the admin flag
	if err := gdb.Model(&user).Update("is_admin", true).Error; err != nil {
		logrus.Fatalf("failed to update user: %v", err)
	}
	logrus.Infof("Made %s an admin", username) // Log success
}

// backupDB copies the database file into the backups directory
func backupDB(dbPath string) {
	timestamp := time.Now().Format("20060102_150405") // Timestamp for the backup name
	backupDir := "backups"
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		logrus.Fatalf("failed to create backup directory: %v", err)
	}
	dst := filepath.Join(backupDir, "recipes_"+timestamp+".db") // Backup destination
	if _, err := os.Stat(dbPath); err != nil {
		logrus.Fatal("Database file not found") // Nothing to back up
	}
	if err := copyFile(dbPath, dst); err != nil {
		logrus.Fatalf("failed to back up database: %v", err)
	}
	logrus.Infof("Database backed up to %s", dst) // Log success
}

// restoreDB replaces the database file with a backup, keeping the old file
// as a fallback that is put back when the copy fails.
func restoreDB(dbPath, backupFile string) {
	if _, err := os.Stat(backupFile); err != nil {
		logrus.Fatalf("Backup file %s not found", backupFile)
	}
	old := dbPath + ".old" // Fallback copy of the current file
	if _, err := os.Stat(dbPath); err == nil {
		if err := os.Rename(dbPath, old); err != nil {
			logrus.Fatalf("failed to move current database aside: %v", err)
		}
	}
	if err := copyFile(backupFile, dbPath); err != nil {
		// Put the old database back before giving up
		if _, statErr := os.Stat(old); statErr == nil {
			_ = os.Rename(old, dbPath)
			logrus.Errorf("error restoring database: %v", err)
			logrus.Fatal("Reverted to old database")
		}
		logrus.Fatalf("error restoring database: %v", err)
	}
	logrus.Infof("Database restored from %s", backupFile) // Log success
}

// copyFile copies src to dst, truncating dst if it exists
func copyFile(src, dst string) error {
	in, err := os.Open(src) // Open the source file
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst) // Create the destination file
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in) // Copy the contents
	return err
}
