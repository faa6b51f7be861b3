package upload

import (
	"errors"         // Sentinel error
	"io"             // File copying
	"mime/multipart" // Uploaded file headers
	"os"             // Filesystem access
	"path"           // Path component stripping
	"path/filepath"  // Destination path joining
	"regexp"         // Unsafe character filtering
	"strings"        // String manipulation
)

// ErrUnsafeFilename is returned when nothing usable survives sanitization
var ErrUnsafeFilename = errors.New("upload: unsafe filename")

// unsafeChars matches every character that may not appear in a stored filename
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded filename to a safe basename: path
// components (both separator styles) are stripped, every character outside
// [A-Za-z0-9_.-] becomes an underscore, and leading/trailing dots and
// underscores are trimmed. Returns "" when nothing safe remains.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/") // Windows separators count as separators too
	name = path.Base(name)                     // Drop any path components
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._") // A bare "." or ".." must not survive
	return name
}

// Store persists recipe images in a single directory, keyed by sanitized
// filename. Two uploads with the same sanitized name overwrite each other;
// last write wins.
type Store struct {
	dir string // Upload directory
}

// NewStore creates the upload directory if needed and returns a Store over it
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err // Fail if the directory cannot be created
	}
	return &Store{dir: dir}, nil
}

// Dir returns the upload directory
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded file under its sanitized name and returns that
// name, which is what gets stored on the Recipe.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	name := SanitizeFilename(fh.Filename) // Sanitize before touching the filesystem
	if name == "" {
		return "", ErrUnsafeFilename // Nothing safe left of the name
	}
	src, err := fh.Open() // Open the uploaded file
	if err != nil {
		return "", err
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(s.dir, name)) // Create the destination file
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err // Fail on a short write
	}
	return name, nil
}
