package session

import (
	"context"        // Context for store operations
	"crypto/rand"    // Random token generation
	"encoding/hex"   // Token encoding
)

// Store tracks logged-in sessions server-side. A session maps an opaque
// token (carried by the cookie) to the owning user's ID until it is
// deleted at logout or expires after the store's TTL.
type Store interface {
	// Create establishes a new session for userID and returns its token
	Create(ctx context.Context, userID uint) (string, error)
	// Get resolves a token to its user ID; ok is false when absent or expired
	Get(ctx context.Context, token string) (userID uint, ok bool, err error)
	// Delete invalidates a session
	Delete(ctx context.Context, token string) error
}

// newToken returns a random 256-bit hex token
func newToken() (string, error) {
	b := make([]byte, 32) // 256 bits of randomness
	if _, err := rand.Read(b); err != nil {
		return "", err // Fail if the system RNG fails
	}
	return hex.EncodeToString(b), nil // Hex-encode for cookie transport
}
