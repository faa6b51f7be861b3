package session

import (
	"context" // Context for store operations
	"sync"    // Mutex for concurrent access
	"time"    // Expiry tracking
)

// MemoryStore is an in-process Store used by tests. Entries expire lazily
// on lookup, mirroring the Redis TTL behavior.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	userID    uint      // Owning user
	expiresAt time.Time // Absolute expiry
}

// NewMemoryStore creates an in-memory session store with lifetime ttl
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, sessions: make(map[string]memoryEntry)}
}

// Create establishes a new session for userID and returns its token
func (s *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	token, err := newToken() // Generate an opaque session token
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

// Get resolves a token to its user ID
func (s *MemoryStore) Get(_ context.Context, token string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[token]
	if !ok {
		return 0, false, nil // Session absent
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, token) // Expired, drop it
		return 0, false, nil
	}
	return entry.userID, true, nil
}

// Delete invalidates a session
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
