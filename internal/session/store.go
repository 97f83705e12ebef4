// Package session keeps each user's last submitted payload for the lifetime
// of the process. The planning engine itself is stateless; this is the
// explicit caller-side memory, and it never survives a restart.
package session

import (
	"encoding/json"
	"errors"
	"sync"
)

// ErrNoPayload is returned when a user has no stored payload.
var ErrNoPayload = errors.New("no payload stored for user")

// Store is an in-process, per-user payload store. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	payloads map[string]json.RawMessage
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{payloads: make(map[string]json.RawMessage)}
}

// Put remembers the raw payload for a user, replacing any previous one.
func (s *Store) Put(userID string, payload json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy so callers can't mutate the stored bytes afterwards.
	stored := make(json.RawMessage, len(payload))
	copy(stored, payload)
	s.payloads[userID] = stored
}

// Get returns the stored payload for a user, or ErrNoPayload.
func (s *Store) Get(userID string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.payloads[userID]
	if !ok {
		return nil, ErrNoPayload
	}
	out := make(json.RawMessage, len(payload))
	copy(out, payload)
	return out, nil
}

// Delete forgets the stored payload for a user, if any.
func (s *Store) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.payloads, userID)
}
