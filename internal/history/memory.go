package history

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pscheid92/moodlens/internal/domain"
)

// MemoryStore keeps conversation history in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID][]domain.Message
}

// NewMemoryStore creates an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uuid.UUID][]domain.Message)}
}

// Append adds a message to the end of the session's transcript.
func (s *MemoryStore) Append(_ context.Context, sessionID uuid.UUID, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
	return nil
}

// Messages returns a copy of the session's transcript in append order.
// An unknown session yields an empty transcript, not an error.
func (s *MemoryStore) Messages(_ context.Context, sessionID uuid.UUID) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.sessions[sessionID]
	out := make([]domain.Message, len(stored))
	copy(out, stored)
	return out, nil
}

// Clear removes the session's transcript.
func (s *MemoryStore) Clear(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
