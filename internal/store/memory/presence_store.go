package memory

import (
	"context"
	"sync"

	"secureai/internal/domain"
)

// PresenceStore keeps last-known presence per user.
type PresenceStore struct {
	mu      sync.RWMutex
	records map[domain.UserID]domain.PresenceRecord
}

// NewPresenceStore returns an empty in-memory presence store.
func NewPresenceStore() *PresenceStore {
	return &PresenceStore{records: make(map[domain.UserID]domain.PresenceRecord)}
}

// Set upserts the user's presence record.
func (s *PresenceStore) Set(_ context.Context, rec domain.PresenceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.UserID] = rec
	return nil
}

// Get returns the user's presence record, if any.
func (s *PresenceStore) Get(
	_ context.Context,
	userID domain.UserID,
) (domain.PresenceRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	return rec, ok, nil
}

// Compile-time assertion that PresenceStore implements domain.PresenceStore.
var _ domain.PresenceStore = (*PresenceStore)(nil)
