package memory

import (
	"context"
	"fmt"
	"sync"

	"secureai/internal/domain"
	apperrors "secureai/pkg/errors"
)

// KeyStore keeps key records in a mutex-guarded map.
type KeyStore struct {
	mu      sync.RWMutex
	records map[domain.UserID]domain.KeyRecord
}

// NewKeyStore returns an empty in-memory key store.
func NewKeyStore() *KeyStore {
	return &KeyStore{records: make(map[domain.UserID]domain.KeyRecord)}
}

// Get returns the record for userID, if present.
func (s *KeyStore) Get(
	_ context.Context,
	userID domain.UserID,
) (domain.KeyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	return rec, ok, nil
}

// Put inserts the record if no record exists for the user; an existing
// record wins and the call reports CodeConflict.
func (s *KeyStore) Put(_ context.Context, rec domain.KeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.UserID]; exists {
		return apperrors.Conflict(fmt.Sprintf("key pair already registered for %q", rec.UserID))
	}
	s.records[rec.UserID] = rec
	return nil
}

// Compile-time assertion that KeyStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyStore)(nil)
