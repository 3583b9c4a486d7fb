package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"secureai/internal/domain"
	apperrors "secureai/pkg/errors"
)

// MessageStore keeps encrypted messages in append order.
type MessageStore struct {
	mu   sync.RWMutex
	msgs []domain.EncryptedMessage
}

// NewMessageStore returns an empty in-memory message store.
func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

// Append stores one immutable message record.
func (s *MessageStore) Append(_ context.Context, msg domain.EncryptedMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return nil
}

// ListBetween returns the pair's non-deleted messages in CreatedAt order.
func (s *MessageStore) ListBetween(
	_ context.Context,
	a, b domain.UserID,
	since time.Time,
) ([]domain.EncryptedMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.EncryptedMessage
	for _, m := range s.msgs {
		pair := (m.SenderID == a && m.RecipientID == b) ||
			(m.SenderID == b && m.RecipientID == a)
		if !pair || m.DeletedAt != nil {
			continue
		}
		if !since.IsZero() && !m.CreatedAt.After(since) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// SoftDelete marks the message deleted for everyone. Only a participant may
// delete; the ciphertext is left untouched.
func (s *MessageStore) SoftDelete(
	_ context.Context,
	id domain.MessageID,
	requester domain.UserID,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.msgs {
		if s.msgs[i].ID != id {
			continue
		}
		if s.msgs[i].SenderID != requester && s.msgs[i].RecipientID != requester {
			return apperrors.NotFound(fmt.Sprintf("message %q not found for %q", id, requester))
		}
		now := time.Now().UTC()
		s.msgs[i].DeletedAt = &now
		return nil
	}
	return apperrors.NotFound(fmt.Sprintf("message %q not found", id))
}

// MarkEdited sets the edited metadata flag. Only the sender may set it.
func (s *MessageStore) MarkEdited(
	_ context.Context,
	id domain.MessageID,
	requester domain.UserID,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.msgs {
		if s.msgs[i].ID != id {
			continue
		}
		if s.msgs[i].SenderID != requester {
			return apperrors.NotFound(fmt.Sprintf("message %q not found for %q", id, requester))
		}
		s.msgs[i].Edited = true
		return nil
	}
	return apperrors.NotFound(fmt.Sprintf("message %q not found", id))
}

// Tamper overwrites a stored ciphertext byte. Test hook; a real store never
// rewrites ciphertext.
func (s *MessageStore) Tamper(id domain.MessageID, offset int, xor byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.msgs {
		if s.msgs[i].ID == id && offset < len(s.msgs[i].Ciphertext) {
			s.msgs[i].Ciphertext[offset] ^= xor
			return true
		}
	}
	return false
}

// Compile-time assertion that MessageStore implements domain.MessageStore.
var _ domain.MessageStore = (*MessageStore)(nil)
