package filestore

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"secureai/internal/domain"
	apperrors "secureai/pkg/errors"
)

// record is the on-disk JSON shape: public key in the clear, private key
// sealed in a passphrase envelope.
type record struct {
	UserID    domain.UserID `json:"user_id"`
	PublicKey []byte        `json:"public_key"`
	Private   []byte        `json:"private"` // envelope blob
	CreatedAt time.Time     `json:"created_at"`
}

// KeyStore persists key pairs under dir, one file per user.
type KeyStore struct {
	dir        string
	passphrase string
	mu         sync.Mutex
}

// NewKeyStore returns a KeyStore rooted at dir. The passphrase seals every
// private key written and unseals every private key read.
func NewKeyStore(dir, passphrase string) *KeyStore {
	return &KeyStore{dir: dir, passphrase: passphrase}
}

// Get reads and unseals the record for userID. A wrong passphrase or a
// modified blob is reported as CodeCorrupted.
func (s *KeyStore) Get(
	_ context.Context,
	userID domain.UserID,
) (domain.KeyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec record
	ok, err := readJSON(s.path(userID), &rec)
	if errors.Is(err, errMalformedRecord) {
		return domain.KeyRecord{}, false, apperrors.Corrupted("decode key record", err)
	}
	if err != nil {
		return domain.KeyRecord{}, false, apperrors.Unavailable("read key record", err)
	}
	if !ok {
		return domain.KeyRecord{}, false, nil
	}

	der, err := open(s.passphrase, rec.Private)
	if err != nil {
		return domain.KeyRecord{}, false, apperrors.Corrupted("unseal private key", err)
	}
	return domain.KeyRecord{
		UserID:     rec.UserID,
		PublicKey:  rec.PublicKey,
		PrivateKey: der,
		CreatedAt:  rec.CreatedAt,
	}, true, nil
}

// Put seals and writes the record if none exists for the user. The write is
// an exclusive create, so concurrent first writes for the same user resolve
// to exactly one stored pair and the loser sees CodeConflict.
func (s *KeyStore) Put(_ context.Context, kr domain.KeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return apperrors.Unavailable("create key store dir", err)
	}

	sealed, err := seal(s.passphrase, kr.PrivateKey)
	if err != nil {
		return apperrors.Internal("seal private key", err)
	}
	rec := record{
		UserID:    kr.UserID,
		PublicKey: kr.PublicKey,
		Private:   sealed,
		CreatedAt: kr.CreatedAt,
	}
	if err := createJSON(s.path(kr.UserID), rec, 0o600); err != nil {
		if errors.Is(err, os.ErrExist) {
			return apperrors.Conflict(fmt.Sprintf("key pair already registered for %q", kr.UserID))
		}
		return apperrors.Unavailable("write key record", err)
	}
	return nil
}

func (s *KeyStore) path(userID domain.UserID) string {
	// Hex keeps arbitrary user ids filesystem-safe.
	return filepath.Join(s.dir, "key-"+hex.EncodeToString([]byte(userID))+".json")
}

// Compile-time assertion that KeyStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyStore)(nil)
