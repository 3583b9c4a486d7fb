package identity

import (
	"context"
	"fmt"
	"time"

	"secureai/internal/crypto"
	"secureai/internal/domain"
	apperrors "secureai/pkg/errors"
	"secureai/pkg/logger"
)

// Service manages identity key pairs using a backing key store.
type Service struct {
	keys domain.KeyStore
	log  *logger.Logger
}

// New returns an identity service backed by the given key store.
func New(keys domain.KeyStore, log *logger.Logger) *Service {
	return &Service{keys: keys, log: log}
}

// GetOrCreateKeyPair returns the user's key pair, generating and persisting
// it on first use.
//
// Found records are imported from their stored encodings (PKCS#8 private,
// uncompressed-point public); malformed bytes surface as CodeCorrupted and
// are never retried, since they require manual remediation. On the absent
// path exactly one store write occurs; if that write loses a concurrent
// first-use race, the winner's record is re-read and imported instead of
// keeping the orphaned local pair.
func (s *Service) GetOrCreateKeyPair(
	ctx context.Context,
	userID domain.UserID,
) (domain.KeyPair, error) {
	rec, ok, err := s.keys.Get(ctx, userID)
	if err != nil {
		return domain.KeyPair{}, err
	}
	if ok {
		return s.importRecord(rec)
	}

	pair, err := crypto.GenerateKeyPair()
	if err != nil {
		return domain.KeyPair{}, apperrors.Internal("generate key pair", err)
	}
	der, err := crypto.MarshalPrivateKey(pair.Private)
	if err != nil {
		return domain.KeyPair{}, apperrors.Internal("serialize private key", err)
	}

	rec = domain.KeyRecord{
		UserID:     userID,
		PublicKey:  crypto.MarshalPublicKey(pair.Public),
		PrivateKey: der,
		CreatedAt:  time.Now().UTC(),
	}
	err = s.keys.Put(ctx, rec)
	if err == nil {
		s.log.Infow("identity key pair created", "user", userID)
		return pair, nil
	}
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		return domain.KeyPair{}, err
	}

	// Another process won the first write. Discard our pair and adopt theirs.
	crypto.Wipe(der)
	winner, ok, err := s.keys.Get(ctx, userID)
	if err != nil {
		return domain.KeyPair{}, err
	}
	if !ok {
		return domain.KeyPair{}, apperrors.Internal("key record vanished after conflict", nil)
	}
	s.log.Infow("lost key creation race, importing stored pair", "user", userID)
	return s.importRecord(winner)
}

// ExportPublicKey returns the uncompressed EC point encoding of the pair's
// public key.
func (s *Service) ExportPublicKey(pair domain.KeyPair) []byte {
	return crypto.MarshalPublicKey(pair.Public)
}

// Fingerprint returns a short fingerprint of the user's published public
// key. It is a read-only lookup: fingerprinting a user who has never
// initialized encrypted messaging reports CodeNotFound and must not mint a
// key pair on their behalf. Pairs are created only through
// GetOrCreateKeyPair, by the identity's own first use.
func (s *Service) Fingerprint(
	ctx context.Context,
	userID domain.UserID,
) (domain.Fingerprint, error) {
	rec, ok, err := s.keys.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperrors.NotFound(fmt.Sprintf("user %q has no published key", userID))
	}
	if _, err := crypto.ParsePublicKey(rec.PublicKey); err != nil {
		return "", apperrors.Corrupted("import stored public key", err)
	}
	return domain.Fingerprint(crypto.Fingerprint(rec.PublicKey)), nil
}

func (s *Service) importRecord(rec domain.KeyRecord) (domain.KeyPair, error) {
	pair, err := crypto.ImportKeyPair(rec)
	if err != nil {
		return domain.KeyPair{}, apperrors.Corrupted("import stored key pair", err)
	}
	return pair, nil
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
