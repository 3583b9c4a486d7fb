package session

import (
	"context"
	"crypto/ecdh"
	"fmt"

	"secureai/internal/crypto"
	"secureai/internal/domain"
	apperrors "secureai/pkg/errors"
	"secureai/pkg/logger"
)

// Service derives per-peer shared keys and caches them.
type Service struct {
	ids   domain.IdentityService
	keys  domain.KeyStore
	cache *KeyCache
	log   *logger.Logger
}

// New constructs a session service. The cache is owned by the caller so
// several services (or tests) can share or isolate it deliberately.
func New(
	ids domain.IdentityService,
	keys domain.KeyStore,
	cache *KeyCache,
	log *logger.Logger,
) *Service {
	return &Service{ids: ids, keys: keys, cache: cache, log: log}
}

// DeriveSharedKey performs ECDH bit derivation and imports the 256 secret
// bits as an AES-256-GCM key. Deterministic and symmetric in its inputs.
func (s *Service) DeriveSharedKey(
	localPrivate *ecdh.PrivateKey,
	remotePublic *ecdh.PublicKey,
) (domain.SharedKey, error) {
	key, err := crypto.DeriveSharedKey(localPrivate, remotePublic)
	if err != nil {
		return domain.SharedKey{}, apperrors.Internal("ecdh derivation", err)
	}
	return key, nil
}

// GetOrDeriveSharedKey returns the cached key for (local, remote), deriving
// and caching it on a miss.
//
// The cache is an optimization only; derivation is deterministic, so a
// re-derive always produces the same key. A remote user with no published
// public key is reported with CodeNotFound: a legitimate "cannot start a
// secure conversation yet" state, not a failure to retry.
func (s *Service) GetOrDeriveSharedKey(
	ctx context.Context,
	localUserID, remoteUserID domain.UserID,
) (domain.SharedKey, error) {
	if key, ok := s.cache.Get(localUserID, remoteUserID); ok {
		return key, nil
	}

	local, err := s.ids.GetOrCreateKeyPair(ctx, localUserID)
	if err != nil {
		return domain.SharedKey{}, err
	}

	rec, ok, err := s.keys.Get(ctx, remoteUserID)
	if err != nil {
		return domain.SharedKey{}, err
	}
	if !ok {
		return domain.SharedKey{}, apperrors.NotFound(
			fmt.Sprintf("peer %q has no published key", remoteUserID),
		)
	}
	remotePublic, err := crypto.ParsePublicKey(rec.PublicKey)
	if err != nil {
		return domain.SharedKey{}, apperrors.Corrupted("import peer public key", err)
	}

	key, err := s.DeriveSharedKey(local.Private, remotePublic)
	if err != nil {
		return domain.SharedKey{}, err
	}
	s.log.Debugw("derived shared key", "local", localUserID, "remote", remoteUserID)
	return s.cache.Add(localUserID, remoteUserID, key), nil
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
