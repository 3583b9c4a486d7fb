package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secureai/internal/domain"
	"secureai/internal/services/identity"
	"secureai/internal/services/session"
	"secureai/internal/store/memory"
	apperrors "secureai/pkg/errors"
	"secureai/pkg/logger"
)

// countingKeyStore counts Get calls to observe cache behaviour.
type countingKeyStore struct {
	*memory.KeyStore
	gets int
}

func (s *countingKeyStore) Get(
	ctx context.Context,
	userID domain.UserID,
) (domain.KeyRecord, bool, error) {
	s.gets++
	return s.KeyStore.Get(ctx, userID)
}

func newService(store domain.KeyStore) *session.Service {
	ids := identity.New(store, logger.Nop())
	return session.New(ids, store, session.NewKeyCache(), logger.Nop())
}

func TestSharedKeyConvergence(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyStore()

	// Two independent sessions over the same key store, as two running
	// peers would be.
	aliceSide := newService(store)
	bobSide := newService(store)

	ka, err := aliceSide.GetOrDeriveSharedKey(ctx, "alice", "bob")
	require.NoError(t, err)
	kb, err := bobSide.GetOrDeriveSharedKey(ctx, "bob", "alice")
	require.NoError(t, err)

	assert.Equal(t, ka.Slice(), kb.Slice(), "both ends must converge on one key")
}

func TestGetOrDeriveSharedKeyCaches(t *testing.T) {
	ctx := context.Background()
	store := &countingKeyStore{KeyStore: memory.NewKeyStore()}

	ids := identity.New(store, logger.Nop())
	cache := session.NewKeyCache()
	svc := session.New(ids, store, cache, logger.Nop())

	// Seed both identities.
	_, err := ids.GetOrCreateKeyPair(ctx, "alice")
	require.NoError(t, err)
	_, err = ids.GetOrCreateKeyPair(ctx, "bob")
	require.NoError(t, err)

	k1, err := svc.GetOrDeriveSharedKey(ctx, "alice", "bob")
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	before := store.gets
	k2, err := svc.GetOrDeriveSharedKey(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Equal(t, before, store.gets, "cache hit must not touch the key store")
}

func TestCacheNamespacedByLocalIdentity(t *testing.T) {
	cache := session.NewKeyCache()
	var ka, kb domain.SharedKey
	ka[0], kb[0] = 1, 2

	cache.Add("alice", "bob", ka)
	cache.Add("bob", "alice", kb)

	got, ok := cache.Get("alice", "bob")
	require.True(t, ok)
	assert.Equal(t, ka, got)

	got, ok = cache.Get("bob", "alice")
	require.True(t, ok)
	assert.Equal(t, kb, got)
}

func TestKeyCacheInsertIfAbsent(t *testing.T) {
	cache := session.NewKeyCache()
	var first, second domain.SharedKey
	first[0], second[0] = 1, 2

	assert.Equal(t, first, cache.Add("a", "b", first))
	// A concurrent second derivation keeps the existing entry.
	assert.Equal(t, first, cache.Add("a", "b", second))
}

func TestPeerKeyNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.NewKeyStore())

	_, err := svc.GetOrDeriveSharedKey(ctx, "alice", "ghost")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound),
		"a peer without a published key is an expected absence, not an internal error")
}

func TestCorruptPeerKey(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyStore()
	require.NoError(t, store.Put(ctx, domain.KeyRecord{
		UserID:    "mallory",
		PublicKey: []byte("not a point"),
	}))

	svc := newService(store)
	_, err := svc.GetOrDeriveSharedKey(ctx, "alice", "mallory")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCorrupted))
}
