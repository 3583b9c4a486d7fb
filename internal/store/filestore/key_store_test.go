package filestore_test

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secureai/internal/domain"
	"secureai/internal/store/filestore"
	apperrors "secureai/pkg/errors"
)

func TestKeyStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	ks := filestore.NewKeyStore(t.TempDir(), "correct horse battery staple")

	rec := domain.KeyRecord{
		UserID:     "alice",
		PublicKey:  []byte{0x04, 0x01, 0x02},
		PrivateKey: []byte("pkcs8 bytes"),
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, ks.Put(ctx, rec))

	got, ok, err := ks.Get(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.PublicKey, got.PublicKey)
	assert.Equal(t, rec.PrivateKey, got.PrivateKey)

	_, ok, err = ks.Get(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyStoreConflict(t *testing.T) {
	ctx := context.Background()
	ks := filestore.NewKeyStore(t.TempDir(), "correct horse battery staple")

	rec := domain.KeyRecord{UserID: "alice", PublicKey: []byte{1}, PrivateKey: []byte{2}}
	require.NoError(t, ks.Put(ctx, rec))

	err := ks.Put(ctx, rec)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestKeyStoreConflictKeepsFirstRecord(t *testing.T) {
	ctx := context.Background()
	ks := filestore.NewKeyStore(t.TempDir(), "pw")

	first := domain.KeyRecord{UserID: "alice", PublicKey: []byte{1}, PrivateKey: []byte{2}}
	require.NoError(t, ks.Put(ctx, first))

	// The losing write must not replace the stored pair.
	err := ks.Put(ctx, domain.KeyRecord{UserID: "alice", PublicKey: []byte{9}, PrivateKey: []byte{8}})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	got, ok, err := ks.Get(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.PublicKey, got.PublicKey)
	assert.Equal(t, first.PrivateKey, got.PrivateKey)
}

func TestKeyStoreMalformedRecordIsCorrupted(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	ks := filestore.NewKeyStore(dir, "pw")

	// Same file name Put would use for "alice", but not JSON.
	path := filepath.Join(dir, "key-"+hex.EncodeToString([]byte("alice"))+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := ks.Get(ctx, "alice")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCorrupted),
		"a record that cannot decode is permanent damage, not a retryable read failure")
}

func TestKeyStoreWrongPassphrase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	rec := domain.KeyRecord{UserID: "alice", PublicKey: []byte{1}, PrivateKey: []byte("secret")}
	require.NoError(t, filestore.NewKeyStore(dir, "right").Put(ctx, rec))

	_, _, err := filestore.NewKeyStore(dir, "wrong").Get(ctx, "alice")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCorrupted))
}
