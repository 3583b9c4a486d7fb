package crypto

import (
	"crypto/ecdh"
	"fmt"

	"secureai/internal/domain"
)

// DeriveSharedKey computes the P-256 ECDH shared secret and imports the
// 256 raw bits as an AES-256-GCM key.
//
// The result is deterministic given the same inputs and symmetric:
// (A-private, B-public) and (B-private, A-public) yield the same key. That
// determinism, not randomness, is what lets two independently-running peers
// converge on one key without ever transmitting it.
func DeriveSharedKey(
	localPrivate *ecdh.PrivateKey,
	remotePublic *ecdh.PublicKey,
) (domain.SharedKey, error) {
	var key domain.SharedKey
	secret, err := localPrivate.ECDH(remotePublic)
	if err != nil {
		return key, err
	}
	if len(secret) != len(key) {
		return key, fmt.Errorf("shared secret is %d bytes, want %d", len(secret), len(key))
	}
	copy(key[:], secret)
	Wipe(secret)
	return key, nil
}
