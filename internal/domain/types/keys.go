package types

import (
	"crypto/ecdh"
	"time"
)

// SharedKey is the symmetric AES-256-GCM key two parties derive via ECDH.
// It is never persisted; it lives only in the per-process key cache.
type SharedKey [32]byte

// Slice returns the key as a []byte.
func (k SharedKey) Slice() []byte { return k[:] }

// KeyPair holds a user's long-term P-256 key-agreement pair. The private
// key never leaves the process except as a PKCS#8 blob written to a key store.
type KeyPair struct {
	Private *ecdh.PrivateKey
	Public  *ecdh.PublicKey
}

// KeyRecord is the persisted form of a key pair.
//
// PublicKey is the uncompressed EC point encoding and PrivateKey is PKCS#8
// DER. These exact encodings are required to interoperate with previously
// persisted keys.
type KeyRecord struct {
	UserID     UserID    `json:"user_id"`
	PublicKey  []byte    `json:"public_key"`
	PrivateKey []byte    `json:"private_key"`
	CreatedAt  time.Time `json:"created_at"`
}
