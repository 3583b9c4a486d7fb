package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"secureai/internal/domain"
)

// macInfo is the HKDF info label separating the MAC sub-key from the raw
// shared secret used for encryption. The two purposes must never share key
// material directly.
const macInfo = "secureai/v1/mac"

// MessageMAC computes HMAC-SHA-256 over plaintext under a MAC sub-key
// derived from the shared key via HKDF-SHA-256 with an empty salt.
//
// The GCM tag already authenticates the ciphertext; this MAC independently
// authenticates the plaintext with a distinct key and is carried for
// wire-format compatibility and defense in depth. Deterministic for fixed
// inputs.
func MessageMAC(key domain.SharedKey, plaintext []byte) ([]byte, error) {
	sub := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key.Slice(), nil, []byte(macInfo)), sub); err != nil {
		return nil, err
	}
	defer Wipe(sub)

	mac := hmac.New(sha256.New, sub)
	mac.Write(plaintext)
	return mac.Sum(nil), nil
}

// VerifyMessageMAC recomputes the MAC and compares in constant time.
func VerifyMessageMAC(key domain.SharedKey, plaintext, mac []byte) (bool, error) {
	want, err := MessageMAC(key, plaintext)
	if err != nil {
		return false, err
	}
	return hmac.Equal(want, mac), nil
}
