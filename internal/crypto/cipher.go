package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"secureai/internal/domain"
)

const (
	// IVSize is the AES-GCM nonce length. An IV must never be reused with
	// the same key; Encrypt draws a fresh one per call.
	IVSize = 12
)

// ErrDecrypt is returned when the GCM tag fails to verify: tampered or
// corrupt ciphertext/IV, or the wrong key.
var ErrDecrypt = errors.New("authentication failed")

// Encrypt seals plaintext under key with AES-256-GCM and a fresh random IV.
// It returns the ciphertext (tag appended by the GCM construction) and the
// IV used.
func Encrypt(key domain.SharedKey, plaintext []byte) (ciphertext, iv []byte, err error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	iv = make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, nil, err
	}
	return aead.Seal(nil, iv, plaintext, nil), iv, nil
}

// Decrypt opens ciphertext under key and iv. Any tag mismatch is reported
// as ErrDecrypt; there is no partial recovery.
func Decrypt(key domain.SharedKey, iv, ciphertext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != IVSize {
		return nil, ErrDecrypt
	}
	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

func newGCM(key domain.SharedKey) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key.Slice())
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
