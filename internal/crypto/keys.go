package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/x509"
	"fmt"

	"secureai/internal/domain"
)

const (
	// PublicKeySize is the length of an uncompressed P-256 point encoding.
	PublicKeySize = 65
)

// GenerateKeyPair returns a fresh P-256 key-agreement pair.
// The keys are usable for ECDH derivation only, not signing.
func GenerateKeyPair() (domain.KeyPair, error) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return domain.KeyPair{}, err
	}
	return domain.KeyPair{Private: priv, Public: priv.PublicKey()}, nil
}

// MarshalPrivateKey serializes a private key to PKCS#8 DER, the encoding
// the key stores persist.
func MarshalPrivateKey(priv *ecdh.PrivateKey) ([]byte, error) {
	return x509.MarshalPKCS8PrivateKey(priv)
}

// ParsePrivateKey imports PKCS#8 DER bytes back into a key-agreement key.
func ParsePrivateKey(der []byte) (*ecdh.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	ec, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("not an EC private key: %T", key)
	}
	priv, err := ec.ECDH()
	if err != nil {
		return nil, err
	}
	if priv.Curve() != ecdh.P256() {
		return nil, fmt.Errorf("unexpected curve for stored key")
	}
	return priv, nil
}

// MarshalPublicKey returns the uncompressed EC point encoding of pub.
func MarshalPublicKey(pub *ecdh.PublicKey) []byte {
	return pub.Bytes()
}

// ParsePublicKey imports an uncompressed P-256 point.
func ParsePublicKey(raw []byte) (*ecdh.PublicKey, error) {
	if len(raw) != PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", PublicKeySize, len(raw))
	}
	return ecdh.P256().NewPublicKey(raw)
}

// ImportKeyPair reconstructs a key pair from its persisted record and checks
// that the stored public key matches the private half.
func ImportKeyPair(rec domain.KeyRecord) (domain.KeyPair, error) {
	priv, err := ParsePrivateKey(rec.PrivateKey)
	if err != nil {
		return domain.KeyPair{}, err
	}
	pub, err := ParsePublicKey(rec.PublicKey)
	if err != nil {
		return domain.KeyPair{}, err
	}
	if !priv.PublicKey().Equal(pub) {
		return domain.KeyPair{}, fmt.Errorf("stored public key does not match private key")
	}
	return domain.KeyPair{Private: priv, Public: pub}, nil
}
