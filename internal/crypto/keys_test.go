package crypto_test

import (
	"bytes"
	"testing"
	"time"

	"secureai/internal/crypto"
	"secureai/internal/domain"
)

func TestKeyCodecsRoundTrip(t *testing.T) {
	pair, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	der, err := crypto.MarshalPrivateKey(pair.Private)
	if err != nil {
		t.Fatalf("MarshalPrivateKey: %v", err)
	}
	raw := crypto.MarshalPublicKey(pair.Public)
	if len(raw) != crypto.PublicKeySize {
		t.Fatalf("public encoding is %d bytes, want %d", len(raw), crypto.PublicKeySize)
	}
	if raw[0] != 0x04 {
		t.Fatalf("public encoding is not an uncompressed point (leading byte %#x)", raw[0])
	}

	priv, err := crypto.ParsePrivateKey(der)
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	pub, err := crypto.ParsePublicKey(raw)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	if !priv.Equal(pair.Private) {
		t.Fatal("private key changed across PKCS#8 round trip")
	}
	if !pub.Equal(pair.Public) {
		t.Fatal("public key changed across raw-point round trip")
	}
}

func TestParsePrivateKeyRejectsGarbage(t *testing.T) {
	if _, err := crypto.ParsePrivateKey([]byte("not a key")); err == nil {
		t.Fatal("garbage PKCS#8 bytes parsed successfully")
	}
	if _, err := crypto.ParsePublicKey(bytes.Repeat([]byte{0xff}, crypto.PublicKeySize)); err == nil {
		t.Fatal("off-curve point parsed successfully")
	}
	if _, err := crypto.ParsePublicKey([]byte{0x04, 0x01}); err == nil {
		t.Fatal("truncated point parsed successfully")
	}
}

func TestImportKeyPairDetectsMismatchedHalves(t *testing.T) {
	a, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	b, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	der, err := crypto.MarshalPrivateKey(a.Private)
	if err != nil {
		t.Fatalf("MarshalPrivateKey: %v", err)
	}

	rec := domain.KeyRecord{
		UserID:     "user-1",
		PublicKey:  crypto.MarshalPublicKey(b.Public), // wrong half
		PrivateKey: der,
		CreatedAt:  time.Now(),
	}
	if _, err := crypto.ImportKeyPair(rec); err == nil {
		t.Fatal("mismatched record imported successfully")
	}

	rec.PublicKey = crypto.MarshalPublicKey(a.Public)
	pair, err := crypto.ImportKeyPair(rec)
	if err != nil {
		t.Fatalf("ImportKeyPair: %v", err)
	}
	if !pair.Private.Equal(a.Private) {
		t.Fatal("imported private key differs from original")
	}
}

func TestECDHSymmetry(t *testing.T) {
	a, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	b, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	ka, err := crypto.DeriveSharedKey(a.Private, b.Public)
	if err != nil {
		t.Fatalf("DeriveSharedKey (A): %v", err)
	}
	kb, err := crypto.DeriveSharedKey(b.Private, a.Public)
	if err != nil {
		t.Fatalf("DeriveSharedKey (B): %v", err)
	}
	if !bytes.Equal(ka.Slice(), kb.Slice()) {
		t.Fatal("raw secrets differ between derivation directions")
	}

	// Deterministic: deriving again yields the identical key.
	again, err := crypto.DeriveSharedKey(a.Private, b.Public)
	if err != nil {
		t.Fatalf("DeriveSharedKey (repeat): %v", err)
	}
	if again != ka {
		t.Fatal("derivation is not deterministic")
	}
}
