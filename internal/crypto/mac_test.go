package crypto_test

import (
	"bytes"
	"testing"

	"secureai/internal/crypto"
)

func TestMessageMACDeterministic(t *testing.T) {
	key, _ := pairKeys(t)

	m1, err := crypto.MessageMAC(key, []byte("hello"))
	if err != nil {
		t.Fatalf("MessageMAC: %v", err)
	}
	m2, err := crypto.MessageMAC(key, []byte("hello"))
	if err != nil {
		t.Fatalf("MessageMAC: %v", err)
	}
	if !bytes.Equal(m1, m2) {
		t.Fatal("MAC differs across calls for fixed inputs")
	}
}

func TestMessageMACSensitivity(t *testing.T) {
	key, _ := pairKeys(t)
	otherKey, _ := pairKeys(t)

	base, err := crypto.MessageMAC(key, []byte("hello"))
	if err != nil {
		t.Fatalf("MessageMAC: %v", err)
	}
	changedPlaintext, err := crypto.MessageMAC(key, []byte("hello!"))
	if err != nil {
		t.Fatalf("MessageMAC: %v", err)
	}
	changedKey, err := crypto.MessageMAC(otherKey, []byte("hello"))
	if err != nil {
		t.Fatalf("MessageMAC: %v", err)
	}
	if bytes.Equal(base, changedPlaintext) {
		t.Fatal("MAC unchanged for different plaintext")
	}
	if bytes.Equal(base, changedKey) {
		t.Fatal("MAC unchanged for different key")
	}
}

func TestVerifyMessageMAC(t *testing.T) {
	key, _ := pairKeys(t)

	mac, err := crypto.MessageMAC(key, []byte("hello"))
	if err != nil {
		t.Fatalf("MessageMAC: %v", err)
	}
	ok, err := crypto.VerifyMessageMAC(key, []byte("hello"), mac)
	if err != nil {
		t.Fatalf("VerifyMessageMAC: %v", err)
	}
	if !ok {
		t.Fatal("valid MAC failed to verify")
	}

	mac[0] ^= 0x01
	ok, err = crypto.VerifyMessageMAC(key, []byte("hello"), mac)
	if err != nil {
		t.Fatalf("VerifyMessageMAC: %v", err)
	}
	if ok {
		t.Fatal("tampered MAC verified")
	}
}
