// Package crypto exposes the primitives used by the SecureAI messaging core.
//
// Contents
//
//   - P-256 key-agreement pair generation and the PKCS#8 / uncompressed-point
//     codecs used for persistence (GenerateKeyPair, MarshalPrivateKey,
//     ParsePrivateKey, MarshalPublicKey, ParsePublicKey)
//   - ECDH shared-secret derivation into an AES-256-GCM key (DeriveSharedKey)
//   - Authenticated message encryption with a fresh 12-byte IV per call
//     (Encrypt, Decrypt)
//   - HKDF-derived MAC sub-key and HMAC-SHA-256 over the plaintext
//     (MessageMAC, VerifyMessageMAC)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// All operations are stateless pure functions of their inputs; the only
// randomness is key generation and per-message IVs. Callers should treat
// returned secrets as sensitive and rely on Wipe when practical to reduce
// lifetime in memory.
package crypto
