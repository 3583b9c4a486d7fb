// Package filestore persists key pairs on the local filesystem, one JSON
// file per user under the store directory.
//
// The public key is stored as its raw point encoding; the PKCS#8 private
// key is sealed in a passphrase envelope (scrypt key derivation,
// ChaCha20-Poly1305) so it never touches disk in plaintext. Writes go
// through a temp file and rename so a crash never leaves a half-written
// record.
package filestore
