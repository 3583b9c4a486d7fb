// Package session derives the one symmetric key a pair of users shares.
//
// Both ends compute the identical AES-256-GCM key from their own private key
// and the peer's public key via P-256 ECDH; nothing secret is transmitted.
// Derived keys live in an injectable, mutex-guarded cache namespaced by the
// ordered (local, remote) pair so one process serving several local
// identities cannot confuse them. The cache is never invalidated
// automatically; key rotation is outside this design.
package session
