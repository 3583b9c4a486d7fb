// Package identity manages creation, persistence and retrieval of per-user
// key-agreement key pairs.
//
// It guarantees every user has exactly one durable P-256 pair: the first use
// generates and writes it, every later use imports the stored bytes. A lost
// first-write race is resolved by re-reading and importing the winner's
// record rather than keeping the locally generated pair.
package identity
