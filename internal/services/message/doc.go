// Package message turns plaintext into authenticated, confidential stored
// records and back, under the shared key of the conversation pair.
//
// High-level flow:
//   - Send: get-or-derive the shared key (manufacturing identities as a side
//     effect), AES-256-GCM encrypt with a fresh IV, compute the plaintext
//     MAC, append to the message store, publish a feed event.
//   - History: list the pair's messages in created-at order and decrypt each
//     one; a record that fails decryption or MAC verification is reported
//     individually and never aborts the transcript load.
package message
