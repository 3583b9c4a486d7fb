package errors

// Code classifies an application error so callers can decide how to react.
//
// Store codes (CodeUnavailable, CodeConflict) are generally retryable by the
// caller; cryptographic codes (CodeDecryption, CodeMACMismatch, CodeCorrupted)
// are not, since the inputs are deterministic and a failure indicates
// tampering, corruption, or a key mismatch.
type Code string

const (
	// CodeUnavailable marks a transient infrastructure failure reaching a store.
	CodeUnavailable Code = "UNAVAILABLE"

	// CodeCorrupted marks persisted key bytes that cannot be imported.
	CodeCorrupted Code = "CORRUPTED"

	// CodeNotFound marks a legitimately absent record, such as a peer who has
	// never published a public key.
	CodeNotFound Code = "NOT_FOUND"

	// CodeConflict marks a write that lost to an existing record.
	CodeConflict Code = "CONFLICT"

	// CodeDecryption marks a failed AES-GCM open: tag mismatch, corrupt
	// ciphertext or IV, or the wrong key.
	CodeDecryption Code = "DECRYPTION_FAILED"

	// CodeMACMismatch marks a plaintext MAC that failed verification.
	CodeMACMismatch Code = "MAC_MISMATCH"

	// CodeInternal marks everything else.
	CodeInternal Code = "INTERNAL"
)
