package interfaces

import (
	"context"
	"crypto/ecdh"
	"time"

	domaintypes "secureai/internal/domain/types"
)

// IdentityService guarantees every user has exactly one durable
// key-agreement key pair, generated once and retrievable across sessions.
type IdentityService interface {
	GetOrCreateKeyPair(
		ctx context.Context,
		userID domaintypes.UserID,
	) (domaintypes.KeyPair, error)

	// ExportPublicKey returns the uncompressed EC point encoding, the form
	// used for storage, sharing, and peer-side reconstruction.
	ExportPublicKey(pair domaintypes.KeyPair) []byte

	Fingerprint(
		ctx context.Context,
		userID domaintypes.UserID,
	) (domaintypes.Fingerprint, error)
}

// SessionService derives and caches the symmetric key a pair of users
// shares, without that key ever being transmitted.
type SessionService interface {
	// DeriveSharedKey is deterministic given the same key-pair inputs and
	// symmetric: (A-priv, B-pub) and (B-priv, A-pub) yield the same key.
	DeriveSharedKey(
		localPrivate *ecdh.PrivateKey,
		remotePublic *ecdh.PublicKey,
	) (domaintypes.SharedKey, error)

	// GetOrDeriveSharedKey consults the cache before deriving. A peer with
	// no published public key is reported with errors.CodeNotFound.
	GetOrDeriveSharedKey(
		ctx context.Context,
		localUserID, remoteUserID domaintypes.UserID,
	) (domaintypes.SharedKey, error)
}

// MessageService encrypts, stores, lists and decrypts messages.
type MessageService interface {
	Send(
		ctx context.Context,
		from, to domaintypes.UserID,
		kind domaintypes.MessageKind,
		plaintext string,
		opts SendOptions,
	) (domaintypes.EncryptedMessage, error)

	// History loads the transcript between a and b in created-at order.
	// Undecryptable records are reported per message in Transcript.Failed,
	// never by failing the whole load.
	History(
		ctx context.Context,
		a, b domaintypes.UserID,
		since time.Time,
	) (domaintypes.Transcript, error)

	Delete(ctx context.Context, id domaintypes.MessageID, requester domaintypes.UserID) error
	MarkEdited(ctx context.Context, id domaintypes.MessageID, requester domaintypes.UserID) error
}

// SendOptions carries kind-specific metadata for Send.
type SendOptions struct {
	File     *domaintypes.FileMeta
	Voice    *domaintypes.VoiceMeta
	Reaction *domaintypes.ReactionMeta
	ReplyTo  *domaintypes.MessageID
}
