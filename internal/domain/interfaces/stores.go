package interfaces

import (
	"context"
	"time"

	domaintypes "secureai/internal/domain/types"
)

// KeyStore persists long-term key pairs, one per user id.
//
// Put must behave as a conditional insert: when a record already exists for
// the user it returns an error carrying errors.CodeConflict and leaves the
// stored record untouched, so the loser of a first-use race can re-read and
// import the winner's pair.
type KeyStore interface {
	Get(ctx context.Context, userID domaintypes.UserID) (domaintypes.KeyRecord, bool, error)
	Put(ctx context.Context, record domaintypes.KeyRecord) error
}

// MessageStore persists encrypted messages and supports ordered listing.
type MessageStore interface {
	Append(ctx context.Context, msg domaintypes.EncryptedMessage) error

	// ListBetween returns the non-deleted messages exchanged between a and b,
	// strictly after since when since is non-zero, ordered by CreatedAt
	// ascending.
	ListBetween(
		ctx context.Context,
		a, b domaintypes.UserID,
		since time.Time,
	) ([]domaintypes.EncryptedMessage, error)

	// SoftDelete hides a message for everyone. Only a participant of the
	// message may delete it; the ciphertext itself is never rewritten.
	SoftDelete(ctx context.Context, id domaintypes.MessageID, requester domaintypes.UserID) error

	// MarkEdited sets the edited metadata flag. Only the sender may set it.
	MarkEdited(ctx context.Context, id domaintypes.MessageID, requester domaintypes.UserID) error
}

// PresenceStore keeps last-known presence per user.
type PresenceStore interface {
	Set(ctx context.Context, rec domaintypes.PresenceRecord) error
	Get(ctx context.Context, userID domaintypes.UserID) (domaintypes.PresenceRecord, bool, error)
}
