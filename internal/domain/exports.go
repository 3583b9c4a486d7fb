package domain

import (
	interfaces "secureai/internal/domain/interfaces"
	types "secureai/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	UserID           = types.UserID
	MessageID        = types.MessageID
	ConversationID   = types.ConversationID
	Fingerprint      = types.Fingerprint
	SharedKey        = types.SharedKey
	KeyPair          = types.KeyPair
	KeyRecord        = types.KeyRecord
	MessageKind      = types.MessageKind
	FileMeta         = types.FileMeta
	VoiceMeta        = types.VoiceMeta
	ReactionMeta     = types.ReactionMeta
	EncryptedMessage = types.EncryptedMessage
	DecryptedMessage = types.DecryptedMessage
	FailedMessage    = types.FailedMessage
	Transcript       = types.Transcript
	PresenceRecord   = types.PresenceRecord
	Event            = types.Event
)

// Message kind constants re-exported for compact imports.
const (
	KindText     = types.KindText
	KindFile     = types.KindFile
	KindVoice    = types.KindVoice
	KindReaction = types.KindReaction
	KindSystem   = types.KindSystem
)

// ConversationFor returns the canonical conversation id for two users.
func ConversationFor(a, b UserID) ConversationID { return types.ConversationFor(a, b) }

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityService = interfaces.IdentityService
	SessionService  = interfaces.SessionService
	MessageService  = interfaces.MessageService
	SendOptions     = interfaces.SendOptions
	KeyStore        = interfaces.KeyStore
	MessageStore    = interfaces.MessageStore
	PresenceStore   = interfaces.PresenceStore
	Feed            = interfaces.Feed
)
