package types

import "time"

// MessageKind tags the variant of a message. Kind-specific metadata lives in
// the matching payload struct; exactly one payload pointer is set per kind.
type MessageKind string

const (
	KindText     MessageKind = "text"
	KindFile     MessageKind = "file"
	KindVoice    MessageKind = "voice"
	KindReaction MessageKind = "reaction"
	KindSystem   MessageKind = "system"
)

// FileMeta describes an attached file. The URL points at externally stored
// content; only the message body travels through the cipher.
type FileMeta struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// VoiceMeta describes a voice note.
type VoiceMeta struct {
	URL        string `json:"url"`
	DurationMS int64  `json:"duration_ms"`
}

// ReactionMeta targets an earlier message with an emoji.
type ReactionMeta struct {
	TargetID MessageID `json:"target_id"`
	Emoji    string    `json:"emoji"`
}

// EncryptedMessage is the persisted record for one chat message.
//
// Ciphertext is immutable once written: the Edited flag is metadata only and
// never implies re-encryption. Deletion is a soft-delete timestamp.
type EncryptedMessage struct {
	ID          MessageID   `json:"id"`
	SenderID    UserID      `json:"sender_id"`
	RecipientID UserID      `json:"recipient_id"`
	Kind        MessageKind `json:"kind"`

	Ciphertext []byte `json:"ciphertext"`
	IV         []byte `json:"iv"`  // 12 bytes, fresh per message
	MAC        []byte `json:"mac"` // HMAC-SHA-256 over the plaintext

	File     *FileMeta     `json:"file,omitempty"`
	Voice    *VoiceMeta    `json:"voice,omitempty"`
	Reaction *ReactionMeta `json:"reaction,omitempty"`
	ReplyTo  *MessageID    `json:"reply_to,omitempty"`

	Edited    bool       `json:"edited"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Conversation returns the canonical conversation id for the message's pair.
func (m EncryptedMessage) Conversation() ConversationID {
	return ConversationFor(m.SenderID, m.RecipientID)
}

// DecryptedMessage is one successfully decrypted history entry.
type DecryptedMessage struct {
	ID        MessageID   `json:"id"`
	From      UserID      `json:"from"`
	To        UserID      `json:"to"`
	Kind      MessageKind `json:"kind"`
	Plaintext string      `json:"plaintext"`
	Edited    bool        `json:"edited"`
	CreatedAt time.Time   `json:"created_at"`
}

// FailedMessage reports a single history entry that could not be decrypted
// or whose MAC failed to verify. One bad record never hides the rest of the
// transcript.
type FailedMessage struct {
	ID     MessageID `json:"id"`
	From   UserID    `json:"from"`
	Reason error     `json:"-"`
}

// Transcript is the result of a history load: the decrypted messages in
// created-at order plus any records that failed, reported per message.
type Transcript struct {
	Messages []DecryptedMessage
	Failed   []FailedMessage
}
