package types

import "time"

// Event signals that a new message was inserted for a conversation.
// Subscribers use it to re-decrypt the delta rather than the whole history;
// it carries no plaintext and no key material.
type Event struct {
	Conversation ConversationID `json:"conversation"`
	MessageID    MessageID      `json:"message_id"`
	SenderID     UserID         `json:"sender_id"`
	RecipientID  UserID         `json:"recipient_id"`
	CreatedAt    time.Time      `json:"created_at"`
}
