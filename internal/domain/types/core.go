package types

// UserID identifies a user in the key and message stores.
type UserID string

// String returns the string form of the user id.
func (u UserID) String() string { return string(u) }

// MessageID uniquely identifies a stored message.
type MessageID string

// String returns the string form of the message id.
func (id MessageID) String() string { return string(id) }

// ConversationID identifies the unordered pair of users in a conversation.
type ConversationID string

// String returns the string form of the conversation identifier.
func (id ConversationID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// ConversationFor returns the canonical conversation id for two users.
// The pair is ordered lexicographically so both ends compute the same id.
func ConversationFor(a, b UserID) ConversationID {
	if b < a {
		a, b = b, a
	}
	return ConversationID(string(a) + ":" + string(b))
}
