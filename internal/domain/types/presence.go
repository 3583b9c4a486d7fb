package types

import "time"

// PresenceRecord is the last-known online/typing status for a user.
// It is peripheral to the cryptographic core and consumed only for display.
type PresenceRecord struct {
	UserID   UserID    `json:"user_id"`
	Online   bool      `json:"online"`
	Typing   bool      `json:"typing"`
	LastSeen time.Time `json:"last_seen"`
}
