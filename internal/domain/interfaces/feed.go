package interfaces

import (
	"context"

	domaintypes "secureai/internal/domain/types"
)

// Feed is the change-notification side of the message store: it signals
// "new message inserted for this conversation" so subscribers can fetch and
// decrypt the delta instead of reloading the whole history.
type Feed interface {
	Publish(ctx context.Context, ev domaintypes.Event) error

	// Subscribe returns a channel of events for the conversation and a
	// cancel function that releases the subscription and closes the channel.
	Subscribe(
		ctx context.Context,
		conversation domaintypes.ConversationID,
	) (<-chan domaintypes.Event, func(), error)

	Close() error
}
