package feed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secureai/internal/domain"
	"secureai/internal/feed"
)

func TestBusPublishSubscribe(t *testing.T) {
	ctx := context.Background()
	bus := feed.NewBus()
	defer bus.Close()

	conv := domain.ConversationFor("alice", "bob")
	ch, cancel, err := bus.Subscribe(ctx, conv)
	require.NoError(t, err)
	defer cancel()

	ev := domain.Event{
		Conversation: conv,
		MessageID:    "m1",
		SenderID:     "alice",
		RecipientID:  "bob",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, bus.Publish(ctx, ev))

	select {
	case got := <-ch:
		assert.Equal(t, ev.MessageID, got.MessageID)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	// Other conversations stay silent.
	require.NoError(t, bus.Publish(ctx, domain.Event{
		Conversation: domain.ConversationFor("alice", "carol"),
		MessageID:    "m2",
	}))
	select {
	case got := <-ch:
		t.Fatalf("unexpected event %q", got.MessageID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	ctx := context.Background()
	bus := feed.NewBus()
	defer bus.Close()

	ch, cancel, err := bus.Subscribe(ctx, domain.ConversationFor("a", "b"))
	require.NoError(t, err)
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic or deliver.
	require.NoError(t, bus.Publish(ctx, domain.Event{
		Conversation: domain.ConversationFor("a", "b"),
		MessageID:    "m1",
	}))
}

func TestConversationForIsSymmetric(t *testing.T) {
	assert.Equal(t,
		domain.ConversationFor("alice", "bob"),
		domain.ConversationFor("bob", "alice"),
	)
}
