package feed

import (
	"context"
	"sync"

	"secureai/internal/domain"
)

// subscriber buffer; a slow consumer drops events rather than blocking
// publishers. Dropped events are recovered by the next history delta fetch.
const busBuffer = 16

// Bus is an in-process feed fanning events out per conversation.
type Bus struct {
	mu     sync.Mutex
	subs   map[domain.ConversationID]map[int]chan domain.Event
	nextID int
	closed bool
}

// NewBus returns an empty in-process feed.
func NewBus() *Bus {
	return &Bus{subs: make(map[domain.ConversationID]map[int]chan domain.Event)}
}

// Publish delivers ev to every live subscriber of its conversation.
func (b *Bus) Publish(_ context.Context, ev domain.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	for _, ch := range b.subs[ev.Conversation] {
		select {
		case ch <- ev:
		default: // drop for slow consumers
		}
	}
	return nil
}

// Subscribe registers for a conversation's events. The returned cancel
// function releases the subscription and closes the channel.
func (b *Bus) Subscribe(
	_ context.Context,
	conversation domain.ConversationID,
) (<-chan domain.Event, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan domain.Event, busBuffer)
	if b.subs[conversation] == nil {
		b.subs[conversation] = make(map[int]chan domain.Event)
	}
	id := b.nextID
	b.nextID++
	b.subs[conversation][id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[conversation][id]; ok {
			delete(b.subs[conversation], id)
			close(sub)
		}
	}
	return ch, cancel, nil
}

// Close shuts the bus down and closes every subscriber channel.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for _, subs := range b.subs {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
	}
	return nil
}

// Compile-time assertion that Bus implements domain.Feed.
var _ domain.Feed = (*Bus)(nil)
