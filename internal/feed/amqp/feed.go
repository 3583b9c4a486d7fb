// Package amqp carries the change-notification feed over RabbitMQ, one
// durable queue per conversation.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"secureai/internal/domain"
	"secureai/pkg/logger"
)

// Feed publishes and consumes conversation events over an AMQP broker.
type Feed struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	log     *logger.Logger
}

// New dials the broker and opens a channel.
func New(url string, log *logger.Logger) (*Feed, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Feed{conn: conn, channel: ch, log: log}, nil
}

func queueName(conversation domain.ConversationID) string {
	return "chat." + string(conversation)
}

// Publish declares the conversation queue and posts the event as JSON.
func (f *Feed) Publish(ctx context.Context, ev domain.Event) error {
	name := queueName(ev.Conversation)
	if _, err := f.channel.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	err = f.channel.PublishWithContext(ctx,
		"",   // default exchange
		name, // routing key = queue
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Subscribe consumes the conversation queue into a channel of events.
// Cancelling the returned function (or the context) stops delivery.
func (f *Feed) Subscribe(
	ctx context.Context,
	conversation domain.ConversationID,
) (<-chan domain.Event, func(), error) {
	name := queueName(conversation)
	if _, err := f.channel.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return nil, nil, fmt.Errorf("declare queue: %w", err)
	}

	tag := "secureai-" + uuid.NewString()
	deliveries, err := f.channel.Consume(name, tag, true, false, false, false, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("consume queue: %w", err)
	}

	out := make(chan domain.Event)
	done := make(chan struct{})
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				var ev domain.Event
				if err := json.Unmarshal(d.Body, &ev); err != nil {
					f.log.Warnw("malformed feed event dropped", "queue", name, "err", err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}
		}
	}()

	// Stops broker delivery as well as the pump: the consumer is auto-ack,
	// so anything still delivered after cancellation would be acknowledged
	// and lost.
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			if err := f.channel.Cancel(tag, false); err != nil {
				f.log.Warnw("cancel consumer failed", "tag", tag, "err", err)
			}
			close(done)
		})
	}
	return out, cancel, nil
}

// Close shuts the channel and connection down.
func (f *Feed) Close() error {
	if err := f.channel.Close(); err != nil {
		_ = f.conn.Close()
		return err
	}
	return f.conn.Close()
}

// Compile-time assertion that Feed implements domain.Feed.
var _ domain.Feed = (*Feed)(nil)
