package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/classpulse/api/internal/core/ports"
	"github.com/redis/go-redis/v9"
)

// envelope is the wire format carried on a Redis channel. Redis pub/sub
// already gives per-channel FIFO and at-most-once delivery, matching the
// bus contract.
type envelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

type Bus struct {
	client *redis.Client
}

func NewBus(client *redis.Client) *Bus {
	return &Bus{client: client}
}

func (b *Bus) Publish(ctx context.Context, topic, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg, err := json.Marshal(envelope{Name: name, Payload: data})
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := b.client.Publish(ctx, topic, msg).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan ports.Event, func(), error) {
	pubsub := b.client.Subscribe(ctx, topic)

	// Receive confirms the subscription before we hand the channel out,
	// so a publish after Subscribe returns is not missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	events := make(chan ports.Event)
	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				continue
			}
			select {
			case events <- ports.Event{Topic: msg.Channel, Name: env.Name, Payload: env.Payload}:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		pubsub.Close()
	}
	return events, cancel, nil
}
