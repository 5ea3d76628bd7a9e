package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/classpulse/api/internal/core/ports"
)

const subscriberBuffer = 64

// Bus is an in-process event bus for single-node deployments and tests.
// Delivery is best-effort: a subscriber whose buffer is full drops the
// event, relying on the snapshot refetch to self-heal, and there is no
// replay for late subscribers.
type Bus struct {
	mu     sync.Mutex
	closed bool
	topics map[string]map[int]chan ports.Event
	nextID int
}

func NewBus() *Bus {
	return &Bus{
		topics: make(map[string]map[int]chan ports.Event),
	}
}

func (b *Bus) Publish(ctx context.Context, topic, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	event := ports.Event{Topic: topic, Name: name, Payload: data}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("bus is closed")
	}
	for _, ch := range b.topics[topic] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan ports.Event, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, nil, fmt.Errorf("bus is closed")
	}

	id := b.nextID
	b.nextID++

	ch := make(chan ports.Event, subscriberBuffer)
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[int]chan ports.Event)
	}
	b.topics[topic][id] = ch

	// Closing the channel only on successful removal keeps cancel, ctx
	// cancellation and Close safe to race with each other.
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs, ok := b.topics[topic]
		if !ok {
			return
		}
		if _, ok := subs[id]; !ok {
			return
		}
		delete(subs, id)
		if len(subs) == 0 {
			delete(b.topics, topic)
		}
		close(ch)
	}

	if done := ctx.Done(); done != nil {
		go func() {
			<-done
			cancel()
		}()
	}

	return ch, cancel, nil
}

// Close detaches all subscribers and rejects further publishes.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for topic, subs := range b.topics {
		for _, ch := range subs {
			close(ch)
		}
		delete(b.topics, topic)
	}
}
