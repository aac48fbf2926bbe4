package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// KafkaProducer is the broker-facing half of the publisher.
type KafkaProducer interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// KafkaPublisher serializes domain events and hands them to the producer.
// The record key is the customer identifier so one customer's events land
// on one partition, in order.
type KafkaPublisher struct {
	producer KafkaProducer
}

func NewKafkaPublisher(producer KafkaProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Name, err)
	}
	return p.producer.Publish(ctx, event.Key, value)
}

// MemoryPublisher records events in process memory. Used when no broker is
// configured and by tests asserting on emitted events.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}
