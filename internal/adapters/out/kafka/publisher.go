// Package kafka provides the Kafka-backed implementation of the event
// publisher port. Ledger-affecting state changes are fanned out to the live
// map topic after the owning transaction commits; delivery is best effort and
// failures never roll anything back.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"nexus/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
)

// Writer defines the subset of the segmentio kafka.Writer used by the
// publisher. Injecting it makes the publisher testable without a broker.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// envelope is the wire format of one published event.
type envelope struct {
	Channel    string    `json:"channel"`
	Type       string    `json:"type"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher is a thin wrapper around a kafka writer implementing
// ports.EventPublisher.
type Publisher struct {
	writer Writer
}

// NewPublisher creates a Publisher that writes to the provided broker/topic.
func NewPublisher(brokerURL, topic string) *Publisher {
	w := &skafka.Writer{
		Addr:     skafka.TCP(brokerURL),
		Topic:    topic,
		Balancer: &skafka.LeastBytes{},
	}
	return &Publisher{writer: w}
}

// NewPublisherWithWriter allows injecting a test writer.
func NewPublisherWithWriter(w Writer) *Publisher {
	return &Publisher{writer: w}
}

// Publish marshals the event to JSON and writes a kafka message keyed by the
// event type, so consumers of one type see its events in order.
func (p *Publisher) Publish(ctx context.Context, event ports.Event) error {
	b, err := json.Marshal(envelope{
		Channel:    event.Channel,
		Type:       event.Type,
		Payload:    event.Payload,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	msg := skafka.Message{Key: []byte(event.Type), Value: b}
	return p.writer.WriteMessages(ctx, msg)
}

// Close closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
