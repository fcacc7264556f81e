package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultChannel carries every registry event.
const DefaultChannel = "clinic.events"

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Publisher defines the interface for publishing messages
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// Message is the envelope every event travels in.
type Message struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewMessage encodes payload into a fresh envelope.
func NewMessage(eventType string, payload interface{}, now time.Time) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: now.UTC(),
		Payload:    raw,
	}, nil
}

type MessageBroker interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string, handler func([]byte) error) error
	Close() error
}
