package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-registry/pkg/messaging"
	"github.com/jwalitptl/clinic-registry/pkg/metrics"
)

// EventService wraps payloads in a messaging.Message and hands them to the
// broker on a single channel.
type EventService struct {
	broker  messaging.Broker
	channel string
	metrics *metrics.Metrics
	now     func() time.Time
}

var _ messaging.Publisher = (*EventService)(nil)

// NewEventService returns a publisher; m may be nil.
func NewEventService(broker messaging.Broker, channel string, m *metrics.Metrics) *EventService {
	if channel == "" {
		channel = messaging.DefaultChannel
	}
	return &EventService{
		broker:  broker,
		channel: channel,
		metrics: m,
		now:     time.Now,
	}
}

func (s *EventService) Publish(ctx context.Context, eventType string, payload interface{}) error {
	msg, err := messaging.NewMessage(eventType, payload, s.now())
	if err != nil {
		s.failed(eventType)
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := s.broker.Publish(ctx, s.channel, msg); err != nil {
		s.failed(eventType)
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	if s.metrics != nil {
		s.metrics.EventsPublished.WithLabelValues(eventType).Inc()
	}
	return nil
}

func (s *EventService) failed(eventType string) {
	if s.metrics != nil {
		s.metrics.EventsFailed.WithLabelValues(eventType).Inc()
	}
}

// Decode parses a raw broker payload back into its envelope.
func Decode(raw []byte) (*messaging.Message, error) {
	var msg messaging.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	if msg.Type == "" {
		return nil, errors.New("event without type")
	}
	return &msg, nil
}
