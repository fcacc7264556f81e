package worker

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jwalitptl/clinic-registry/internal/service/event"
	"github.com/jwalitptl/clinic-registry/pkg/logger"
	"github.com/jwalitptl/clinic-registry/pkg/messaging"
	"github.com/jwalitptl/clinic-registry/pkg/metrics"
)

// EventConsumer logs and counts every registry event seen on one channel.
type EventConsumer struct {
	broker   messaging.MessageBroker
	channel  string
	logger   *logger.Logger
	metrics  *metrics.Metrics
	workerID string
}

// NewEventConsumer returns a consumer; m may be nil.
func NewEventConsumer(broker messaging.MessageBroker, channel string, log *logger.Logger, m *metrics.Metrics) *EventConsumer {
	if channel == "" {
		channel = messaging.DefaultChannel
	}
	workerID := fmt.Sprintf("worker-%s", generateWorkerID())
	return &EventConsumer{
		broker:   broker,
		channel:  channel,
		logger:   log.WithFields(map[string]interface{}{"worker_id": workerID}),
		metrics:  m,
		workerID: workerID,
	}
}

// Start subscribes and blocks until ctx is done.
func (w *EventConsumer) Start(ctx context.Context) error {
	if err := w.broker.Subscribe(ctx, w.channel, w.Handle); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", w.channel, err)
	}
	w.logger.Info("worker started", "channel", w.channel)

	<-ctx.Done()
	w.logger.Info("worker shutting down")
	return nil
}

// Handle processes one raw broker payload.
func (w *EventConsumer) Handle(raw []byte) error {
	msg, err := event.Decode(raw)
	if err != nil {
		w.count("invalid")
		return err
	}

	w.logger.Info("event received",
		"event_id", msg.ID.String(),
		"event_type", msg.Type,
		"occurred_at", msg.OccurredAt,
		"latency_ms", time.Since(msg.OccurredAt).Milliseconds(),
		"payload", string(msg.Payload),
	)
	w.count(msg.Type)
	return nil
}

func (w *EventConsumer) count(eventType string) {
	if w.metrics != nil {
		w.metrics.EventsConsumed.WithLabelValues(eventType).Inc()
	}
}

func generateWorkerID() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s-%d", hostname, time.Now().UnixNano())
}
