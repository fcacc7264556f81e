package messaging

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

type BrokerAdapter struct {
	broker Broker
	logger zerolog.Logger
}

func NewBrokerAdapter(broker Broker, logger zerolog.Logger) MessageBroker {
	return &BrokerAdapter{broker: broker, logger: logger}
}

func (a *BrokerAdapter) Publish(ctx context.Context, topic string, payload []byte) error {
	return a.broker.Publish(ctx, topic, json.RawMessage(payload))
}

func (a *BrokerAdapter) Close() error {
	return a.broker.Close()
}

// Subscribe feeds every message on topic to handler until ctx is done or the
// broker closes the stream. Handler errors are logged and do not stop delivery.
func (a *BrokerAdapter) Subscribe(ctx context.Context, topic string, handler func([]byte) error) error {
	msgChan, err := a.broker.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgChan {
			if err := handler(msg); err != nil {
				a.logger.Warn().Err(err).Str("topic", topic).Msg("message handler failed")
			}
		}
	}()

	return nil
}
