// Package bootstrap builds the pieces both binaries share from a loaded config.
package bootstrap

import (
	"context"
	"os"
	"time"

	"github.com/jwalitptl/clinic-registry/config"
	"github.com/jwalitptl/clinic-registry/internal/handler"
	"github.com/jwalitptl/clinic-registry/pkg/logger"
	"github.com/jwalitptl/clinic-registry/pkg/messaging"
	"github.com/jwalitptl/clinic-registry/pkg/messaging/memory"
	"github.com/jwalitptl/clinic-registry/pkg/messaging/redis"
	"github.com/jwalitptl/clinic-registry/pkg/metrics"
)

const probeTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// NewLogger builds the process logger. It writes to stderr so the
// interactive shell keeps stdout to itself.
func NewLogger(cfg config.LogConfig) *logger.Logger {
	return logger.NewLogger(&logger.Config{
		Level:  logger.ParseLevel(cfg.Level),
		Format: cfg.Format,
		Output: os.Stderr,
	})
}

// NewBroker connects to Redis when a URL is configured and falls back to an
// in-process broker otherwise. The second result reports whether the broker
// is shared with other processes.
func NewBroker(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (messaging.Broker, bool, error) {
	if cfg.Redis.URL == "" {
		log.Info("redis not configured, using in-process broker")
		return memory.NewBroker(), false, nil
	}

	broker, err := redis.NewRedisBroker(ctx, cfg.Redis.ToBrokerConfig(), log.ZL, m)
	if err != nil {
		return nil, false, err
	}
	log.Info("connected to redis", "channel", cfg.Redis.Channel)
	return broker, true, nil
}

// Probes returns the readiness checks for broker.
func Probes(broker messaging.Broker) map[string]handler.ReadinessProbe {
	probes := make(map[string]handler.ReadinessProbe)
	if p, ok := broker.(pinger); ok {
		probes["redis"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
			defer cancel()
			return p.Ping(ctx)
		}
	}
	return probes
}
