package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Registry metrics
	Registrations         *prometheus.CounterVec
	AppointmentsScheduled prometheus.Counter
	PrescriptionsIssued   prometheus.Counter
	Rejections            *prometheus.CounterVec
	RegistrySize          *prometheus.GaugeVec

	// Event metrics
	EventsPublished *prometheus.CounterVec
	EventsFailed    *prometheus.CounterVec
	EventsConsumed  *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisLatency    *prometheus.HistogramVec
}

// New creates all application metrics and registers them with reg.
// A nil reg falls back to the default registerer.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Total number of registered patients and doctors",
		}, []string{"entity"}),
		AppointmentsScheduled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_scheduled_total",
			Help:      "Total number of appointments scheduled",
		}),
		PrescriptionsIssued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prescriptions_issued_total",
			Help:      "Total number of prescriptions issued",
		}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Total number of rejected operations by error kind",
		}, []string{"operation", "kind"}),
		RegistrySize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_size",
			Help:      "Current number of entries per registry collection",
		}, []string{"collection"}),

		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of domain events published",
		}, []string{"event_type"}),
		EventsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "failed_total",
			Help:      "Total number of domain events that could not be published",
		}, []string{"event_type"}),
		EventsConsumed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "consumed_total",
			Help:      "Total number of domain events consumed by the worker",
		}, []string{"event_type"}),

		RedisOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "operations_total",
			Help:      "Total number of Redis operations",
		}, []string{"operation", "status"}),
		RedisLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "operation_duration_seconds",
			Help:      "Duration of Redis operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5},
		}, []string{"operation"}),
	}
}
