package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-registry/pkg/messaging"
	"github.com/jwalitptl/clinic-registry/pkg/messaging/memory"
	"github.com/jwalitptl/clinic-registry/pkg/metrics"
)

type failingBroker struct{ messaging.Broker }

func (failingBroker) Publish(context.Context, string, interface{}) error {
	return errors.New("broker down")
}

func TestPublishDeliversEnvelope(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker := memory.NewBroker()
	m := metrics.New(prometheus.NewRegistry(), "test")
	svc := NewEventService(broker, "", m)

	ch, err := broker.Subscribe(ctx, messaging.DefaultChannel)
	require.NoError(t, err)

	require.NoError(t, svc.Publish(ctx, PatientRegistered, map[string]string{"national_id": "12345678"}))

	select {
	case raw := <-ch:
		msg, err := Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, PatientRegistered, msg.Type)
		assert.JSONEq(t, `{"national_id":"12345678"}`, string(msg.Payload))
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EventsPublished.WithLabelValues(PatientRegistered)))
}

func TestPublishFailureIsCounted(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry(), "test")
	svc := NewEventService(failingBroker{}, "events", m)

	err := svc.Publish(context.Background(), DoctorRegistered, map[string]string{"license": "M001"})
	assert.ErrorContains(t, err, "broker down")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EventsFailed.WithLabelValues(DoctorRegistered)))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
	_, err = Decode([]byte(`{"payload":{}}`))
	assert.Error(t, err)
}
