package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker(Settings{
		Name:             "test",
		Timeout:          time.Hour,
		FailureThreshold: 2,
	})
	boom := errors.New("boom")

	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.Equal(t, "closed", cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.Equal(t, "open", cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestSuccessResetsFailureRun(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "test", Timeout: time.Hour, FailureThreshold: 2})
	boom := errors.New("boom")

	_ = cb.Execute(func() error { return boom })
	assert.NoError(t, cb.Execute(func() error { return nil }))
	_ = cb.Execute(func() error { return boom })

	assert.Equal(t, "closed", cb.State())
}

func TestStateChangeCallback(t *testing.T) {
	var transitions []string
	cb := NewCircuitBreaker(Settings{
		Name:             "test",
		Timeout:          time.Hour,
		FailureThreshold: 1,
		OnStateChange: func(_, from, to string) {
			transitions = append(transitions, from+"->"+to)
		},
	})

	_ = cb.Execute(func() error { return errors.New("boom") })
	assert.Equal(t, []string{"closed->open"}, transitions)
}
