package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jwalitptl/clinic-registry/pkg/messaging"
)

// ErrClosed is returned by a broker after Close.
var ErrClosed = errors.New("broker closed")

const bufferSize = 100

// Broker is an in-process fan-out broker. A subscriber whose buffer is full
// misses the message rather than blocking the publisher.
type Broker struct {
	mu     sync.Mutex
	subs   map[string]map[chan []byte]struct{}
	closed bool
	done   chan struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
		done: make(chan struct{}),
	}
}

var _ messaging.Broker = (*Broker)(nil)

func (b *Broker) Publish(_ context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	for ch := range b.subs[channel] {
		select {
		case ch <- payload:
		default:
		}
	}
	return nil
}

func (b *Broker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	ch := make(chan []byte, bufferSize)
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[chan []byte]struct{})
	}
	b.subs[channel][ch] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
			b.unsubscribe(channel, ch)
		case <-b.done:
		}
	}()

	return ch, nil
}

func (b *Broker) unsubscribe(channel string, ch chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[channel][ch]; ok {
		delete(b.subs[channel], ch)
		close(ch)
	}
}

func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	close(b.done)
	for _, chans := range b.subs {
		for ch := range chans {
			close(ch)
		}
	}
	b.subs = make(map[string]map[chan []byte]struct{})
	return nil
}
