package realtime

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// MemoryBroker fans changes out to in-process subscribers.
// A subscriber that falls behind loses events rather than blocking publishers.
type MemoryBroker struct {
	mu     sync.Mutex
	subs   map[*memorySub]struct{}
	closed bool
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[*memorySub]struct{})}
}

func (b *MemoryBroker) Publish(_ context.Context, c Change) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	for s := range b.subs {
		if !s.filter.Match(c) {
			continue
		}
		select {
		case s.ch <- c:
		default:
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context, f Filter) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	s := &memorySub{
		broker: b,
		filter: f,
		ch:     make(chan Change, subscriberBuffer),
	}
	b.subs[s] = struct{}{}
	return s, nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for s := range b.subs {
		delete(b.subs, s)
		close(s.ch)
	}
	return nil
}

func (b *MemoryBroker) remove(s *memorySub) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[s]; !ok {
		return
	}
	delete(b.subs, s)
	close(s.ch)
}

type memorySub struct {
	broker *MemoryBroker
	filter Filter
	ch     chan Change
}

func (s *memorySub) Events() <-chan Change {
	return s.ch
}

// Close detaches the subscription. Channel close and removal happen under the
// broker lock, so no send can follow.
func (s *memorySub) Close() error {
	s.broker.remove(s)
	return nil
}
