package stockevents

import (
	"context"
	"sync"
)

// Bus broadcasts that product stock changed somewhere. Signals carry no
// payload and are coalesced: a slow subscriber sees at most one pending
// signal no matter how many were published.
type Bus interface {
	Publish(ctx context.Context) error
	// Subscribe returns a channel that is closed once ctx is done.
	Subscribe(ctx context.Context) <-chan struct{}
}

type LocalBus struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewLocal() *LocalBus {
	return &LocalBus{subs: make(map[chan struct{}]struct{})}
}

func (b *LocalBus) Publish(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		notify(ch)
	}
	return nil
}

func (b *LocalBus) Subscribe(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
	}()
	return ch
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
