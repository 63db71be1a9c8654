package store

import (
	"sync"
	"sync/atomic"

	"vyvoxa/internal/logging"
	"vyvoxa/internal/observability"
)

// Subscriber is an observer callback. It receives a deep-copied snapshot
// and must not call back into a mutating Store method; such publishes are
// dropped by the reentrancy guard.
type Subscriber func(*Snapshot)

type subscription struct {
	fn      Subscriber
	removed bool
}

// Bus delivers snapshots to subscribers synchronously, in registration
// order, after each successful mutation.
type Bus struct {
	mu         sync.Mutex
	subs       []*subscription
	publishing atomic.Int32
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns an idempotent unsubscribe function.
func (b *Bus) Subscribe(fn Subscriber) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub.removed {
			return
		}
		sub.removed = true
		for i, candidate := range b.subs {
			if candidate == sub {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				break
			}
		}
	}
}

// Publish invokes every current subscriber with snap. A publish issued
// from inside a subscriber callback is dropped to stop notify loops.
func (b *Bus) Publish(snap *Snapshot) {
	if !b.publishing.CompareAndSwap(0, 1) {
		observability.BusDroppedPublishes.Inc()
		logging.Logger.Warn("dropped re-entrant bus publish")
		return
	}
	defer b.publishing.Store(0)

	b.mu.Lock()
	current := make([]*subscription, len(b.subs))
	copy(current, b.subs)
	b.mu.Unlock()

	for _, sub := range current {
		sub.fn(snap)
		observability.BusFanouts.Inc()
	}
}
