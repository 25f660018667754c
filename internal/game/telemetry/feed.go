package telemetry

import (
	"sync"

	"github.com/sjzar/trophylodge/internal/game/model"
)

// Feed is an unbounded one way queue. The engine sends without ever blocking;
// the consumer drains whatever has accumulated once per update cycle. Sends
// after the consumer closed the feed are dropped.
type Feed[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	notify chan struct{}
}

func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{notify: make(chan struct{}, 1)}
}

// Send queues v and reports whether it was accepted.
func (f *Feed[T]) Send(v T) bool {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return false
	}
	f.items = append(f.items, v)
	f.mu.Unlock()

	select {
	case f.notify <- struct{}{}:
	default:
	}
	return true
}

// Drain removes and returns everything queued so far, oldest first.
func (f *Feed[T]) Drain() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.items
	f.items = nil
	return items
}

// Ready fires at least once after one or more sends.
func (f *Feed[T]) Ready() <-chan struct{} {
	return f.notify
}

func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Close is called by the consumer when it stops listening.
func (f *Feed[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.items = nil
}

// Outputs are the engine's outbound feeds.
type Outputs struct {
	Status     *Feed[string]
	Trophies   *Feed[model.Trophy]
	GrindKills *Feed[string]
	Users      *Feed[string]
}

func NewOutputs() *Outputs {
	return &Outputs{
		Status:     NewFeed[string](),
		Trophies:   NewFeed[model.Trophy](),
		GrindKills: NewFeed[string](),
		Users:      NewFeed[string](),
	}
}
