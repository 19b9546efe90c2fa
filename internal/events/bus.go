// Package events is the change-notification bus: views subscribe to a
// collection signal and refetch the whole collection when it fires.
package events

import (
	"slices"
	"sync"
)

type Signal string

const (
	ProductsChanged Signal = "db-products-changed"
	OrdersChanged   Signal = "db-orders-changed"
	UsersChanged    Signal = "db-users-changed"
)

// Bus is owned by the application context and injected into repositories
// and views. Publish is synchronous and carries no payload.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[Signal]map[int]func()
}

func NewBus() *Bus { return &Bus{subs: map[Signal]map[int]func(){}} }

// Subscribe registers fn for sig and returns the function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(sig Signal, fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	if b.subs[sig] == nil {
		b.subs[sig] = map[int]func(){}
	}
	b.subs[sig][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[sig], id)
			b.mu.Unlock()
		})
	}
}

// Publish calls every current subscriber of sig in subscription order.
// Subscribers may subscribe or unsubscribe from inside the callback.
func (b *Bus) Publish(sig Signal) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs[sig]))
	for id := range b.subs[sig] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, b.subs[sig][id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Subscribers reports how many callbacks are registered for sig.
func (b *Bus) Subscribers(sig Signal) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[sig])
}
