package order

import (
	"sync"

	"github.com/google/uuid"
)

// Pool is the external order pool spec.md §3 refers to: it owns Handle
// memory, keyed by ClientOrderID; a Handle obtained from Get is a borrowed,
// non-owning reference. The coordinator does not use Pool itself: it is
// handed a Handle by its caller.
//
// This is a keyed registry, not a fungible object pool: an order's identity
// matters (two goroutines working "the same order" must observe the same
// State), so Get/Put-style recycling of interchangeable objects does not
// apply here the way it does for a worker pool.
type Pool struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]Handle
}

// NewPool constructs an empty order registry.
func NewPool() *Pool {
	return &Pool{orders: make(map[uuid.UUID]Handle)}
}

// Add registers a Handle under its ClientOrderID, overwriting any previous
// entry for the same id.
func (p *Pool) Add(h Handle) {
	id := h.ClientOrderID()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders[id] = h
}

// Get returns the Handle registered for id, if any.
func (p *Pool) Get(id uuid.UUID) (Handle, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	h, ok := p.orders[id]
	return h, ok
}

// Remove drops the entry for id. Removing a missing id is a no-op.
func (p *Pool) Remove(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.orders, id)
}

// Len returns the number of tracked orders.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.orders)
}
