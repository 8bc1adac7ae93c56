package order

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handle is a shared, non-owning reference to an order's State. Handle is a
// small value type: copies share the same underlying state and mutex, so it
// is cheap to clone and safe to hand to concurrent goroutines, matching
// spec.md §4.1 ("cheaply clonable and safe to share"). No method on Handle
// ever blocks on network I/O.
type Handle struct {
	mu    *sync.Mutex
	state *State
}

// NewHandle allocates a fresh State for clientOrderID and returns a Handle
// to it. Real order placement code would call this; the coordinator never
// creates orders itself (spec.md §3 "Lifecycle").
func NewHandle(clientOrderID uuid.UUID) Handle {
	return Handle{
		mu: &sync.Mutex{},
		state: &State{
			ClientOrderID: clientOrderID,
			Status:        StatusCreating,
		},
	}
}

// Mutate is the Go shape of spec.md's fn_mut: it runs f under the handle's
// own lock and returns f's result. It is a free function, not a method,
// because Go methods cannot carry their own type parameters.
func Mutate[T any](h Handle, f func(*State) T) T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return f(h.state)
}

// ClientOrderID returns the order's locally generated identifier.
func (h Handle) ClientOrderID() uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.ClientOrderID
}

// ExchangeOrderID returns the venue-assigned identifier, if one has been
// acknowledged yet.
func (h Handle) ExchangeOrderID() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.ExchangeOrderID == nil {
		return "", false
	}
	return *h.state.ExchangeOrderID, true
}

// Status returns the current lifecycle status.
func (h Handle) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Status
}

// IsFinished reports whether Status is terminal.
func (h Handle) IsFinished() bool {
	return h.Status().IsFinished()
}

// Fills returns a copy of the fills slice and the total filled amount.
func (h Handle) Fills() ([]Fill, decimal.Decimal) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fills := make([]Fill, len(h.state.Fills))
	copy(fills, h.state.Fills)
	return fills, h.state.FilledAmount()
}

// InternalProps returns a copy of the coordinator's reconciliation state.
func (h Handle) InternalProps() InternalProps {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Internal
}
