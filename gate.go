package mmb

import (
	"sync"

	"github.com/google/uuid"
)

// singleFlightGate enforces at-most-one concurrent wait_cancel_order worker
// per ClientOrderId. Each entry is a channel that the leader closes once to
// broadcast its outcome to every follower that subscribed before the close;
// closing (rather than sending) lets an unbounded number of followers share
// one notification.
type singleFlightGate struct {
	mu      sync.Mutex
	inFlight map[uuid.UUID]chan struct{}
}

func newSingleFlightGate() *singleFlightGate {
	return &singleFlightGate{inFlight: make(map[uuid.UUID]chan struct{})}
}

// acquire attempts to become the leader for id. If it succeeds, release must
// be called exactly once, on every exit path, to remove the entry and wake
// followers. If another leader already holds id, acquire returns the
// existing channel so the caller can wait on it instead.
func (g *singleFlightGate) acquire(id uuid.UUID) (ch chan struct{}, isLeader bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.inFlight[id]; ok {
		return existing, false
	}

	ch = make(chan struct{})
	g.inFlight[id] = ch
	return ch, true
}

// release removes id's entry and closes ch, waking every follower that
// subscribed to it. Safe to call exactly once per successful acquire.
func (g *singleFlightGate) release(id uuid.UUID, ch chan struct{}) {
	g.mu.Lock()
	delete(g.inFlight, id)
	g.mu.Unlock()
	close(ch)
}
