package mmb

import (
	"github.com/google/uuid"

	"github.com/cryptoflashboy/mmb/cancellation"
	"github.com/cryptoflashboy/mmb/events"
	"github.com/cryptoflashboy/mmb/metrics"
	"github.com/cryptoflashboy/mmb/order"
)

// Coordinator drives orders to a terminal state despite unreliable exchange
// feedback, deduplicating concurrent cancel requests for the same order.
type Coordinator struct {
	adapter Adapter
	bus     *events.Bus
	gate    *singleFlightGate
	cfg     config

	cancelAttempts   metrics.Counter
	fallbackTimeouts metrics.Counter
	cancelLatency    metrics.Histogram
}

// NewCoordinator constructs a Coordinator. adapter is the venue integration;
// bus is where terminal events are published for the statistics aggregator
// (and any other subscriber) to consume.
func NewCoordinator(adapter Adapter, bus *events.Bus, opts ...Option) *Coordinator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateConfig(&cfg); err != nil {
		panic(err)
	}

	return &Coordinator{
		adapter:          adapter,
		bus:              bus,
		gate:             newSingleFlightGate(),
		cfg:              cfg,
		cancelAttempts:   cfg.MetricsProvider.Counter(metricCancelAttemptsTotal),
		fallbackTimeouts: cfg.MetricsProvider.Counter(metricFallbackTimeoutsTotal),
		cancelLatency:    cfg.MetricsProvider.Histogram(metricCancelLatencySeconds, metrics.WithUnit("seconds")),
	}
}

// WaitCancelOrder is the subsystem's single public operation. It drives h to
// a terminal state, deduplicating concurrent callers for the same
// ClientOrderId via a process-wide single-flight gate. It returns nil
// (success) whenever the order is observed finished or token is cancelled;
// it returns an error only for policy or structural failures.
func (c *Coordinator) WaitCancelOrder(
	h order.Handle,
	preReservationGroupID *uuid.UUID,
	checkOrderFills bool,
	token cancellation.Token,
) error {
	id := h.ClientOrderID()
	ch, isLeader := c.gate.acquire(id)

	if !isLeader {
		select {
		case <-ch:
		case <-token.WhenCancelled():
		}
		return nil
	}

	defer c.gate.release(id, ch)

	sess := &cancelSession{
		coordinator:              c,
		handle:                   h,
		preReservationGroupID:    preReservationGroupID,
		checkOrderFillsRequested: checkOrderFills,
		token:                    token,
	}
	return sess.run()
}
