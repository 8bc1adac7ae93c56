package mmb

import (
	"github.com/rs/zerolog"

	"github.com/cryptoflashboy/mmb/metrics"
)

// Option configures a Coordinator. Use NewCoordinator(adapter, bus, opts...).
type Option func(*config)

// WithLogger sets the logger the coordinator writes retry/reconciliation
// diagnostics to.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.Logger = logger }
}

// WithMetricsProvider sets the metrics.Provider the coordinator records
// cancel-attempt, fallback-timeout, and cancel-latency instruments to.
func WithMetricsProvider(p metrics.Provider) Option {
	return func(c *config) { c.MetricsProvider = p }
}
