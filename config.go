package mmb

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/cryptoflashboy/mmb/metrics"
)

// fallbackTimeout is the per-retry-iteration race timer. It is not part of
// config: the spec fixes it at the core level, not something deployments
// should be able to tune per venue.
const fallbackTimeout = 10 * time.Second

// config holds Coordinator configuration.
type config struct {
	// Logger receives Info/Warn/Error lines for every retry attempt and
	// reconciliation decision.
	// Default: a disabled logger (zerolog.Nop()).
	Logger zerolog.Logger

	// MetricsProvider records counters/histograms for cancel attempts,
	// fallback timeouts, and cancel latency.
	// Default: metrics.NewNoopProvider().
	MetricsProvider metrics.Provider
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Logger:          zerolog.Nop(),
		MetricsProvider: metrics.NewNoopProvider(),
	}
}

// validateConfig performs lightweight invariant checks.
func validateConfig(cfg *config) error {
	if cfg.MetricsProvider == nil {
		return errConfig("metrics provider must not be nil")
	}
	return nil
}

type configError string

func (e configError) Error() string { return "mmb: invalid config: " + string(e) }

func errConfig(msg string) error { return configError(msg) }
