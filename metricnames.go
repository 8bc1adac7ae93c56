package mmb

// Instrument names recorded against config.MetricsProvider.
const (
	metricCancelAttemptsTotal   = "mmb_cancel_attempts_total"
	metricFallbackTimeoutsTotal = "mmb_fallback_timeouts_total"
	metricCancelLatencySeconds  = "mmb_cancel_latency_seconds"
)
