// Package statistics implements the single long-running consumer of the
// order-lifecycle event stream: per-(account, pair) counters and the set of
// currently partially-filled orders. It depends only on packages events and
// metrics.
package statistics

import "github.com/shopspring/decimal"

// TradePlaceAccount is the (exchange account, currency pair) statistics
// grouping key.
type TradePlaceAccount struct {
	ExchangeAccountID string
	CurrencyPair      string
}

// TradePlaceCounters holds the per-account counters described in the
// aggregator's event-handling table. A zero value is a valid starting
// point: every field starts at zero.
type TradePlaceCounters struct {
	Opened               int64
	Canceled             int64
	PartiallyFilled      int64
	FullyFilled          int64
	SummaryFilledAmount  decimal.Decimal
	SummaryCommission    decimal.Decimal
}

// DispositionExecutorStats tracks events the aggregator could not attribute
// to any order.
type DispositionExecutorStats struct {
	SkippedEventsAmount int64
}

// Snapshot is a point-in-time, race-free copy of one account's counters.
type Snapshot struct {
	Account  TradePlaceAccount
	Counters TradePlaceCounters
}
