// Package exchange declares the boundary the coordinator calls across: the
// adapter-facing request/response shapes a venue integration must produce.
// It depends only on package order; it never depends on the coordinator.
package exchange

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptoflashboy/mmb/order"
)

// CancelOutcome classifies the result of a cancel request.
type CancelOutcome int

const (
	CancelOutcomeSuccess CancelOutcome = iota
	CancelOutcomeError
)

// CancelOrderResult is the value a StartCancelOrder future resolves to. A
// nil *CancelOrderResult (with a nil error) means the venue accepted the
// request but has nothing further to report synchronously.
type CancelOrderResult struct {
	Outcome CancelOutcome
	Err     *Error // populated iff Outcome == CancelOutcomeError
}

// OrderInfo is the venue's view of an order's state, as returned by
// GetOrderInfo.
type OrderInfo struct {
	Status        order.Status
	FilledAmount  decimal.Decimal
}

// AllowedEventSourceType is the venue policy governing which confirmation
// channels a cancel may arrive through.
type AllowedEventSourceType int

const (
	AllowedAll AllowedEventSourceType = iota
	AllowedFallbackOnly
	AllowedNonFallback
)

// Features describes venue capabilities and policy relevant to the
// coordinator.
type Features struct {
	AllowedCancelEventSourceType AllowedEventSourceType
}

// Error is the adapter-facing error type. PendingTime is only meaningful
// when Type == order.ErrorTypePending.
type Error struct {
	Type        order.ErrorType
	PendingTime time.Duration
	err         error
}

// NewError wraps err (which may be nil) with a classification.
func NewError(t order.ErrorType, err error) *Error {
	return &Error{Type: t, err: err}
}

// NewPendingError constructs a PendingError carrying the venue-requested
// backoff duration.
func NewPendingError(pendingTime time.Duration, err error) *Error {
	return &Error{Type: order.ErrorTypePending, PendingTime: pendingTime, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Type.String() + ": " + e.err.Error()
	}
	return e.Type.String()
}

func (e *Error) Unwrap() error { return e.err }
