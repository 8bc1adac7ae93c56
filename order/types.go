// Package order holds the shared, interior-mutable order record the
// coordinator drives to a terminal state, plus the registry ("pool") that
// owns its memory.
package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the order's lifecycle state. It is monotonic with respect to
// terminality: once Canceled or Completed, Status never changes again.
type Status int

const (
	StatusCreating Status = iota
	StatusCreated
	StatusCanceling
	StatusCanceled
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCreating:
		return "Creating"
	case StatusCreated:
		return "Created"
	case StatusCanceling:
		return "Canceling"
	case StatusCanceled:
		return "Canceled"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsFinished reports whether the status is terminal.
func (s Status) IsFinished() bool {
	switch s {
	case StatusCanceled, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// ErrorType classifies a venue-reported error for reconciliation purposes.
// It lives here, not in package exchange, because it is stored on
// InternalProps as reconciliation state of the order itself; package
// exchange depends on order, not the other way around.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeParsing
	ErrorTypePending
	ErrorTypeOrderCompleted
	ErrorTypeOrderNotFound
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeParsing:
		return "ParsingError"
	case ErrorTypePending:
		return "PendingError"
	case ErrorTypeOrderCompleted:
		return "OrderCompleted"
	case ErrorTypeOrderNotFound:
		return "OrderNotFound"
	default:
		return "Unknown"
	}
}

// EventSourceType identifies which confirmation channel delivered a
// cancellation.
type EventSourceType int

const (
	SourceNone EventSourceType = iota
	SourceWebSocket
	SourceRest
	SourceRestFallback
)

func (s EventSourceType) String() string {
	switch s {
	case SourceWebSocket:
		return "WebSocket"
	case SourceRest:
		return "Rest"
	case SourceRestFallback:
		return "RestFallback"
	default:
		return "None"
	}
}

// Fill is one execution against the order.
type Fill struct {
	Amount     decimal.Decimal
	Price      decimal.Decimal
	Commission decimal.Decimal
}

// InternalProps is the coordinator's reconciliation scratch space, per
// spec.md §3.
type InternalProps struct {
	IsCancelingFromWaitCancelOrder          bool
	CancellationEventSourceType             EventSourceType
	LastCancellationError                   *ErrorType
	LastOrderCancellationStatusRequestTime  *time.Time
	FilledAmountAfterCancellation           *decimal.Decimal
	CanceledNotFromWaitCancelOrder          bool
}

// State is the order record guarded by a Handle's mutex. Callers never touch
// State directly outside of Mutate/a read accessor.
type State struct {
	ClientOrderID   uuid.UUID
	ExchangeOrderID *string
	Status          Status
	Fills           []Fill
	Internal        InternalProps
}

// FilledAmount sums the Fills.
func (s *State) FilledAmount() decimal.Decimal {
	total := decimal.Zero
	for _, f := range s.Fills {
		total = total.Add(f.Amount)
	}
	return total
}
