package mmb

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptoflashboy/mmb/events"
	"github.com/cryptoflashboy/mmb/exchange"
	"github.com/cryptoflashboy/mmb/order"
)

// Adapter is everything the coordinator needs from the surrounding exchange
// integration. It deliberately knows nothing about HTTP, WebSocket framing,
// or exchange-specific request formats; those live below this interface.
//
// Every method that performs I/O takes a context.Context and is expected to
// respect cancellation: the coordinator relies on ctx.Done() racing the
// operation, not on a side-channel abort.
type Adapter interface {
	// StartCancelOrder initiates a cancel for h. A nil *exchange.CancelOrderResult
	// with a nil error means the venue accepted the request with nothing further
	// to report synchronously; the eventual outcome arrives via AddEventOnOrderChange.
	StartCancelOrder(ctx context.Context, h order.Handle) (*exchange.CancelOrderResult, error)

	// CreateOrderCreatedTask resolves once h leaves order.StatusCreating.
	CreateOrderCreatedTask(ctx context.Context, h order.Handle) error

	// CreateOrderFinishFuture resolves once h reaches any terminal status.
	CreateOrderFinishFuture(ctx context.Context, h order.Handle) error

	// GetOrderInfo fetches the venue's current view of h.
	GetOrderInfo(ctx context.Context, h order.Handle) (exchange.OrderInfo, error)

	// HandleCancelOrderSucceeded drives the terminal transition and event
	// emission for a confirmed cancel.
	HandleCancelOrderSucceeded(h order.Handle, exchangeOrderID string, filledAmount decimal.Decimal, source order.EventSourceType)

	// HandleCancelOrderFailed drives the terminal transition and event
	// emission for a confirmed cancel failure.
	HandleCancelOrderFailed(h order.Handle, exchangeOrderID string, cause *exchange.Error, source order.EventSourceType)

	// CheckOrderFills performs a fill-reconciliation pass against the venue.
	CheckOrderFills(ctx context.Context, h order.Handle, isPostCompletion bool, preReservationGroupID *uuid.UUID) error

	// AddEventOnOrderChange publishes evtType for h to the event stream.
	AddEventOnOrderChange(h order.Handle, evtType events.Type) error

	// Features reports venue policy relevant to the coordinator.
	Features() exchange.Features
}
