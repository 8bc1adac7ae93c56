// Package exchangefake is a scriptable, in-memory exchange adapter used only
// by tests to drive the coordinator and statistics aggregator end to end. It
// is never imported by non-test code.
package exchangefake

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptoflashboy/mmb"
	"github.com/cryptoflashboy/mmb/events"
	"github.com/cryptoflashboy/mmb/exchange"
	"github.com/cryptoflashboy/mmb/order"
)

// Adapter is a minimal, script-driven mmb.Adapter: each hook's behavior is a
// user-supplied function, defaulting to an innocuous no-op/success so tests
// only need to override what they care about. The one exception is
// CreateOrderFinishFuture, whose default does not watch the order: it blocks
// until ctx is done and returns ctx.Err().
type Adapter struct {
	mu sync.Mutex

	bus *events.Bus

	ExchangeAccountID string
	CurrencyPair      string
	FeaturesValue     exchange.Features

	StartCancelOrderFunc        func(ctx context.Context, h order.Handle) (*exchange.CancelOrderResult, error)
	CreateOrderCreatedTaskFunc  func(ctx context.Context, h order.Handle) error
	CreateOrderFinishFutureFunc func(ctx context.Context, h order.Handle) error
	GetOrderInfoFunc            func(ctx context.Context, h order.Handle) (exchange.OrderInfo, error)
	CheckOrderFillsFunc         func(ctx context.Context, h order.Handle, isPostCompletion bool, preReservationGroupID *uuid.UUID) error

	succeededCalls []succeededCall
	failedCalls    []failedCall
}

type succeededCall struct {
	Handle          order.Handle
	ExchangeOrderID string
	FilledAmount    decimal.Decimal
	Source          order.EventSourceType
}

type failedCall struct {
	Handle          order.Handle
	ExchangeOrderID string
	Cause           *exchange.Error
	Source          order.EventSourceType
}

// New constructs an Adapter publishing order-change events to bus.
func New(bus *events.Bus, exchangeAccountID, currencyPair string) *Adapter {
	return &Adapter{
		bus:               bus,
		ExchangeAccountID: exchangeAccountID,
		CurrencyPair:      currencyPair,
	}
}

var _ mmb.Adapter = (*Adapter)(nil)

func (a *Adapter) StartCancelOrder(ctx context.Context, h order.Handle) (*exchange.CancelOrderResult, error) {
	if a.StartCancelOrderFunc != nil {
		return a.StartCancelOrderFunc(ctx, h)
	}
	return &exchange.CancelOrderResult{Outcome: exchange.CancelOutcomeSuccess}, nil
}

func (a *Adapter) CreateOrderCreatedTask(ctx context.Context, h order.Handle) error {
	if a.CreateOrderCreatedTaskFunc != nil {
		return a.CreateOrderCreatedTaskFunc(ctx, h)
	}
	return nil
}

func (a *Adapter) CreateOrderFinishFuture(ctx context.Context, h order.Handle) error {
	if a.CreateOrderFinishFutureFunc != nil {
		return a.CreateOrderFinishFutureFunc(ctx, h)
	}
	<-ctx.Done()
	return ctx.Err()
}

func (a *Adapter) GetOrderInfo(ctx context.Context, h order.Handle) (exchange.OrderInfo, error) {
	if a.GetOrderInfoFunc != nil {
		return a.GetOrderInfoFunc(ctx, h)
	}
	_, total := h.Fills()
	return exchange.OrderInfo{Status: h.Status(), FilledAmount: total}, nil
}

func (a *Adapter) HandleCancelOrderSucceeded(h order.Handle, exchangeOrderID string, filledAmount decimal.Decimal, source order.EventSourceType) {
	a.mu.Lock()
	a.succeededCalls = append(a.succeededCalls, succeededCall{h, exchangeOrderID, filledAmount, source})
	a.mu.Unlock()

	order.Mutate(h, func(st *order.State) struct{} {
		st.Status = order.StatusCanceled
		st.Internal.CancellationEventSourceType = source
		return struct{}{}
	})
	_ = a.AddEventOnOrderChange(h, events.CancelOrderSucceeded)
}

func (a *Adapter) HandleCancelOrderFailed(h order.Handle, exchangeOrderID string, cause *exchange.Error, source order.EventSourceType) {
	a.mu.Lock()
	a.failedCalls = append(a.failedCalls, failedCall{h, exchangeOrderID, cause, source})
	a.mu.Unlock()

	order.Mutate(h, func(st *order.State) struct{} {
		st.Status = order.StatusFailed
		st.Internal.CancellationEventSourceType = source
		return struct{}{}
	})
}

func (a *Adapter) CheckOrderFills(ctx context.Context, h order.Handle, isPostCompletion bool, preReservationGroupID *uuid.UUID) error {
	if a.CheckOrderFillsFunc != nil {
		return a.CheckOrderFillsFunc(ctx, h, isPostCompletion, preReservationGroupID)
	}
	_, total := h.Fills()
	order.Mutate(h, func(st *order.State) struct{} {
		st.Internal.FilledAmountAfterCancellation = &total
		return struct{}{}
	})
	return nil
}

func (a *Adapter) AddEventOnOrderChange(h order.Handle, evtType events.Type) error {
	a.bus.Publish(events.Event{Type: evtType, Order: events.SnapshotFrom(h, a.ExchangeAccountID, a.CurrencyPair)})
	return nil
}

func (a *Adapter) Features() exchange.Features {
	return a.FeaturesValue
}

// SucceededCalls returns the number of HandleCancelOrderSucceeded invocations observed so far.
func (a *Adapter) SucceededCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.succeededCalls)
}

// FailedCalls returns the number of HandleCancelOrderFailed invocations observed so far.
func (a *Adapter) FailedCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.failedCalls)
}
