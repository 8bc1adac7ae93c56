// Package events defines the order-lifecycle event taxonomy the coordinator
// publishes and the broadcast bus subscribers read from. It depends only on
// package order.
package events

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptoflashboy/mmb/order"
)

// Type identifies a published event's kind. Only the four order-lifecycle
// kinds are meaningful to the statistics aggregator; Other covers every
// event the core may one day emit that the aggregator ignores.
type Type int

const (
	Other Type = iota
	CreateOrderSucceeded
	CancelOrderSucceeded
	OrderFilled
	OrderCompleted
)

func (t Type) String() string {
	switch t {
	case CreateOrderSucceeded:
		return "CreateOrderSucceeded"
	case CancelOrderSucceeded:
		return "CancelOrderSucceeded"
	case OrderFilled:
		return "OrderFilled"
	case OrderCompleted:
		return "OrderCompleted"
	default:
		return "Other"
	}
}

// OrderSnapshot is an immutable copy of an order's statistics-relevant
// fields, taken at publication time so that subscribers never race the
// order's own lock.
type OrderSnapshot struct {
	ClientOrderID      uuid.UUID
	ExchangeAccountID  string
	CurrencyPair       string
	FilledAmount       decimal.Decimal
	Fills              []order.Fill
}

// SnapshotFrom copies the statistics-relevant fields out of h under its own
// lock.
func SnapshotFrom(h order.Handle, exchangeAccountID, currencyPair string) OrderSnapshot {
	fills, total := h.Fills()
	return OrderSnapshot{
		ClientOrderID:     h.ClientOrderID(),
		ExchangeAccountID: exchangeAccountID,
		CurrencyPair:      currencyPair,
		FilledAmount:      total,
		Fills:             fills,
	}
}

// Event is one broadcast notification.
type Event struct {
	Type  Type
	Order OrderSnapshot
}
