package mmb

import "errors"

// ErrMissingExchangeOrderID describes a structural failure: an order has no
// venue-assigned id where one is needed. No coordinator path returns it: when
// the polling fallback finds an order missing on the venue and no exchange
// order id is recorded, it logs an error and WaitCancelOrder carries on.
var ErrMissingExchangeOrderID = errors.New("mmb: order has no exchange order id")

// ErrFallbackTimeoutPolicyViolation is a policy failure: the fallback timer
// fired while venue policy requires an explicit (non-timeout) confirmation
// of cancellation.
var ErrFallbackTimeoutPolicyViolation = errors.New(
	"mmb: order was expected to cancel explicitly via REST or WebSocket but got timeout instead",
)
