package exchange

import (
	"errors"

	"github.com/cryptoflashboy/mmb/order"
)

// TypedError is implemented by *Error; it lets callers recover the
// classification of an error that has been wrapped by intermediate layers
// without type-asserting on the concrete type directly.
type TypedError interface {
	error
	Unwrap() error
	ErrorType() order.ErrorType
}

// ErrorType reports the classification carried by e.
func (e *Error) ErrorType() order.ErrorType { return e.Type }

var _ TypedError = (*Error)(nil)

// ExtractErrorType returns the order.ErrorType carried by err, unwrapping
// through any number of intermediate wrappers, if err (or something it
// wraps) is a *Error.
func ExtractErrorType(err error) (order.ErrorType, bool) {
	var te TypedError
	if errors.As(err, &te) {
		return te.ErrorType(), true
	}
	return order.ErrorTypeUnknown, false
}
