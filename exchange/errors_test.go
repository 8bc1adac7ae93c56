package exchange_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cryptoflashboy/mmb/exchange"
	"github.com/cryptoflashboy/mmb/order"
)

func TestExtractErrorType_DirectAndWrapped(t *testing.T) {
	base := exchange.NewError(order.ErrorTypeOrderNotFound, errors.New("404"))

	got, ok := exchange.ExtractErrorType(base)
	assert.True(t, ok)
	assert.Equal(t, order.ErrorTypeOrderNotFound, got)

	wrapped := fmt.Errorf("calling adapter: %w", base)
	got, ok = exchange.ExtractErrorType(wrapped)
	assert.True(t, ok)
	assert.Equal(t, order.ErrorTypeOrderNotFound, got)
}

func TestExtractErrorType_Absent(t *testing.T) {
	_, ok := exchange.ExtractErrorType(errors.New("plain"))
	assert.False(t, ok)
}

func TestPendingError_CarriesDuration(t *testing.T) {
	err := exchange.NewPendingError(5*time.Second, errors.New("try later"))
	assert.Equal(t, order.ErrorTypePending, err.ErrorType())
	assert.Equal(t, 5*time.Second, err.PendingTime)
}
