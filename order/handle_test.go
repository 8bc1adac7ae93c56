package order_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptoflashboy/mmb/order"
)

func TestHandle_CloneSharesState(t *testing.T) {
	h := order.NewHandle(uuid.New())
	clone := h // value copy

	order.Mutate(h, func(s *order.State) struct{} {
		s.Status = order.StatusCreated
		return struct{}{}
	})

	assert.Equal(t, order.StatusCreated, clone.Status(), "clone must observe mutation through shared state")
}

func TestHandle_IsFinished(t *testing.T) {
	h := order.NewHandle(uuid.New())
	require.False(t, h.IsFinished())

	order.Mutate(h, func(s *order.State) struct{} {
		s.Status = order.StatusCanceled
		return struct{}{}
	})

	assert.True(t, h.IsFinished())
}

func TestHandle_FillsAndFilledAmount(t *testing.T) {
	h := order.NewHandle(uuid.New())

	order.Mutate(h, func(s *order.State) struct{} {
		s.Fills = append(s.Fills,
			order.Fill{Amount: decimal.NewFromInt(1), Price: decimal.NewFromInt(100)},
			order.Fill{Amount: decimal.NewFromFloat(0.5), Price: decimal.NewFromInt(101)},
		)
		return struct{}{}
	})

	fills, total := h.Fills()
	require.Len(t, fills, 2)
	assert.True(t, decimal.NewFromFloat(1.5).Equal(total))
}

func TestHandle_MutateReturnsClosureResult(t *testing.T) {
	h := order.NewHandle(uuid.New())

	wasAlreadyCanceling := order.Mutate(h, func(s *order.State) bool {
		prev := s.Internal.IsCancelingFromWaitCancelOrder
		s.Internal.IsCancelingFromWaitCancelOrder = true
		return prev
	})
	assert.False(t, wasAlreadyCanceling)

	wasAlreadyCanceling = order.Mutate(h, func(s *order.State) bool {
		prev := s.Internal.IsCancelingFromWaitCancelOrder
		s.Internal.IsCancelingFromWaitCancelOrder = true
		return prev
	})
	assert.True(t, wasAlreadyCanceling)
}
