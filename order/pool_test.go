package order_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptoflashboy/mmb/order"
)

func TestPool_AddGetRemove(t *testing.T) {
	p := order.NewPool()
	id := uuid.New()
	h := order.NewHandle(id)

	_, ok := p.Get(id)
	require.False(t, ok)

	p.Add(h)
	assert.Equal(t, 1, p.Len())

	got, ok := p.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, got.ClientOrderID())

	p.Remove(id)
	assert.Equal(t, 0, p.Len())
	_, ok = p.Get(id)
	assert.False(t, ok)
}

func TestPool_AddOverwritesPreviousEntry(t *testing.T) {
	p := order.NewPool()
	id := uuid.New()

	p.Add(order.NewHandle(id))
	replacement := order.NewHandle(id)
	order.Mutate(replacement, func(s *order.State) struct{} {
		s.Status = order.StatusCreated
		return struct{}{}
	})
	p.Add(replacement)

	assert.Equal(t, 1, p.Len())
	got, ok := p.Get(id)
	require.True(t, ok)
	assert.Equal(t, order.StatusCreated, got.Status())
}

func TestPool_RemoveMissingIsNoop(t *testing.T) {
	p := order.NewPool()
	assert.NotPanics(t, func() { p.Remove(uuid.New()) })
}
