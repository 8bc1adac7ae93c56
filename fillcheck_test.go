package mmb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cryptoflashboy/mmb/order"
)

func newTestSession(h order.Handle) *cancelSession {
	return &cancelSession{
		coordinator: &Coordinator{cfg: config{Logger: zerolog.Nop()}},
		handle:      h,
	}
}

func TestHasMissedFill_GreaterReportedIsTrue(t *testing.T) {
	h := order.NewHandle(uuid.New())
	order.Mutate(h, func(s *order.State) struct{} {
		s.Fills = append(s.Fills, order.Fill{Amount: decimal.NewFromInt(1)})
		return struct{}{}
	})
	reported := decimal.NewFromInt(2)

	sess := newTestSession(h)
	got := sess.hasMissedFill(order.InternalProps{FilledAmountAfterCancellation: &reported})
	assert.True(t, got)
}

func TestHasMissedFill_EqualIsFalse(t *testing.T) {
	h := order.NewHandle(uuid.New())
	order.Mutate(h, func(s *order.State) struct{} {
		s.Fills = append(s.Fills, order.Fill{Amount: decimal.NewFromInt(1)})
		return struct{}{}
	})
	reported := decimal.NewFromInt(1)

	sess := newTestSession(h)
	got := sess.hasMissedFill(order.InternalProps{FilledAmountAfterCancellation: &reported})
	assert.False(t, got)
}

func TestHasMissedFill_LesserReportedLogsAndReturnsFalse(t *testing.T) {
	h := order.NewHandle(uuid.New())
	order.Mutate(h, func(s *order.State) struct{} {
		s.Fills = append(s.Fills, order.Fill{Amount: decimal.NewFromInt(5)})
		return struct{}{}
	})
	reported := decimal.NewFromInt(1)

	sess := newTestSession(h)
	got := sess.hasMissedFill(order.InternalProps{FilledAmountAfterCancellation: &reported})
	assert.False(t, got)
}

func TestHasMissedFill_NilReportedIsFalse(t *testing.T) {
	h := order.NewHandle(uuid.New())
	sess := newTestSession(h)
	assert.False(t, sess.hasMissedFill(order.InternalProps{}))
}

func errType(t order.ErrorType) *order.ErrorType { return &t }

func TestShouldCheckFills_RequestedAlwaysTrue(t *testing.T) {
	h := order.NewHandle(uuid.New())
	sess := newTestSession(h)
	sess.checkOrderFillsRequested = true
	assert.True(t, sess.shouldCheckFills(order.InternalProps{}))
}

func TestShouldCheckFills_RestFallbackSourceAlwaysTrue(t *testing.T) {
	h := order.NewHandle(uuid.New())
	sess := newTestSession(h)
	assert.True(t, sess.shouldCheckFills(order.InternalProps{CancellationEventSourceType: order.SourceRestFallback}))
}

func TestShouldCheckFills_WebSocketWithOrderCompletedError(t *testing.T) {
	h := order.NewHandle(uuid.New())
	sess := newTestSession(h)
	props := order.InternalProps{
		CancellationEventSourceType: order.SourceWebSocket,
		LastCancellationError:       errType(order.ErrorTypeOrderCompleted),
	}
	assert.True(t, sess.shouldCheckFills(props))
}

func TestShouldCheckFills_WebSocketWithUnrelatedErrorIsFalse(t *testing.T) {
	h := order.NewHandle(uuid.New())
	sess := newTestSession(h)
	props := order.InternalProps{
		CancellationEventSourceType: order.SourceWebSocket,
		LastCancellationError:       errType(order.ErrorTypePending),
	}
	assert.False(t, sess.shouldCheckFills(props))
}

func TestShouldCheckFills_PlainSuccessIsFalse(t *testing.T) {
	h := order.NewHandle(uuid.New())
	sess := newTestSession(h)
	assert.False(t, sess.shouldCheckFills(order.InternalProps{CancellationEventSourceType: order.SourceWebSocket}))
}
