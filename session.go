package mmb

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cryptoflashboy/mmb/cancellation"
	"github.com/cryptoflashboy/mmb/events"
	"github.com/cryptoflashboy/mmb/exchange"
	"github.com/cryptoflashboy/mmb/order"
)

// cancelSession is the per-call state of the single leader executing the
// retry loop for one order. It is created fresh by each WaitCancelOrder call
// that wins the single-flight gate; followers never see one.
type cancelSession struct {
	coordinator              *Coordinator
	handle                   order.Handle
	preReservationGroupID    *uuid.UUID
	checkOrderFillsRequested bool
	token                    cancellation.Token

	attempt int
}

// run executes the inner work described for the leader: steps 1 through 7.
// It always returns nil unless a policy or structural failure occurred.
func (s *cancelSession) run() error {
	start := time.Now()
	defer func() { s.coordinator.cancelLatency.Record(time.Since(start).Seconds()) }()

	if s.handle.Status() == order.StatusCreating {
		if err := s.awaitOrderCreated(); err != nil {
			return nil // cancellation mid-wait is success, per policy
		}
	}

	if s.handle.IsFinished() {
		return nil
	}

	alreadyCanceling := order.Mutate(s.handle, func(st *order.State) bool {
		prev := st.Internal.IsCancelingFromWaitCancelOrder
		st.Internal.IsCancelingFromWaitCancelOrder = true
		return prev
	})
	if alreadyCanceling {
		s.coordinator.cfg.Logger.Info().
			Stringer("client_order_id", s.handle.ClientOrderID()).
			Msg("wait_cancel_order: already canceling from a prior invocation, returning success")
		return nil
	}

	orderIsFinishedToken := s.token.CreateLinkedToken()
	defer orderIsFinishedToken.Cancel()

	if err := s.retryLoop(orderIsFinishedToken); err != nil {
		return err
	}

	return s.finishUp()
}

func (s *cancelSession) awaitOrderCreated() error {
	return s.coordinator.adapter.CreateOrderCreatedTask(s.token.Context(), s.handle)
}

// retryLoop is spec.md §4.3 step 5: issue a cancel request, race it against
// a fallback timer (and, when policy allows it, the cancel future's
// asynchronous confirmation), handle the outcome, and stop once the order is
// finished or the caller's token is cancelled.
func (s *cancelSession) retryLoop(orderIsFinishedToken cancellation.Token) error {
	for {
		if s.token.IsCancellationRequested() {
			return nil
		}
		if s.handle.IsFinished() {
			orderIsFinishedToken.Cancel()
			return nil
		}

		s.attempt++
		logEvent := s.coordinator.cfg.Logger.Info()
		if s.attempt > 1 {
			logEvent = s.coordinator.cfg.Logger.Warn()
		}
		logEvent.
			Stringer("client_order_id", s.handle.ClientOrderID()).
			Int("attempt", s.attempt).
			Msg("wait_cancel_order: issuing cancel request")
		s.coordinator.cancelAttempts.Add(1)

		features := s.coordinator.adapter.Features()

		type cancelOutcome struct {
			res *exchange.CancelOrderResult
			err error
		}
		cancelDone := make(chan cancelOutcome, 1)
		go func() {
			res, err := runAsync(s.token.Context(), func(ctx context.Context) (*exchange.CancelOrderResult, error) {
				return s.coordinator.adapter.StartCancelOrder(ctx, s.handle)
			})
			cancelDone <- cancelOutcome{res, err}
		}()

		// Guarded arm: a FallbackOnly venue never lets the direct cancel
		// future participate in the race. A nil channel is never selected,
		// so this implements the "arm disabled by policy" requirement
		// without a separate branch in the select below.
		var cancelArm <-chan cancelOutcome
		if features.AllowedCancelEventSourceType != exchange.AllowedFallbackOnly {
			cancelArm = cancelDone
		}

		timer := time.NewTimer(fallbackTimeout)

		// (Reserved) a fallback polling future would be a fourth race arm
		// here; its trigger condition is not specified, so it is not wired
		// into this select.

		select {
		case <-s.token.WhenCancelled():
			timer.Stop()
			return nil

		case outcome := <-cancelArm:
			timer.Stop()
			if err := s.handleCancelOutcome(outcome.res, outcome.err, orderIsFinishedToken); err != nil {
				return err
			}

		case <-timer.C:
			s.coordinator.fallbackTimeouts.Add(1)
			if features.AllowedCancelEventSourceType != exchange.AllowedAll {
				return ErrFallbackTimeoutPolicyViolation
			}
			s.coordinator.cfg.Logger.Warn().
				Stringer("client_order_id", s.handle.ClientOrderID()).
				Msg("wait_cancel_order: fallback timeout, re-issuing cancel")
		}

		if s.handle.IsFinished() {
			orderIsFinishedToken.Cancel()
			return nil
		}
	}
}

// handleCancelOutcome is order_cancelled in spec.md §4.3.
func (s *cancelSession) handleCancelOutcome(res *exchange.CancelOrderResult, err error, orderIsFinishedToken cancellation.Token) error {
	if err != nil {
		s.coordinator.cfg.Logger.Warn().Err(err).Msg("wait_cancel_order: cancel request failed, will retry")
		return nil
	}
	if res == nil {
		// Accepted; the terminal transition will arrive via the event stream.
		return nil
	}
	if res.Outcome == exchange.CancelOutcomeSuccess {
		return nil
	}

	cause := res.Err
	if cause == nil {
		return nil
	}
	errType := cause.Type
	order.Mutate(s.handle, func(st *order.State) struct{} {
		st.Internal.LastCancellationError = &errType
		return struct{}{}
	})

	switch errType {
	case order.ErrorTypeParsing:
		s.checkOrderCancellationStatus(orderIsFinishedToken)

	case order.ErrorTypePending:
		select {
		case <-time.After(cause.PendingTime):
		case <-orderIsFinishedToken.WhenCancelled():
		case <-s.token.WhenCancelled():
		}

	case order.ErrorTypeOrderCompleted:
		// Await the finish future synchronously so a completed order resolves
		// here instead of re-entering the fallback timeout wait. A failed or
		// cancelled wait is not a hard failure: the loop re-checks the order.
		if err := s.coordinator.adapter.CreateOrderFinishFuture(orderIsFinishedToken.Context(), s.handle); err != nil {
			s.coordinator.cfg.Logger.Warn().Err(err).Msg("wait_cancel_order: order finish future failed")
		}

	default:
		// Fall through; the next loop iteration retries.
	}
	return nil
}

// finishUp is spec.md §4.3 steps 6 and 7, run once the retry loop exits.
func (s *cancelSession) finishUp() error {
	props := s.handle.InternalProps()
	status := s.handle.Status()

	if status != order.StatusCompleted && s.shouldCheckFills(props) {
		_ = s.coordinator.adapter.CheckOrderFills(
			s.token.Context(), s.handle, false, s.preReservationGroupID,
		)
	}

	if props.CanceledNotFromWaitCancelOrder && status != order.StatusCompleted {
		_ = s.coordinator.adapter.AddEventOnOrderChange(s.handle, events.CancelOrderSucceeded)
	}

	return nil
}

// shouldCheckFills implements spec.md §4.3 step 6's boolean exactly as
// parenthesized there: the ambiguity the spec calls out in its open
// questions is resolved by following that parenthesization literally.
func (s *cancelSession) shouldCheckFills(props order.InternalProps) bool {
	sourceIsRestFallback := props.CancellationEventSourceType == order.SourceRestFallback
	sourceIsWebSocketOrRest := props.CancellationEventSourceType == order.SourceWebSocket ||
		props.CancellationEventSourceType == order.SourceRest
	lastErrorIsNotFoundOrCompleted := props.LastCancellationError != nil &&
		(*props.LastCancellationError == order.ErrorTypeOrderNotFound ||
			*props.LastCancellationError == order.ErrorTypeOrderCompleted)

	return s.checkOrderFillsRequested ||
		s.hasMissedFill(props) ||
		sourceIsRestFallback ||
		(sourceIsWebSocketOrRest && lastErrorIsNotFoundOrCompleted)
}
