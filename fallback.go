package mmb

import (
	"time"

	"github.com/cryptoflashboy/mmb/cancellation"
	"github.com/cryptoflashboy/mmb/exchange"
	"github.com/cryptoflashboy/mmb/order"
)

// checkOrderCancellationStatus is check_order_cancellation_status in
// spec.md §4.3: the REST polling fallback used when a cancel response could
// not be interpreted.
func (s *cancelSession) checkOrderCancellationStatus(orderIsFinishedToken cancellation.Token) {
	for {
		if orderIsFinishedToken.IsCancellationRequested() || s.handle.IsFinished() {
			return
		}

		now := time.Now()
		order.Mutate(s.handle, func(st *order.State) struct{} {
			st.Internal.LastOrderCancellationStatusRequestTime = &now
			return struct{}{}
		})

		if s.handle.IsFinished() {
			return
		}

		info, err := s.coordinator.adapter.GetOrderInfo(orderIsFinishedToken.Context(), s.handle)
		if err != nil {
			if errType, ok := exchange.ExtractErrorType(err); ok && errType == order.ErrorTypeOrderNotFound {
				s.handleOrderNotFound(err)
				return
			}
			s.coordinator.cfg.Logger.Warn().Err(err).Msg("check_order_cancellation_status: poll failed, retrying")
			continue
		}

		switch info.Status {
		case order.StatusCanceled:
			exchangeOrderID, ok := s.handle.ExchangeOrderID()
			if ok {
				s.coordinator.adapter.HandleCancelOrderSucceeded(
					s.handle, exchangeOrderID, info.FilledAmount, order.SourceRestFallback,
				)
			}
			return

		case order.StatusCompleted:
			_ = s.coordinator.adapter.CheckOrderFills(orderIsFinishedToken.Context(), s.handle, false, s.preReservationGroupID)
			return

		default:
			return
		}
	}
}

// handleOrderNotFound is the OrderNotFound branch of
// check_order_cancellation_status: synthesize an error if the poll didn't
// supply one, then drive the failure hook. If no exchange order id is
// recorded, it logs an error and returns without calling the hook; no error
// is reported to the caller.
func (s *cancelSession) handleOrderNotFound(pollErr error) {
	exchangeOrderID, ok := s.handle.ExchangeOrderID()
	if !ok {
		s.coordinator.cfg.Logger.Error().
			Stringer("client_order_id", s.handle.ClientOrderID()).
			Msg("check_order_cancellation_status: order not found and no exchange order id recorded")
		return
	}

	cause, ok := asExchangeError(pollErr)
	if !ok {
		cause = exchange.NewError(order.ErrorTypeOrderNotFound, pollErr)
	}

	s.coordinator.adapter.HandleCancelOrderFailed(s.handle, exchangeOrderID, cause, order.SourceRestFallback)
}

func asExchangeError(err error) (*exchange.Error, bool) {
	e, ok := err.(*exchange.Error)
	return e, ok
}
