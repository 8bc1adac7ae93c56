package mmb

import "github.com/cryptoflashboy/mmb/order"

// hasMissedFill is has_missed_fill in spec.md §4.3: true iff the post-cancel
// fill check reported strictly more fills than the order's own ledger.
func (s *cancelSession) hasMissedFill(props order.InternalProps) bool {
	if props.FilledAmountAfterCancellation == nil {
		return false
	}

	_, filledAmount := s.handle.Fills()
	reported := *props.FilledAmountAfterCancellation

	if reported.LessThan(filledAmount) {
		s.coordinator.cfg.Logger.Error().
			Stringer("client_order_id", s.handle.ClientOrderID()).
			Str("reported", reported.String()).
			Str("ledger", filledAmount.String()).
			Msg("has_missed_fill: venue reported fewer fills than recorded, ignoring discrepancy")
		return false
	}

	return reported.GreaterThan(filledAmount)
}
