package lifecycle

import (
	"time"

	"auction-engine/internal/models"
)

// EffectiveState derives a lot's lifecycle phase from its stored timestamps
// and the given clock reading. The stored state flag is never trusted on its
// own: after a process restart the flag may be stale, while the timestamps
// always yield the correct answer. Evaluating twice with the same now yields
// the same result.
func EffectiveState(lot models.Lot, now time.Time) models.LotState {
	if now.Before(lot.StartAt) {
		return models.StateUpcoming
	}
	if now.Before(lot.EndAt) {
		return models.StateLive
	}
	return models.StateEnded
}

// CanAcceptBid reports whether a bid submitted at now may enter admission.
// Archived lots accept no further operations regardless of timestamps.
func CanAcceptBid(lot models.Lot, now time.Time) bool {
	if lot.Archived {
		return false
	}
	return EffectiveState(lot, now) == models.StateLive
}

// ValidTransition reports whether moving from one state to another follows
// the monotonic upcoming -> live -> ended order. Admin force-transitions go
// through this check too; only backward moves are refused.
func ValidTransition(from, to models.LotState) bool {
	rank := map[models.LotState]int{
		models.StateUpcoming: 0,
		models.StateLive:     1,
		models.StateEnded:    2,
	}
	rf, okF := rank[from]
	rt, okT := rank[to]
	return okF && okT && rt > rf
}
