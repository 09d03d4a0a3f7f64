package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/ledger"
	"auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// EventPublisher receives lot updates for lifecycle transitions.
type EventPublisher interface {
	Publish(update models.LotUpdate)
}

// EndingSoonNotifier is triggered once a live lot enters the ending-soon
// window; the dispatcher de-duplicates repeat triggers.
type EndingSoonNotifier interface {
	NotifyEndingSoon(lot models.Lot, now time.Time)
}

// Evaluator periodically re-derives every active lot's effective state from
// its timestamps and persists the transitions it finds. It shares the per-lot
// lock table with the admission controller, so a closing sweep and a late
// bid on the same lot serialize: a bid that extends end_at inside the
// critical section is never closed over.
type Evaluator struct {
	store      repository.LotStore
	ledger     ledger.BidLedger
	pub        EventPublisher
	soon       EndingSoonNotifier
	locks      *utils.KeyedMutex
	tick       time.Duration
	soonWindow time.Duration
}

// NewEvaluator creates a lifecycle evaluator. soon may be nil when no
// dispatcher is wired.
func NewEvaluator(
	store repository.LotStore,
	bidLedger ledger.BidLedger,
	pub EventPublisher,
	soon EndingSoonNotifier,
	locks *utils.KeyedMutex,
	tick, soonWindow time.Duration,
) *Evaluator {
	return &Evaluator{
		store:      store,
		ledger:     bidLedger,
		pub:        pub,
		soon:       soon,
		locks:      locks,
		tick:       tick,
		soonWindow: soonWindow,
	}
}

// Run sweeps on every tick until ctx ends.
func (e *Evaluator) Run(ctx context.Context) {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Sweep(time.Now().UTC())
		}
	}
}

// Sweep evaluates every active lot against now. Idempotent: evaluating twice
// with the same now yields the same stored states.
func (e *Evaluator) Sweep(now time.Time) {
	lots, err := e.store.ActiveLots()
	if err != nil {
		utils.Error("lifecycle sweep: listing active lots failed", map[string]any{"error": err.Error()})
		return
	}
	for _, lot := range lots {
		e.evaluateLot(lot.LotID, now)
	}
}

// evaluateLot re-reads one lot inside its critical section and persists any
// due transition. The re-read matters: a bid committed just before the lock
// was taken may have extended end_at past now.
func (e *Evaluator) evaluateLot(lotID string, now time.Time) {
	e.locks.Lock(lotID)
	defer e.locks.Unlock(lotID)

	lot, err := e.store.GetLot(lotID)
	if err != nil {
		utils.Warn("lifecycle sweep: lot vanished", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}
	if lot.Archived {
		return
	}

	eff := EffectiveState(lot, now)
	if eff != lot.State && ValidTransition(lot.State, eff) {
		if err := e.store.ApplyState(lotID, eff); err != nil {
			utils.Error("lifecycle sweep: persisting transition failed", map[string]any{
				"lot_id": lotID, "to": string(eff), "error": err.Error(),
			})
			return
		}
		lot.State = eff
		e.pub.Publish(e.transitionUpdate(lot, now))
		utils.Info("lot transitioned", map[string]any{"lot_id": lotID, "state": string(eff)})
	}

	if eff == models.StateLive && e.soon != nil && e.soonWindow > 0 &&
		lot.EndAt.Sub(now) <= e.soonWindow {
		e.soon.NotifyEndingSoon(lot, now)
	}
}

// ForceTransition is the privileged administrative override. It is recorded
// in the log as a distinct operation and still refuses backward moves.
func (e *Evaluator) ForceTransition(lotID string, to models.LotState, now time.Time) (models.Lot, error) {
	e.locks.Lock(lotID)
	defer e.locks.Unlock(lotID)

	lot, err := e.store.GetLot(lotID)
	if err != nil {
		return models.Lot{}, fmt.Errorf("force transition: %w", err)
	}
	if lot.Archived {
		return models.Lot{}, fmt.Errorf("force transition for lot %s: %w", lotID, auctionerrors.ErrLotArchived)
	}
	from := lot.State
	if !ValidTransition(from, to) {
		return models.Lot{}, fmt.Errorf("force transition for lot %s from %s to %s: %w",
			lotID, from, to, auctionerrors.ErrInvalidTransition)
	}
	if err := e.store.ApplyState(lotID, to); err != nil {
		return models.Lot{}, fmt.Errorf("force transition: %w", err)
	}
	lot.State = to

	utils.Warn("admin force transition", map[string]any{
		"lot_id": lotID, "from": string(from), "to": string(to),
	})
	e.pub.Publish(e.transitionUpdate(lot, now))
	return lot, nil
}

// transitionUpdate builds the fan-out event for a state change, carrying the
// ledger's latest sequence so the per-subscriber monotonic guard holds.
func (e *Evaluator) transitionUpdate(lot models.Lot, now time.Time) models.LotUpdate {
	var seq uint64
	if latest, err := e.ledger.Latest(lot.LotID); err == nil {
		seq = latest.SeqNo
	} else if !errors.Is(err, auctionerrors.ErrNoBids) {
		utils.Warn("lifecycle: reading ledger tail failed", map[string]any{
			"lot_id": lot.LotID, "error": err.Error(),
		})
	}
	return models.LotUpdate{
		LotID:    lot.LotID,
		SeqNo:    seq,
		Price:    lot.CurrentPrice,
		LeaderID: lot.LeaderID,
		State:    lot.State,
		EndAt:    lot.EndAt,
		At:       now,
	}
}
