package notifier

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"auction-engine/internal/ledger"
	"auction-engine/internal/models"
	"auction-engine/utils"
)

// Sink receives enqueued notifications for the delivery collaborator. The
// engine's responsibility ends here; display, email and push are external.
type Sink interface {
	Enqueue(n models.Notification) error
}

// WatchSource supplies the user ids watching a lot, read-only.
type WatchSource interface {
	Watchers(lotID string) ([]string, error)
}

// Dispatcher turns committed-bid and lifecycle events into per-user
// notifications: outbid for a displaced leader, won for the final leader,
// a system notice for the other participants, and ending_soon for watchers.
type Dispatcher struct {
	ledger  ledger.BidLedger
	watches WatchSource
	sink    Sink

	mu       sync.Mutex
	soonSent map[string]map[string]bool // lotID -> userID already notified
	wonSent  map[string]bool            // lotID -> won/system already dispatched
}

// NewDispatcher creates a dispatcher writing into sink.
func NewDispatcher(bidLedger ledger.BidLedger, watches WatchSource, sink Sink) *Dispatcher {
	return &Dispatcher{
		ledger:   bidLedger,
		watches:  watches,
		sink:     sink,
		soonSent: make(map[string]map[string]bool),
		wonSent:  make(map[string]bool),
	}
}

// Run consumes publisher events until ctx ends or the stream closes.
func (d *Dispatcher) Run(ctx context.Context, events <-chan models.LotUpdate) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-events:
			if !ok {
				return
			}
			d.Handle(update)
		}
	}
}

// Handle reacts to one committed event.
func (d *Dispatcher) Handle(update models.LotUpdate) {
	if update.PrevLeaderID != "" && update.PrevLeaderID != update.LeaderID {
		d.enqueue(models.Notification{
			NotificationID: utils.GenerateID(),
			UserID:         update.PrevLeaderID,
			Kind:           models.KindOutbid,
			LotID:          update.LotID,
			Payload:        payload(map[string]any{"lot_id": update.LotID, "price": update.Price}),
			CreatedAt:      update.At,
		})
	}
	if update.State == models.StateEnded {
		d.handleEnded(update)
	}
}

// handleEnded dispatches won and system notices exactly once per lot.
func (d *Dispatcher) handleEnded(update models.LotUpdate) {
	d.mu.Lock()
	if d.wonSent[update.LotID] {
		d.mu.Unlock()
		return
	}
	d.wonSent[update.LotID] = true
	delete(d.soonSent, update.LotID)
	d.mu.Unlock()

	if update.LeaderID != "" {
		d.enqueue(models.Notification{
			NotificationID: utils.GenerateID(),
			UserID:         update.LeaderID,
			Kind:           models.KindWon,
			LotID:          update.LotID,
			Payload:        payload(map[string]any{"lot_id": update.LotID, "final_price": update.Price}),
			CreatedAt:      update.At,
		})
	}

	for _, bidderID := range d.participants(update.LotID) {
		if bidderID == update.LeaderID {
			continue
		}
		d.enqueue(models.Notification{
			NotificationID: utils.GenerateID(),
			UserID:         bidderID,
			Kind:           models.KindSystem,
			LotID:          update.LotID,
			Payload:        payload(map[string]any{"lot_id": update.LotID, "message": "auction ended"}),
			CreatedAt:      update.At,
		})
	}
}

// NotifyEndingSoon notifies every watcher of the lot at most once per
// threshold crossing. The lifecycle evaluator triggers this on every sweep
// inside the window, so the de-dup map carries the guarantee.
func (d *Dispatcher) NotifyEndingSoon(lot models.Lot, now time.Time) {
	watchers, err := d.watches.Watchers(lot.LotID)
	if err != nil {
		utils.Warn("dispatcher: reading watchers failed", map[string]any{
			"lot_id": lot.LotID, "error": err.Error(),
		})
		return
	}

	for _, userID := range watchers {
		d.mu.Lock()
		if d.soonSent[lot.LotID] == nil {
			d.soonSent[lot.LotID] = make(map[string]bool)
		}
		if d.soonSent[lot.LotID][userID] {
			d.mu.Unlock()
			continue
		}
		d.soonSent[lot.LotID][userID] = true
		d.mu.Unlock()

		d.enqueue(models.Notification{
			NotificationID: utils.GenerateID(),
			UserID:         userID,
			Kind:           models.KindEndingSoon,
			LotID:          lot.LotID,
			Payload:        payload(map[string]any{"lot_id": lot.LotID, "end_at": lot.EndAt}),
			CreatedAt:      now,
		})
	}
}

// participants returns the distinct bidder ids from the lot's full history.
func (d *Dispatcher) participants(lotID string) []string {
	bids, err := d.ledger.History(lotID, 0, 0)
	if err != nil {
		utils.Warn("dispatcher: reading history failed", map[string]any{
			"lot_id": lotID, "error": err.Error(),
		})
		return nil
	}
	seen := make(map[string]bool)
	out := make([]string, 0, len(bids))
	for _, b := range bids {
		if !seen[b.BidderID] {
			seen[b.BidderID] = true
			out = append(out, b.BidderID)
		}
	}
	return out
}

func (d *Dispatcher) enqueue(n models.Notification) {
	if err := d.sink.Enqueue(n); err != nil {
		utils.Error("dispatcher: enqueue failed", map[string]any{
			"user_id": n.UserID, "kind": string(n.Kind), "error": err.Error(),
		})
	}
}

func payload(fields map[string]any) string {
	b, err := json.Marshal(fields)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// MemorySink collects notifications in memory, for tests and standalone runs.
type MemorySink struct {
	mu    sync.Mutex
	items []models.Notification
}

// NewMemorySink creates an empty sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Enqueue(n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, n)
	return nil
}

// All returns a copy of everything enqueued so far.
func (s *MemorySink) All() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.items...)
}

// ByUser returns the notifications enqueued for one user.
func (s *MemorySink) ByUser(userID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0)
	for _, n := range s.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
