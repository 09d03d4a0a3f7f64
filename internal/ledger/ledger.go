package ledger

import (
	"fmt"
	"sync"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=ledger.go -destination=mock_ledger.go -package=ledger

// BidLedger is the append-only, per-lot ordered bid history and the sole
// owner of bid identity and sequencing. Append serializes concurrent callers
// for the same lot: each commit receives a distinct contiguous sequence
// number, and amounts are strictly increasing with sequence. An append whose
// amount does not exceed the current tail lost a race and fails with
// ErrConcurrencyConflict instead of stacking on a stale floor.
type BidLedger interface {
	Append(lotID, bidderID string, amount decimal.Decimal) (model.Bid, error)
	Latest(lotID string) (model.Bid, error)
	History(lotID string, offset, limit int) ([]model.Bid, error)
	Replay(lotID string) (ReplayResult, error)
}

// ReplayResult is the fold of a full ledger walk from sequence 1, used to
// re-derive the price projection from first principles for audit/recovery.
type ReplayResult struct {
	BidCount   int             `json:"bid_count"`
	LastSeqNo  uint64          `json:"last_seq_no"`
	MaxAmount  decimal.Decimal `json:"max_amount"`
	LastBidder string          `json:"last_bidder"`
	Contiguous bool            `json:"contiguous"`
}

// MemoryLedger is a concurrency-safe in-memory BidLedger
type MemoryLedger struct {
	mu   sync.RWMutex
	bids map[string][]model.Bid // key: lotID, ordered by SeqNo
}

// NewMemoryLedger creates a new in-memory ledger instance
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{bids: make(map[string][]model.Bid)}
}

// Append commits a bid at the tail of the lot's history
func (l *MemoryLedger) Append(lotID, bidderID string, amount decimal.Decimal) (model.Bid, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tail := l.bids[lotID]
	var seq uint64 = 1
	if n := len(tail); n > 0 {
		last := tail[n-1]
		if amount.LessThanOrEqual(last.Amount) {
			return model.Bid{}, fmt.Errorf("append bid for lot %s: amount %s not above tail %s: %w",
				lotID, amount, last.Amount, auctionerrors.ErrConcurrencyConflict)
		}
		seq = last.SeqNo + 1
	}

	bid := model.Bid{
		BidID:     utils.GenerateID(),
		LotID:     lotID,
		BidderID:  bidderID,
		Amount:    amount,
		SeqNo:     seq,
		CreatedAt: time.Now().UTC(),
	}
	l.bids[lotID] = append(tail, bid)
	return bid, nil
}

// Latest returns the highest-sequence bid for a lot
func (l *MemoryLedger) Latest(lotID string) (model.Bid, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tail := l.bids[lotID]
	if len(tail) == 0 {
		return model.Bid{}, fmt.Errorf("latest bid for lot %s: %w", lotID, auctionerrors.ErrNoBids)
	}
	return tail[len(tail)-1], nil
}

// History returns a page of the lot's bids in sequence order
func (l *MemoryLedger) History(lotID string, offset, limit int) ([]model.Bid, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tail := l.bids[lotID]
	if offset < 0 {
		offset = 0
	}
	if offset >= len(tail) {
		return []model.Bid{}, nil
	}
	end := len(tail)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]model.Bid(nil), tail[offset:end]...), nil
}

// Replay walks the full history from sequence 1 and folds the maximum amount
func (l *MemoryLedger) Replay(lotID string) (ReplayResult, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return replay(l.bids[lotID])
}

// replay folds an ordered history; shared by both implementations.
func replay(bids []model.Bid) (ReplayResult, error) {
	res := ReplayResult{Contiguous: true, MaxAmount: decimal.Zero}
	for i, b := range bids {
		if b.SeqNo != uint64(i+1) {
			res.Contiguous = false
		}
		if b.Amount.GreaterThan(res.MaxAmount) {
			res.MaxAmount = b.Amount
		}
		res.LastSeqNo = b.SeqNo
		res.LastBidder = b.BidderID
		res.BidCount++
	}
	return res, nil
}
