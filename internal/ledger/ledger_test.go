package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Test Append assigns contiguous sequence numbers with increasing amounts
func TestMemoryLedger_Append(t *testing.T) {
	t.Parallel()

	l := NewMemoryLedger()

	bid1, err := l.Append("lot1", "alice", decimal.NewFromInt(110))
	require.NoError(t, err)
	require.Equal(t, uint64(1), bid1.SeqNo)
	require.NotEmpty(t, bid1.BidID)

	bid2, err := l.Append("lot1", "bob", decimal.NewFromInt(120))
	require.NoError(t, err)
	require.Equal(t, uint64(2), bid2.SeqNo)

	// another lot sequences independently
	other, err := l.Append("lot2", "carol", decimal.NewFromInt(50))
	require.NoError(t, err)
	require.Equal(t, uint64(1), other.SeqNo)
}

// Test Append refuses amounts that do not exceed the tail
func TestMemoryLedger_Append_StaleFloor(t *testing.T) {
	t.Parallel()

	l := NewMemoryLedger()
	_, err := l.Append("lot1", "alice", decimal.NewFromInt(120))
	require.NoError(t, err)

	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{name: "equal_to_tail", amount: decimal.NewFromInt(120)},
		{name: "below_tail", amount: decimal.NewFromInt(110)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := l.Append("lot1", "bob", tc.amount)
			require.ErrorIs(t, err, auctionerrors.ErrConcurrencyConflict)
		})
	}
}

// Test Latest
func TestMemoryLedger_Latest(t *testing.T) {
	t.Parallel()

	l := NewMemoryLedger()

	_, err := l.Latest("lot1")
	require.ErrorIs(t, err, auctionerrors.ErrNoBids)

	_, err = l.Append("lot1", "alice", decimal.NewFromInt(110))
	require.NoError(t, err)
	_, err = l.Append("lot1", "bob", decimal.NewFromInt(125))
	require.NoError(t, err)

	latest, err := l.Latest("lot1")
	require.NoError(t, err)
	require.Equal(t, "bob", latest.BidderID)
	require.Equal(t, uint64(2), latest.SeqNo)
	require.True(t, latest.Amount.Equal(decimal.NewFromInt(125)))
}

// Test History pagination
func TestMemoryLedger_History(t *testing.T) {
	t.Parallel()

	l := NewMemoryLedger()
	for i := 1; i <= 10; i++ {
		_, err := l.Append("lot1", fmt.Sprintf("user-%d", i), decimal.NewFromInt(int64(100+i*10)))
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		offset    int
		limit     int
		wantLen   int
		wantFirst uint64
	}{
		{name: "full_history", offset: 0, limit: 0, wantLen: 10, wantFirst: 1},
		{name: "first_page", offset: 0, limit: 3, wantLen: 3, wantFirst: 1},
		{name: "middle_page", offset: 4, limit: 3, wantLen: 3, wantFirst: 5},
		{name: "last_partial_page", offset: 8, limit: 5, wantLen: 2, wantFirst: 9},
		{name: "offset_past_end", offset: 50, limit: 5, wantLen: 0},
		{name: "negative_offset", offset: -3, limit: 2, wantLen: 2, wantFirst: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bids, err := l.History("lot1", tc.offset, tc.limit)
			require.NoError(t, err)
			require.Len(t, bids, tc.wantLen)
			if tc.wantLen > 0 {
				require.Equal(t, tc.wantFirst, bids[0].SeqNo)
			}
		})
	}
}

// Test Replay folds the maximum amount and detects contiguity
func TestMemoryLedger_Replay(t *testing.T) {
	t.Parallel()

	l := NewMemoryLedger()

	res, err := l.Replay("empty")
	require.NoError(t, err)
	require.Equal(t, 0, res.BidCount)
	require.True(t, res.Contiguous)

	_, err = l.Append("lot1", "alice", decimal.NewFromInt(110))
	require.NoError(t, err)
	_, err = l.Append("lot1", "bob", decimal.NewFromInt(130))
	require.NoError(t, err)
	_, err = l.Append("lot1", "alice", decimal.NewFromInt(145))
	require.NoError(t, err)

	res, err = l.Replay("lot1")
	require.NoError(t, err)
	require.Equal(t, 3, res.BidCount)
	require.Equal(t, uint64(3), res.LastSeqNo)
	require.Equal(t, "alice", res.LastBidder)
	require.True(t, res.MaxAmount.Equal(decimal.NewFromInt(145)))
	require.True(t, res.Contiguous)
}

// Concurrency: racing appends serialize; winners get contiguous sequences
func TestMemoryLedger_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	l := NewMemoryLedger()
	concurrentCount := 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	var accepted []model.Bid

	for i := 0; i < concurrentCount; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			bid, err := l.Append("lot1", fmt.Sprintf("user-%d", i), decimal.NewFromInt(int64(100+i)))
			if err != nil {
				// lost the race against a higher concurrent amount
				require.True(t, errors.Is(err, auctionerrors.ErrConcurrencyConflict))
				return
			}
			mu.Lock()
			accepted = append(accepted, bid)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.NotEmpty(t, accepted)

	history, err := l.History("lot1", 0, 0)
	require.NoError(t, err)
	require.Len(t, history, len(accepted))

	for i, b := range history {
		require.Equal(t, uint64(i+1), b.SeqNo, "sequence numbers must be gap-free")
		if i > 0 {
			require.True(t, b.Amount.GreaterThan(history[i-1].Amount),
				"amounts must strictly increase with sequence")
		}
	}
}
