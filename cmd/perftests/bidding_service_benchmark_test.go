package perftests

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/ledger"
	"auction-engine/internal/listing"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
)

// dropPublisher discards events so benchmarks measure the admission path.
type dropPublisher struct{}

func (dropPublisher) Publish(model.LotUpdate) {}

func benchLot(lotID string, startingPrice int64) model.Lot {
	now := time.Now().UTC()
	return model.Lot{
		LotID:         lotID,
		LotNo:         lotID,
		State:         model.StateLive,
		StartAt:       now.Add(-1 * time.Hour),
		EndAt:         now.Add(24 * time.Hour),
		StartingPrice: decimal.NewFromInt(startingPrice),
		BidIncrement:  decimal.NewFromInt(1),
		CurrentPrice:  decimal.NewFromInt(startingPrice),
	}
}

func setupBenchService(numLots int) (*repository.MemoryStore, *bidding.BiddingService) {
	store := repository.NewMemoryStore()
	for i := 0; i < numLots; i++ {
		_ = store.CreateLot(benchLot(fmt.Sprintf("lot_%d", i), 100))
	}
	svc := bidding.NewBiddingService(store, ledger.NewMemoryLedger(), dropPublisher{}, nil, utils.NewKeyedMutex(), time.Minute)
	return store, svc
}

// Benchmark 1: SubmitBid - isolated lots (low contention)
func Benchmark_SubmitBid_IsolatedLots(b *testing.B) {
	_, svc := setupBenchService(b.N)
	now := time.Now().UTC()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		lotID := fmt.Sprintf("lot_%d", i)
		bidderID := fmt.Sprintf("bidder_%d", i)
		if _, err := svc.SubmitBid(lotID, bidderID, decimal.NewFromInt(110), now); err != nil {
			b.Fatalf("failed to submit bid: %v", err)
		}
	}
}

// Benchmark 2: SubmitBid - one shared lot (high contention on the per-lot
// critical section; losing bidders are expected and not counted as failures)
func Benchmark_SubmitBid_SharedLot(b *testing.B) {
	_, svc := setupBenchService(1)
	now := time.Now().UTC()

	b.ReportAllocs()
	b.ResetTimer()

	var nextAmount int64 = 100
	var accepted int64

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			amount := atomic.AddInt64(&nextAmount, 1)
			bidderID := fmt.Sprintf("bidder_%d", amount)
			if _, err := svc.SubmitBid("lot_0", bidderID, decimal.NewFromInt(amount), now); err == nil {
				atomic.AddInt64(&accepted, 1)
			}
		}
	})

	b.ReportMetric(float64(accepted)/float64(b.N), "accepted/op")
}

// Benchmark 3: GetLeadingBid - concurrent readers on a hot lot
func Benchmark_GetLeadingBid_SharedLot(b *testing.B) {
	_, svc := setupBenchService(1)
	now := time.Now().UTC()

	for j := 0; j < 100; j++ {
		bidderID := fmt.Sprintf("seed_bidder_%d", j)
		if _, err := svc.SubmitBid("lot_0", bidderID, decimal.NewFromInt(int64(110+j)), now); err != nil {
			b.Fatalf("failed to seed bid: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.GetLeadingBid("lot_0"); err != nil {
				b.Fatalf("failed to read leading bid: %v", err)
			}
		}
	})
}

// Benchmark 4: listing engine over a populated catalog
func Benchmark_ListLots_Filtered(b *testing.B) {
	store, _ := setupBenchService(0)
	makes := []string{"Toyota", "Volkswagen", "Nissan", "Ford"}
	for i := 0; i < 2000; i++ {
		lot := benchLot(fmt.Sprintf("lot_%d", i), 100)
		lot.Vehicle = model.Vehicle{
			VehicleID: fmt.Sprintf("vehicle_%d", i),
			Make:      makes[i%len(makes)],
			Model:     fmt.Sprintf("Model-%d", i%7),
			Year:      2010 + i%15,
			Mileage:   10000 + i*37%150000,
		}
		_ = store.CreateLot(lot)
	}
	engine := listing.NewEngine(store)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		page, err := engine.List(repository.LotFilter{
			State:   model.StateLive,
			Make:    makes[i%len(makes)],
			YearMin: 2015,
			Page:    1 + i%3,
		})
		if err != nil {
			b.Fatalf("failed to list lots: %v", err)
		}
		if page.Total == 0 {
			b.Fatal("expected matching lots")
		}
	}
}

// Benchmark 5: mixed workload, 70% reads against 30% writes on one lot
func Benchmark_MixedWorkload_SharedLot(b *testing.B) {
	_, svc := setupBenchService(1)
	now := time.Now().UTC()

	for j := 0; j < 50; j++ {
		bidderID := fmt.Sprintf("seed_bidder_%d", j)
		if _, err := svc.SubmitBid("lot_0", bidderID, decimal.NewFromInt(int64(110+j)), now); err != nil {
			b.Fatalf("failed to seed bid: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	var nextAmount int64 = 1000
	var op int64

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if atomic.AddInt64(&op, 1)%10 < 3 {
				amount := atomic.AddInt64(&nextAmount, 1)
				bidderID := fmt.Sprintf("bidder_%d", amount)
				_, _ = svc.SubmitBid("lot_0", bidderID, decimal.NewFromInt(amount), now)
			} else {
				_, _ = svc.GetLeadingBid("lot_0")
			}
		}
	})
}
