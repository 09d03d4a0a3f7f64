package repository

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Helper to create a lot with a vehicle
func newLot(lotID, lotNo string, state model.LotState, v model.Vehicle) model.Lot {
	return model.Lot{
		LotID:         lotID,
		LotNo:         lotNo,
		State:         state,
		StartAt:       baseTime,
		EndAt:         baseTime.Add(time.Hour),
		StartingPrice: decimal.NewFromInt(1000),
		BidIncrement:  decimal.NewFromInt(10),
		VehicleID:     v.VehicleID,
		Vehicle:       v,
	}
}

func newVehicle(id, mk, mdl string, year, mileage int) model.Vehicle {
	return model.Vehicle{
		VehicleID:    id,
		Make:         mk,
		Model:        mdl,
		Year:         year,
		Mileage:      mileage,
		FuelType:     "petrol",
		Transmission: "manual",
		BodyType:     "sedan",
	}
}

// Test CreateLot and GetLot
func TestMemoryStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	lot := newLot("lot1", "L-0001", model.StateUpcoming, newVehicle("v1", "Toyota", "Corolla", 2018, 64000))

	require.NoError(t, store.CreateLot(lot))
	require.Error(t, store.CreateLot(lot), "duplicate lot must be refused")

	got, err := store.GetLot("lot1")
	require.NoError(t, err)
	require.Equal(t, "L-0001", got.LotNo)
	require.True(t, got.CurrentPrice.Equal(lot.StartingPrice),
		"current price defaults to the starting price when no bids exist")

	_, err = store.GetLot("missing")
	require.ErrorIs(t, err, auctionerrors.ErrLotNotFound)
}

// Test ApplyCommit updates only the projection fields
func TestMemoryStore_ApplyCommit(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	lot := newLot("lot1", "L-0001", model.StateLive, newVehicle("v1", "Toyota", "Corolla", 2018, 64000))
	require.NoError(t, store.CreateLot(lot))

	newEnd := baseTime.Add(90 * time.Minute)
	require.NoError(t, store.ApplyCommit("lot1", decimal.NewFromInt(1010), "alice", newEnd))

	got, err := store.GetLot("lot1")
	require.NoError(t, err)
	require.True(t, got.CurrentPrice.Equal(decimal.NewFromInt(1010)))
	require.Equal(t, "alice", got.LeaderID)
	require.Equal(t, newEnd, got.EndAt)
	require.Equal(t, model.StateLive, got.State, "commit must not touch state")

	require.ErrorIs(t, store.ApplyCommit("missing", decimal.NewFromInt(1), "x", newEnd), auctionerrors.ErrLotNotFound)
}

// Test ApplyState and ArchiveLot
func TestMemoryStore_ApplyStateAndArchive(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	lot := newLot("lot1", "L-0001", model.StateLive, newVehicle("v1", "Ford", "Focus", 2017, 90000))
	require.NoError(t, store.CreateLot(lot))

	require.NoError(t, store.ApplyState("lot1", model.StateEnded))
	got, err := store.GetLot("lot1")
	require.NoError(t, err)
	require.Equal(t, model.StateEnded, got.State)

	require.NoError(t, store.ArchiveLot("lot1"))
	got, err = store.GetLot("lot1")
	require.NoError(t, err)
	require.True(t, got.Archived)

	active, err := store.ActiveLots()
	require.NoError(t, err)
	require.Empty(t, active)
}

// Test ListLots filter predicates
func TestMemoryStore_ListLots_Filters(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	corolla := newLot("lot1", "L-0001", model.StateLive, newVehicle("v1", "Toyota", "Corolla", 2018, 64000))
	golf := newLot("lot2", "L-0002", model.StateLive, newVehicle("v2", "Volkswagen", "Golf", 2021, 20000))
	golf.Vehicle.FuelType = "diesel"
	golf.Vehicle.Transmission = "automatic"
	golf.Vehicle.BodyType = "hatchback"
	golf.CurrentPrice = decimal.NewFromInt(5000)
	ranger := newLot("lot3", "L-0003", model.StateUpcoming, newVehicle("v3", "Ford", "Ranger", 2016, 142000))
	ranger.Vehicle.BodyType = "pickup"

	require.NoError(t, store.CreateLot(corolla))
	require.NoError(t, store.CreateLot(golf))
	require.NoError(t, store.CreateLot(ranger))

	priceMin := decimal.NewFromInt(2000)

	tests := []struct {
		name     string
		filter   LotFilter
		wantLots []string
	}{
		{name: "no_filter", filter: LotFilter{}, wantLots: []string{"lot1", "lot2", "lot3"}},
		{name: "state_live", filter: LotFilter{State: model.StateLive}, wantLots: []string{"lot1", "lot2"}},
		{name: "state_upcoming", filter: LotFilter{State: model.StateUpcoming}, wantLots: []string{"lot3"}},
		{name: "by_make_case_insensitive", filter: LotFilter{Make: "toyota"}, wantLots: []string{"lot1"}},
		{name: "by_model", filter: LotFilter{Model: "Golf"}, wantLots: []string{"lot2"}},
		{name: "year_range", filter: LotFilter{YearMin: 2017, YearMax: 2019}, wantLots: []string{"lot1"}},
		{name: "mileage_ceiling", filter: LotFilter{MileageMax: 70000}, wantLots: []string{"lot1", "lot2"}},
		{name: "fuel_type", filter: LotFilter{FuelType: "diesel"}, wantLots: []string{"lot2"}},
		{name: "transmission", filter: LotFilter{Transmission: "automatic"}, wantLots: []string{"lot2"}},
		{name: "body_type", filter: LotFilter{BodyType: "pickup"}, wantLots: []string{"lot3"}},
		{name: "price_min", filter: LotFilter{PriceMin: &priceMin}, wantLots: []string{"lot2"}},
		{name: "free_text_model", filter: LotFilter{Search: "golf"}, wantLots: []string{"lot2"}},
		{name: "free_text_lot_no", filter: LotFilter{Search: "l-0003"}, wantLots: []string{"lot3"}},
		{name: "no_match", filter: LotFilter{Make: "Lada"}, wantLots: []string{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lots, total, err := store.ListLots(tc.filter)
			require.NoError(t, err)
			require.Equal(t, int64(len(tc.wantLots)), total)

			ids := make([]string, 0, len(lots))
			for _, l := range lots {
				ids = append(ids, l.LotID)
			}
			require.ElementsMatch(t, tc.wantLots, ids)
		})
	}
}

// Test ListLots ordering and pagination
func TestMemoryStore_ListLots_OrderingPagination(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	for i := 0; i < 5; i++ {
		lot := newLot(fmt.Sprintf("lot%d", i), fmt.Sprintf("L-%04d", i), model.StateUpcoming,
			newVehicle(fmt.Sprintf("v%d", i), "Toyota", "Corolla", 2018, 64000))
		lot.StartAt = baseTime.Add(time.Duration(5-i) * time.Hour) // reverse insertion order
		lot.EndAt = lot.StartAt.Add(time.Hour)
		require.NoError(t, store.CreateLot(lot))
	}

	// upcoming: ascending start time
	lots, total, err := store.ListLots(LotFilter{State: model.StateUpcoming})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	for i := 1; i < len(lots); i++ {
		require.False(t, lots[i].StartAt.Before(lots[i-1].StartAt))
	}

	// pagination
	page1, total, err := store.ListLots(LotFilter{State: model.StateUpcoming, Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, page1, 2)

	page3, _, err := store.ListLots(LotFilter{State: model.StateUpcoming, Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page3, 1)

	pageBeyond, _, err := store.ListLots(LotFilter{State: model.StateUpcoming, Page: 9, PageSize: 2})
	require.NoError(t, err)
	require.Empty(t, pageBeyond)

	// ended: descending end time
	for i := 0; i < 5; i++ {
		require.NoError(t, store.ApplyState(fmt.Sprintf("lot%d", i), model.StateEnded))
	}
	ended, _, err := store.ListLots(LotFilter{State: model.StateEnded})
	require.NoError(t, err)
	for i := 1; i < len(ended); i++ {
		require.False(t, ended[i].EndAt.After(ended[i-1].EndAt))
	}
}

// Test watch relations
func TestMemoryStore_Watches(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	lot := newLot("lot1", "L-0001", model.StateLive, newVehicle("v1", "Toyota", "Corolla", 2018, 64000))
	require.NoError(t, store.CreateLot(lot))

	require.NoError(t, store.AddWatch(model.WatchRelation{UserID: "alice", LotID: "lot1"}))
	require.NoError(t, store.AddWatch(model.WatchRelation{UserID: "bob", LotID: "lot1"}))
	require.NoError(t, store.AddWatch(model.WatchRelation{UserID: "alice", LotID: "lot1"}), "idempotent")

	watchers, err := store.Watchers("lot1")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"alice", "bob"}, watchers)

	none, err := store.Watchers("lot2")
	require.NoError(t, err)
	require.Empty(t, none)
}

// Concurrent projection updates and reads
func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	lot := newLot("lot1", "L-0001", model.StateLive, newVehicle("v1", "Toyota", "Corolla", 2018, 64000))
	require.NoError(t, store.CreateLot(lot))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				err := store.ApplyCommit("lot1", decimal.NewFromInt(int64(1000+i)), fmt.Sprintf("user-%d", i), baseTime.Add(time.Hour))
				require.NoError(t, err)
			} else {
				_, err := store.GetLot("lot1")
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	got, err := store.GetLot("lot1")
	require.NoError(t, err)
	require.NotEmpty(t, got.LeaderID)
}
