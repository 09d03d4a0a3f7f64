package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// LotStore defines the lot record storage interface. CurrentPrice, LeaderID
// and EndAt are a cached projection of the bid ledger: ApplyCommit is called
// only from the admission commit path, ApplyState only from the lifecycle
// evaluator and the admin force-transition.
type LotStore interface {
	CreateLot(lot model.Lot) error
	GetLot(lotID string) (model.Lot, error)
	ListLots(f LotFilter) ([]model.Lot, int64, error)
	ActiveLots() ([]model.Lot, error)
	ApplyCommit(lotID string, price decimal.Decimal, leaderID string, endAt time.Time) error
	ApplyState(lotID string, state model.LotState) error
	ArchiveLot(lotID string) error
	Watchers(lotID string) ([]string, error)
	AddWatch(rel model.WatchRelation) error
}

// LotFilter is the read-side predicate set for lot listings. Zero values
// mean "no constraint"; prices use pointers so a zero bound is expressible.
type LotFilter struct {
	State        model.LotState
	Make         string
	Model        string
	YearMin      int
	YearMax      int
	MileageMax   int
	FuelType     string
	Transmission string
	BodyType     string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	Search       string

	Page     int
	PageSize int
}

// MemoryStore is a concurrency-safe in-memory implementation of LotStore,
// used by tests and standalone runs without a database file.
type MemoryStore struct {
	mu      sync.RWMutex
	lots    map[string]model.Lot       // key: lotID
	watches map[string][]string        // key: lotID -> watcher user ids
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lots:    make(map[string]model.Lot),
		watches: make(map[string][]string),
	}
}

// CreateLot registers a lot; the catalog collaborator calls this before start_at.
func (s *MemoryStore) CreateLot(lot model.Lot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lots[lot.LotID]; ok {
		return fmt.Errorf("create lot %s: already exists", lot.LotID)
	}
	if lot.CurrentPrice.IsZero() {
		lot.CurrentPrice = lot.StartingPrice
	}
	s.lots[lot.LotID] = lot
	return nil
}

// GetLot returns a lot by id
func (s *MemoryStore) GetLot(lotID string) (model.Lot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lot, ok := s.lots[lotID]
	if !ok {
		return model.Lot{}, fmt.Errorf("get lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	return lot, nil
}

// ListLots returns lots matching the filter with the total match count,
// ordered by the state-appropriate default.
func (s *MemoryStore) ListLots(f LotFilter) ([]model.Lot, int64, error) {
	s.mu.RLock()
	matched := make([]model.Lot, 0)
	for _, lot := range s.lots {
		if matches(lot, f) {
			matched = append(matched, lot)
		}
	}
	s.mu.RUnlock()

	sortLots(matched, f.State)
	total := int64(len(matched))

	page, size := normalizePage(f.Page, f.PageSize)
	start := (page - 1) * size
	if start >= len(matched) {
		return []model.Lot{}, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// ActiveLots returns non-archived lots whose stored state has not reached
// ended; the lifecycle evaluator sweeps these.
func (s *MemoryStore) ActiveLots() ([]model.Lot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Lot, 0)
	for _, lot := range s.lots {
		if !lot.Archived && lot.State != model.StateEnded {
			out = append(out, lot)
		}
	}
	return out, nil
}

// ApplyCommit updates the cached price/leader projection and the effective
// close time. Called only inside the admission critical section.
func (s *MemoryStore) ApplyCommit(lotID string, price decimal.Decimal, leaderID string, endAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lot, ok := s.lots[lotID]
	if !ok {
		return fmt.Errorf("apply commit for lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	lot.CurrentPrice = price
	lot.LeaderID = leaderID
	lot.EndAt = endAt
	s.lots[lotID] = lot
	return nil
}

// ApplyState persists a lifecycle transition
func (s *MemoryStore) ApplyState(lotID string, state model.LotState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lot, ok := s.lots[lotID]
	if !ok {
		return fmt.Errorf("apply state for lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	lot.State = state
	s.lots[lotID] = lot
	return nil
}

// ArchiveLot marks a lot for retention. Lots with bids are never deleted.
func (s *MemoryStore) ArchiveLot(lotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lot, ok := s.lots[lotID]
	if !ok {
		return fmt.Errorf("archive lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	lot.Archived = true
	s.lots[lotID] = lot
	return nil
}

// Watchers returns the user ids watching a lot, read-only for the dispatcher.
func (s *MemoryStore) Watchers(lotID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.watches[lotID]...), nil
}

// AddWatch records a watch relation on behalf of the external collaborator.
func (s *MemoryStore) AddWatch(rel model.WatchRelation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.watches[rel.LotID] {
		if id == rel.UserID {
			return nil
		}
	}
	s.watches[rel.LotID] = append(s.watches[rel.LotID], rel.UserID)
	return nil
}

// matches applies every predicate of the filter to a single lot.
func matches(lot model.Lot, f LotFilter) bool {
	if lot.Archived {
		return false
	}
	if f.State != "" && lot.State != f.State {
		return false
	}
	v := lot.Vehicle
	if f.Make != "" && !strings.EqualFold(v.Make, f.Make) {
		return false
	}
	if f.Model != "" && !strings.EqualFold(v.Model, f.Model) {
		return false
	}
	if f.YearMin > 0 && v.Year < f.YearMin {
		return false
	}
	if f.YearMax > 0 && v.Year > f.YearMax {
		return false
	}
	if f.MileageMax > 0 && v.Mileage > f.MileageMax {
		return false
	}
	if f.FuelType != "" && !strings.EqualFold(v.FuelType, f.FuelType) {
		return false
	}
	if f.Transmission != "" && !strings.EqualFold(v.Transmission, f.Transmission) {
		return false
	}
	if f.BodyType != "" && !strings.EqualFold(v.BodyType, f.BodyType) {
		return false
	}
	if f.PriceMin != nil && lot.CurrentPrice.LessThan(*f.PriceMin) {
		return false
	}
	if f.PriceMax != nil && lot.CurrentPrice.GreaterThan(*f.PriceMax) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		hay := strings.ToLower(v.Make + " " + v.Model + " " + lot.LotNo)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

// sortLots orders results by the state-appropriate default: start time
// ascending for upcoming, close time descending for ended, close time
// ascending otherwise (soonest-closing live lots first).
func sortLots(lots []model.Lot, state model.LotState) {
	switch state {
	case model.StateUpcoming:
		sort.Slice(lots, func(i, j int) bool { return lots[i].StartAt.Before(lots[j].StartAt) })
	case model.StateEnded:
		sort.Slice(lots, func(i, j int) bool { return lots[i].EndAt.After(lots[j].EndAt) })
	default:
		sort.Slice(lots, func(i, j int) bool { return lots[i].EndAt.Before(lots[j].EndAt) })
	}
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}
