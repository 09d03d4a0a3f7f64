package listing

import (
	"fmt"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"
	"auction-engine/internal/repository"
)

// Engine is the read-side query layer over the lot store projection. It
// never touches the bid ledger: it trusts the cached price/leader fields
// and accepts their small bounded staleness in exchange for not contending
// with the write path.
type Engine struct {
	store repository.LotStore
}

// NewEngine creates a listing engine over the given store.
func NewEngine(store repository.LotStore) *Engine {
	return &Engine{store: store}
}

// Page is one page of filtered lot summaries.
type Page struct {
	Lots     []models.Lot `json:"lots"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// List returns the lots matching the filter, ordered by the state-appropriate
// default (start time ascending for upcoming, close time descending for ended).
func (e *Engine) List(f repository.LotFilter) (Page, error) {
	if f.State != "" {
		switch f.State {
		case models.StateUpcoming, models.StateLive, models.StateEnded:
		default:
			return Page{}, fmt.Errorf("listing: %w - unknown state %q", auctionerrors.ErrInvalidBid, f.State)
		}
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}

	lots, total, err := e.store.ListLots(f)
	if err != nil {
		return Page{}, fmt.Errorf("listing: %w", err)
	}
	return Page{Lots: lots, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

// GetLot returns one lot with its vehicle and cached projection.
func (e *Engine) GetLot(lotID string) (models.Lot, error) {
	if lotID == "" {
		return models.Lot{}, fmt.Errorf("listing: %w - empty lot ID", auctionerrors.ErrInvalidBid)
	}
	lot, err := e.store.GetLot(lotID)
	if err != nil {
		return models.Lot{}, fmt.Errorf("listing: %w", err)
	}
	return lot, nil
}
