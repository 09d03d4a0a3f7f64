package helpers

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	LotID    string          `json:"lot_id" binding:"required"`
	BidderID string          `json:"bidder_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

type BidAcceptedResponse struct {
	BidID    string          `json:"bid_id"`
	LotID    string          `json:"lot_id"`
	SeqNo    uint64          `json:"seq_no"`
	NewPrice decimal.Decimal `json:"new_price"`
	NewEndAt string          `json:"new_end_at"`
	Extended bool            `json:"extended"`
}

type BidResponse struct {
	BidID     string          `json:"bid_id"`
	LotID     string          `json:"lot_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	SeqNo     uint64          `json:"seq_no"`
	CreatedAt string          `json:"created_at"`
}

type WatchRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type ForceTransitionRequest struct {
	To string `json:"to" binding:"required"`
}

// FormatTime renders timestamps the way every response does.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
