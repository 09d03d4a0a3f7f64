package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/listing"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/services/auction/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_services.go -package=handler

type BiddingServiceInterface interface {
	SubmitBid(lotID, bidderID string, amount decimal.Decimal, now time.Time) (bidding.Acceptance, error)
	GetBidHistory(lotID string, offset, limit int) ([]model.Bid, error)
	GetLeadingBid(lotID string) (model.Bid, error)
	Audit(lotID string) (bidding.AuditReport, error)
}

type ListingEngineInterface interface {
	List(f repository.LotFilter) (listing.Page, error)
	GetLot(lotID string) (model.Lot, error)
}

type SubscriberInterface interface {
	Subscribe(ctx context.Context, lotID string) (<-chan model.LotUpdate, func())
}

type AdminServiceInterface interface {
	ForceTransition(lotID string, to model.LotState, now time.Time) (model.Lot, error)
}

type WatchRegistrarInterface interface {
	AddWatch(rel model.WatchRelation) error
}

type AuctionHandler struct {
	bids     BiddingServiceInterface
	listings ListingEngineInterface
	sub      SubscriberInterface
	admin    AdminServiceInterface
	watches  WatchRegistrarInterface
}

func NewAuctionHandler(
	bids BiddingServiceInterface,
	listings ListingEngineInterface,
	sub SubscriberInterface,
	admin AdminServiceInterface,
	watches WatchRegistrarInterface,
) *AuctionHandler {
	return &AuctionHandler{bids: bids, listings: listings, sub: sub, admin: admin, watches: watches}
}

// SubmitBidHandler handles POST /bids
func (h *AuctionHandler) SubmitBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitBidHandler", err)
		return
	}

	acc, err := h.bids.SubmitBid(req.LotID, req.BidderID, req.Amount, time.Now().UTC())
	if err != nil {
		var rej *bidding.Rejection
		if errors.As(err, &rej) {
			status, _ := helpers.MapErrorToHTTP(err)
			utils.JSONRejection(c, status, helpers.RejectionKind(err), rej.Floor, rej.MinNext)
			utils.Info("SubmitBidHandler: bid rejected", map[string]any{
				"lot_id":    req.LotID,
				"bidder_id": req.BidderID,
				"reason":    helpers.RejectionKind(err),
				"floor":     rej.Floor.String(),
			})
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("SubmitBidHandler: failed to submit bid", map[string]any{
			"lot_id":    req.LotID,
			"bidder_id": req.BidderID,
			"error":     err.Error(),
		})
		return
	}

	resp := helpers.BidAcceptedResponse{
		BidID:    acc.Bid.BidID,
		LotID:    acc.Bid.LotID,
		SeqNo:    acc.Bid.SeqNo,
		NewPrice: acc.NewPrice,
		NewEndAt: helpers.FormatTime(acc.NewEndAt),
		Extended: acc.Extended,
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid accepted")
	helpers.LogSuccess("SubmitBidHandler", "bid accepted", map[string]any{
		"bid_id":    acc.Bid.BidID,
		"lot_id":    acc.Bid.LotID,
		"bidder_id": req.BidderID,
		"seq_no":    acc.Bid.SeqNo,
		"amount":    acc.NewPrice.String(),
	})
}

// ListLotsHandler handles GET /lots
func (h *AuctionHandler) ListLotsHandler(c *gin.Context) {
	filter, err := helpers.ParseLotFilter(c)
	if err != nil {
		helpers.HandleBindError(c, "ListLotsHandler", err)
		return
	}

	page, err := h.listings.List(filter)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListLotsHandler: listing failed", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, page, "lots retrieved successfully")
}

// GetLotHandler handles GET /lots/:lot_id
func (h *AuctionHandler) GetLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	lot, err := h.listings.GetLot(lotID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetLotHandler: error retrieving lot", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, lot, "lot retrieved successfully")
}

// GetBidHistoryHandler handles GET /lots/:lot_id/bids
func (h *AuctionHandler) GetBidHistoryHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	offset, _ := c.GetQuery("offset")
	limit, _ := c.GetQuery("limit")

	bids, err := h.bids.GetBidHistory(lotID, atoiOrZero(offset), atoiOrZero(limit))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidHistoryHandler: error retrieving bids", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidHistoryHandler", "bids retrieved successfully", map[string]any{
		"lot_id": lotID,
		"count":  len(bids),
	})
}

// GetLeadingBidHandler handles GET /lots/:lot_id/winning
func (h *AuctionHandler) GetLeadingBidHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	bid, err := h.bids.GetLeadingBid(lotID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Info("GetLeadingBidHandler: no leading bid", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	resp := helpers.BidResponse{
		BidID:     bid.BidID,
		LotID:     bid.LotID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		SeqNo:     bid.SeqNo,
		CreatedAt: helpers.FormatTime(bid.CreatedAt),
	}

	utils.JSONResponse(c, http.StatusOK, resp, "leading bid retrieved successfully")
}

// AuditLotHandler handles GET /lots/:lot_id/audit
func (h *AuctionHandler) AuditLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	report, err := h.bids.Audit(lotID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("AuditLotHandler: audit failed", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, report, "audit completed")
	helpers.LogSuccess("AuditLotHandler", "audit completed", map[string]any{
		"lot_id":     lotID,
		"consistent": report.Consistent,
	})
}

// StreamLotHandler handles GET /lots/:lot_id/stream as server-sent events.
// The subscription ends when the client disconnects; cancelling it has no
// effect on the write path.
func (h *AuctionHandler) StreamLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	lot, err := h.listings.GetLot(lotID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	updates, cancel := h.sub.Subscribe(c.Request.Context(), lotID)
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// initial snapshot, then live updates
	c.SSEvent("snapshot", gin.H{
		"lot_id": lot.LotID,
		"price":  lot.CurrentPrice,
		"leader": lot.LeaderID,
		"state":  lot.State,
		"end_at": helpers.FormatTime(lot.EndAt),
	})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		update, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent("update", gin.H{
			"lot_id": update.LotID,
			"seq_no": update.SeqNo,
			"price":  update.Price,
			"leader": update.LeaderID,
			"state":  update.State,
			"end_at": helpers.FormatTime(update.EndAt),
		})
		return true
	})
}

// WatchLotHandler handles POST /lots/:lot_id/watch on behalf of the
// watch-relation collaborator.
func (h *AuctionHandler) WatchLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	var req helpers.WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "WatchLotHandler", err)
		return
	}

	if _, err := h.listings.GetLot(lotID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	if err := h.watches.AddWatch(model.WatchRelation{UserID: req.UserID, LotID: lotID}); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, gin.H{"lot_id": lotID, "user_id": req.UserID}, "watch registered")
}

// ForceTransitionHandler handles POST /admin/lots/:lot_id/transition. The
// router guards it with the admin token middleware.
func (h *AuctionHandler) ForceTransitionHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	var req helpers.ForceTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ForceTransitionHandler", err)
		return
	}

	lot, err := h.admin.ForceTransition(lotID, model.LotState(req.To), time.Now().UTC())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ForceTransitionHandler: transition refused", map[string]any{
			"lot_id": lotID, "to": req.To, "error": err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, lot, "lot transitioned")
	helpers.LogSuccess("ForceTransitionHandler", "lot transitioned", map[string]any{
		"lot_id": lotID,
		"state":  string(lot.State),
	})
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
