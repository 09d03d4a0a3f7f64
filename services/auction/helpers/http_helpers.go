package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrLotNotFound):
		return http.StatusNotFound, "lot not found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid request details"
	case errors.Is(err, auctionerrors.ErrLotNotLive):
		return http.StatusConflict, "lot is not live"
	case errors.Is(err, auctionerrors.ErrIncrementTooLow):
		return http.StatusConflict, "bid amount below minimum"
	case errors.Is(err, auctionerrors.ErrSelfOutbid):
		return http.StatusConflict, "bidder already leads this lot"
	case errors.Is(err, auctionerrors.ErrBidderNotAllowed):
		return http.StatusForbidden, "bidder is not allowed to bid"
	case errors.Is(err, auctionerrors.ErrConcurrencyConflict):
		return http.StatusServiceUnavailable, "bid lost repeated races, retry"
	case errors.Is(err, auctionerrors.ErrLotArchived):
		return http.StatusConflict, "lot is archived"
	case errors.Is(err, auctionerrors.ErrInvalidTransition):
		return http.StatusConflict, "invalid lot state transition"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for lot"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RejectionKind names the typed rejection for the response body.
func RejectionKind(err error) string {
	switch {
	case errors.Is(err, auctionerrors.ErrLotNotLive):
		return "LotNotLive"
	case errors.Is(err, auctionerrors.ErrIncrementTooLow):
		return "IncrementTooLow"
	case errors.Is(err, auctionerrors.ErrSelfOutbid):
		return "SelfOutbid"
	case errors.Is(err, auctionerrors.ErrBidderNotAllowed):
		return "BidderNotAllowed"
	case errors.Is(err, auctionerrors.ErrConcurrencyConflict):
		return "TransientRetry"
	default:
		return "Invalid"
	}
}

// ParseLotFilter reads the listing predicates from query parameters.
func ParseLotFilter(c *gin.Context) (repository.LotFilter, error) {
	f := repository.LotFilter{
		State:        model.LotState(strings.TrimSpace(c.Query("state"))),
		Make:         c.Query("make"),
		Model:        c.Query("model"),
		FuelType:     c.Query("fuel_type"),
		Transmission: c.Query("transmission"),
		BodyType:     c.Query("body_type"),
		Search:       c.Query("q"),
	}

	var err error
	if f.YearMin, err = queryInt(c, "year_min"); err != nil {
		return f, err
	}
	if f.YearMax, err = queryInt(c, "year_max"); err != nil {
		return f, err
	}
	if f.MileageMax, err = queryInt(c, "mileage_max"); err != nil {
		return f, err
	}
	if f.Page, err = queryInt(c, "page"); err != nil {
		return f, err
	}
	if f.PageSize, err = queryInt(c, "page_size"); err != nil {
		return f, err
	}

	if raw := c.Query("price_min"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return f, fmt.Errorf("invalid price_min: %w", err)
		}
		f.PriceMin = &d
	}
	if raw := c.Query("price_max"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return f, fmt.Errorf("invalid price_max: %w", err)
		}
		f.PriceMax = &d
	}

	return f, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
