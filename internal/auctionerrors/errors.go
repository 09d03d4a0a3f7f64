package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrLotNotFound = errors.New("lot not found")
	ErrNoBids      = errors.New("no bids found for lot")
	ErrLotArchived = errors.New("lot is archived")
)

// Admission errors. These are typed rejections returned to the bidder, not
// generic failures; the handler layer attaches the current floor so clients
// can re-offer without another round trip.
var (
	ErrInvalidBid       = errors.New("invalid bid")
	ErrLotNotLive       = errors.New("lot is not live")
	ErrIncrementTooLow  = errors.New("bid amount below floor plus increment")
	ErrSelfOutbid       = errors.New("bidder already holds the leading bid")
	ErrBidderNotAllowed = errors.New("bidder is not allowed to bid")
)

// ErrConcurrencyConflict is internal: the commit lost a race against another
// bid on the same lot. The admission controller retries against the fresh
// floor; it surfaces to callers only after repeated losses.
var ErrConcurrencyConflict = errors.New("concurrent bid conflict")

// ErrInvalidTransition is returned when an admin force-transition would move
// a lot backwards through its lifecycle.
var ErrInvalidTransition = errors.New("invalid lot state transition")
