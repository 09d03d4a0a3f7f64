package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedger is the durable BidLedger. Each append runs in its own database
// transaction; the unique (lot_id, seq_no) index is the optimistic backstop
// for races the per-lot admission lock cannot see (a second process writing
// the same lot), surfacing them as ErrConcurrencyConflict for retry.
type GormLedger struct {
	db *gorm.DB
}

// NewGormLedger wraps an open gorm handle
func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// Migrate creates the bids table and its unique sequence index.
func (l *GormLedger) Migrate() error {
	return l.db.AutoMigrate(&model.Bid{})
}

func (l *GormLedger) Append(lotID, bidderID string, amount decimal.Decimal) (model.Bid, error) {
	bid := model.Bid{
		BidID:     utils.GenerateID(),
		LotID:     lotID,
		BidderID:  bidderID,
		Amount:    amount,
		SeqNo:     1,
		CreatedAt: time.Now().UTC(),
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		var last model.Bid
		err := tx.Where("lot_id = ?", lotID).Order("seq_no DESC").First(&last).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first bid, seq stays 1
		case err != nil:
			return err
		default:
			if amount.LessThanOrEqual(last.Amount) {
				return fmt.Errorf("amount %s not above tail %s: %w",
					amount, last.Amount, auctionerrors.ErrConcurrencyConflict)
			}
			bid.SeqNo = last.SeqNo + 1
		}
		return tx.Create(&bid).Error
	})
	if err != nil {
		if errorsLikeUnique(err) {
			err = fmt.Errorf("sequence taken: %w", auctionerrors.ErrConcurrencyConflict)
		}
		return model.Bid{}, fmt.Errorf("append bid for lot %s: %w", lotID, err)
	}
	return bid, nil
}

func (l *GormLedger) Latest(lotID string) (model.Bid, error) {
	var bid model.Bid
	err := l.db.Where("lot_id = ?", lotID).Order("seq_no DESC").First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bid{}, fmt.Errorf("latest bid for lot %s: %w", lotID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("latest bid for lot %s: %w", lotID, err)
	}
	return bid, nil
}

func (l *GormLedger) History(lotID string, offset, limit int) ([]model.Bid, error) {
	if offset < 0 {
		offset = 0
	}
	q := l.db.Where("lot_id = ?", lotID).Order("seq_no ASC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	var bids []model.Bid
	if err := q.Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("history for lot %s: %w", lotID, err)
	}
	return bids, nil
}

func (l *GormLedger) Replay(lotID string) (ReplayResult, error) {
	var bids []model.Bid
	err := l.db.Where("lot_id = ?", lotID).Order("seq_no ASC").Find(&bids).Error
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay for lot %s: %w", lotID, err)
	}
	return replay(bids)
}

// errorsLikeUnique detects a unique-index violation across sqlite wordings.
func errorsLikeUnique(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE") || strings.Contains(s, "unique")
}
