package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStore is the durable LotStore implementation backed by gorm. The
// admission controller's per-lot critical section serializes writers, so
// projection updates here do not need row locking of their own.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm handle. Callers run AutoMigrate before use.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the lot, vehicle, watch and notification tables.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&model.Vehicle{},
		&model.Lot{},
		&model.WatchRelation{},
		&model.Notification{},
	)
}

func (s *GormStore) CreateLot(lot model.Lot) error {
	if lot.CurrentPrice.IsZero() {
		lot.CurrentPrice = lot.StartingPrice
	}
	if err := s.db.Create(&lot).Error; err != nil {
		return fmt.Errorf("create lot %s: %w", lot.LotID, err)
	}
	return nil
}

func (s *GormStore) GetLot(lotID string) (model.Lot, error) {
	var lot model.Lot
	err := s.db.Preload("Vehicle").First(&lot, "lot_id = ?", lotID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Lot{}, fmt.Errorf("get lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	if err != nil {
		return model.Lot{}, fmt.Errorf("get lot %s: %w", lotID, err)
	}
	return lot, nil
}

func (s *GormStore) ListLots(f LotFilter) ([]model.Lot, int64, error) {
	q := s.db.Model(&model.Lot{}).
		Joins("JOIN vehicles ON vehicles.vehicle_id = lots.vehicle_id").
		Where("lots.archived = ?", false)

	if f.State != "" {
		q = q.Where("lots.state = ?", f.State)
	}
	if f.Make != "" {
		q = q.Where("LOWER(vehicles.make) = LOWER(?)", f.Make)
	}
	if f.Model != "" {
		q = q.Where("LOWER(vehicles.model) = LOWER(?)", f.Model)
	}
	if f.YearMin > 0 {
		q = q.Where("vehicles.year >= ?", f.YearMin)
	}
	if f.YearMax > 0 {
		q = q.Where("vehicles.year <= ?", f.YearMax)
	}
	if f.MileageMax > 0 {
		q = q.Where("vehicles.mileage <= ?", f.MileageMax)
	}
	if f.FuelType != "" {
		q = q.Where("LOWER(vehicles.fuel_type) = LOWER(?)", f.FuelType)
	}
	if f.Transmission != "" {
		q = q.Where("LOWER(vehicles.transmission) = LOWER(?)", f.Transmission)
	}
	if f.BodyType != "" {
		q = q.Where("LOWER(vehicles.body_type) = LOWER(?)", f.BodyType)
	}
	if f.PriceMin != nil {
		q = q.Where("lots.current_price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("lots.current_price <= ?", *f.PriceMax)
	}
	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(vehicles.make) LIKE ? OR LOWER(vehicles.model) LIKE ? OR LOWER(lots.lot_no) LIKE ?",
			term, term, term,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count lots: %w", err)
	}

	switch f.State {
	case model.StateUpcoming:
		q = q.Order("lots.start_at ASC")
	case model.StateEnded:
		q = q.Order("lots.end_at DESC")
	default:
		q = q.Order("lots.end_at ASC")
	}

	page, size := normalizePage(f.Page, f.PageSize)
	var lots []model.Lot
	err := q.Preload("Vehicle").
		Offset((page - 1) * size).
		Limit(size).
		Find(&lots).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list lots: %w", err)
	}
	return lots, total, nil
}

func (s *GormStore) ActiveLots() ([]model.Lot, error) {
	var lots []model.Lot
	err := s.db.Where("archived = ? AND state <> ?", false, model.StateEnded).Find(&lots).Error
	if err != nil {
		return nil, fmt.Errorf("active lots: %w", err)
	}
	return lots, nil
}

func (s *GormStore) ApplyCommit(lotID string, price decimal.Decimal, leaderID string, endAt time.Time) error {
	res := s.db.Model(&model.Lot{}).Where("lot_id = ?", lotID).Updates(map[string]any{
		"current_price": price,
		"leader_id":     leaderID,
		"end_at":        endAt,
	})
	if res.Error != nil {
		return fmt.Errorf("apply commit for lot %s: %w", lotID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("apply commit for lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	return nil
}

func (s *GormStore) ApplyState(lotID string, state model.LotState) error {
	res := s.db.Model(&model.Lot{}).Where("lot_id = ?", lotID).Update("state", state)
	if res.Error != nil {
		return fmt.Errorf("apply state for lot %s: %w", lotID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("apply state for lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	return nil
}

func (s *GormStore) ArchiveLot(lotID string) error {
	res := s.db.Model(&model.Lot{}).Where("lot_id = ?", lotID).Update("archived", true)
	if res.Error != nil {
		return fmt.Errorf("archive lot %s: %w", lotID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("archive lot %s: %w", lotID, auctionerrors.ErrLotNotFound)
	}
	return nil
}

func (s *GormStore) Watchers(lotID string) ([]string, error) {
	var ids []string
	err := s.db.Model(&model.WatchRelation{}).
		Where("lot_id = ?", lotID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("watchers for lot %s: %w", lotID, err)
	}
	return ids, nil
}

func (s *GormStore) AddWatch(rel model.WatchRelation) error {
	err := s.db.Where(model.WatchRelation{UserID: rel.UserID, LotID: rel.LotID}).
		FirstOrCreate(&rel).Error
	if err != nil {
		return fmt.Errorf("add watch %s/%s: %w", rel.UserID, rel.LotID, err)
	}
	return nil
}
