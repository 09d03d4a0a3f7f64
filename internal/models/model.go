package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotState is the lifecycle phase of an auction lot
type LotState string

const (
	StateUpcoming LotState = "upcoming"
	StateLive     LotState = "live"
	StateEnded    LotState = "ended"
)

// NotificationKind classifies dispatcher output
type NotificationKind string

const (
	KindOutbid     NotificationKind = "outbid"
	KindEndingSoon NotificationKind = "ending_soon"
	KindWon        NotificationKind = "won"
	KindSystem     NotificationKind = "system"
)

// Vehicle describes the car attached to a lot. Owned by the catalog
// collaborator; the engine reads it and never writes it.
type Vehicle struct {
	VehicleID    string `gorm:"primaryKey;size:36" json:"vehicle_id"`
	Make         string `gorm:"size:64;index" json:"make"`
	Model        string `gorm:"size:64;index" json:"model"`
	Year         int    `json:"year"`
	Mileage      int    `json:"mileage"`
	FuelType     string `gorm:"size:32" json:"fuel_type"`
	Transmission string `gorm:"size:32" json:"transmission"`
	BodyType     string `gorm:"size:32" json:"body_type"`
}

func (Vehicle) TableName() string { return "vehicles" }

// Lot is a single auctionable unit with its own bidding timeline.
// CurrentPrice and LeaderID are a cached projection of the bid ledger and
// are written only by the admission commit path.
type Lot struct {
	LotID         string          `gorm:"primaryKey;size:36" json:"lot_id"`
	LotNo         string          `gorm:"size:16;uniqueIndex" json:"lot_no"`
	State         LotState        `gorm:"size:16;index" json:"state"`
	StartAt       time.Time       `gorm:"index" json:"start_at"`
	EndAt         time.Time       `gorm:"index" json:"end_at"`
	StartingPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"starting_price"`
	BidIncrement  decimal.Decimal `gorm:"type:decimal(12,2)" json:"bid_increment"`
	CurrentPrice  decimal.Decimal `gorm:"type:decimal(12,2)" json:"current_price"`
	LeaderID      string          `gorm:"size:36" json:"leader_id,omitempty"`
	Archived      bool            `gorm:"index" json:"archived"`

	VehicleID string  `gorm:"size:36;index" json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle"`
}

func (Lot) TableName() string { return "lots" }

// Bid is an immutable committed fact. SeqNo is assigned at commit time by
// the ledger, not at submission time, and is strictly increasing per lot.
type Bid struct {
	BidID     string          `gorm:"primaryKey;size:36" json:"bid_id"`
	LotID     string          `gorm:"size:36;index:idx_lot_seq,unique,priority:1" json:"lot_id"`
	BidderID  string          `gorm:"size:36;index" json:"bidder_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	SeqNo     uint64          `gorm:"index:idx_lot_seq,unique,priority:2" json:"seq_no"`
	CreatedAt time.Time       `json:"created_at"`
}

func (Bid) TableName() string { return "bids" }

// WatchRelation marks a user's interest in a lot. Maintained externally,
// consumed read-only by the notification dispatcher.
type WatchRelation struct {
	UserID string `gorm:"size:36;index:idx_watch,unique,priority:1" json:"user_id"`
	LotID  string `gorm:"size:36;index:idx_watch,unique,priority:2" json:"lot_id"`
}

func (WatchRelation) TableName() string { return "watch_relations" }

// Notification is an enqueued message for the delivery collaborator; the
// engine's responsibility ends once it is handed to a sink.
type Notification struct {
	NotificationID string           `gorm:"primaryKey;size:36" json:"notification_id"`
	UserID         string           `gorm:"size:36;index" json:"user_id"`
	Kind           NotificationKind `gorm:"size:16" json:"kind"`
	LotID          string           `gorm:"size:36;index" json:"lot_id"`
	Payload        string           `json:"payload"`
	CreatedAt      time.Time        `json:"created_at"`
	Read           bool             `json:"read"`
}

func (Notification) TableName() string { return "notifications" }

// LotUpdate is the event fanned out to realtime subscribers after a commit
// or a lifecycle transition. PrevLeaderID is carried for the dispatcher and
// is not part of the public realtime surface.
type LotUpdate struct {
	LotID        string          `json:"lot_id"`
	SeqNo        uint64          `json:"seq_no"`
	Price        decimal.Decimal `json:"price"`
	LeaderID     string          `json:"leader_id,omitempty"`
	PrevLeaderID string          `json:"-"`
	State        LotState        `json:"state"`
	EndAt        time.Time       `json:"end_at"`
	At           time.Time       `json:"at"`
}
