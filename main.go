package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/config"
	"auction-engine/internal/ledger"
	"auction-engine/internal/lifecycle"
	"auction-engine/internal/listing"
	model "auction-engine/internal/models"
	"auction-engine/internal/notifier"
	"auction-engine/internal/pubsub"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	handler "auction-engine/services/auction/handler"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		utils.Fatal("db open failed", map[string]any{"path": cfg.DBPath, "error": err.Error()})
	}

	store := repository.NewGormStore(db)
	if err := store.Migrate(); err != nil {
		utils.Fatal("db migrate failed", map[string]any{"error": err.Error()})
	}
	bidLedger := ledger.NewGormLedger(db)
	if err := bidLedger.Migrate(); err != nil {
		utils.Fatal("db migrate failed", map[string]any{"error": err.Error()})
	}

	prepopulateLots(store, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher := pubsub.NewPublisher(cfg.SubscriberBuffer)
	locks := utils.NewKeyedMutex()

	sink, closeSink := buildSink(cfg)
	defer closeSink()

	dispatcher := notifier.NewDispatcher(bidLedger, store, sink)
	events, cancelEvents := publisher.SubscribeAll(ctx)
	defer cancelEvents()
	go dispatcher.Run(ctx, events)

	evaluator := lifecycle.NewEvaluator(store, bidLedger, publisher, dispatcher, locks, cfg.EvaluatorTick, cfg.EndingSoonWindow)
	go evaluator.Run(ctx)

	biddingSvc := bidding.NewBiddingService(store, bidLedger, publisher, bidding.AllowAll{}, locks, cfg.SnipeWindow)
	listingSvc := listing.NewEngine(store)

	auctionHandler := handler.NewAuctionHandler(biddingSvc, listingSvc, publisher, evaluator, store)
	router := server.SetupRouter(auctionHandler, cfg.AdminToken)

	utils.Info("starting auction server", map[string]any{"addr": cfg.HTTPAddr, "db": cfg.DBPath})
	if err := router.Run(cfg.HTTPAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// buildSink wires the notification delivery collaborator: a RabbitMQ queue
// when AMQP_URL is set, an in-process sink otherwise.
func buildSink(cfg config.AppConfig) (notifier.Sink, func()) {
	if cfg.AMQPURL == "" {
		return notifier.NewMemorySink(), func() {}
	}
	sink, err := notifier.NewAMQPSink(cfg.AMQPURL, cfg.AMQPQueue)
	if err != nil {
		utils.Fatal("amqp sink failed", map[string]any{"url": cfg.AMQPURL, "error": err.Error()})
	}
	return sink, func() {
		if err := sink.Close(); err != nil {
			utils.Warn("amqp sink close failed", map[string]any{"error": err.Error()})
		}
	}
}

// prepopulateLots seeds sample lots on an empty database for local runs
func prepopulateLots(store *repository.GormStore, cfg config.AppConfig) {
	if lots, err := store.ActiveLots(); err != nil || len(lots) > 0 {
		return
	}

	now := time.Now().UTC()
	vehicles := []model.Vehicle{
		{VehicleID: utils.GenerateID(), Make: "Toyota", Model: "Corolla", Year: 2018, Mileage: 64000, FuelType: "petrol", Transmission: "manual", BodyType: "sedan"},
		{VehicleID: utils.GenerateID(), Make: "Volkswagen", Model: "Golf", Year: 2020, Mileage: 31000, FuelType: "diesel", Transmission: "automatic", BodyType: "hatchback"},
		{VehicleID: utils.GenerateID(), Make: "Ford", Model: "Ranger", Year: 2016, Mileage: 142000, FuelType: "diesel", Transmission: "manual", BodyType: "pickup"},
	}

	for i, v := range vehicles {
		lot := model.Lot{
			LotID:         utils.GenerateID(),
			LotNo:         utils.FormatLotNo(i + 1),
			State:         model.StateLive,
			StartAt:       now.Add(-time.Hour),
			EndAt:         now.Add(time.Duration(i+1) * time.Hour),
			StartingPrice: decimal.NewFromInt(int64(1000 * (i + 1))),
			BidIncrement:  cfg.DefaultIncrement,
			VehicleID:     v.VehicleID,
			Vehicle:       v,
		}
		if err := store.CreateLot(lot); err != nil {
			utils.Warn("seeding lot failed", map[string]any{"lot_no": lot.LotNo, "error": err.Error()})
		}
	}
}
