package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	bidding "auction-engine/internal/biddingService"
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

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const adminToken = "integration-admin-token"

// snipeWindow is deliberately short so anti-sniping is observable against
// lots seeded to close within it.
const snipeWindow = 60 * time.Second

// TestStack is the full engine wired over in-memory storage, the way main
// assembles it minus the database and the broker.
type TestStack struct {
	Router    *gin.Engine
	Store     *repository.MemoryStore
	Ledger    *ledger.MemoryLedger
	Sink      *notifier.MemorySink
	Evaluator *lifecycle.Evaluator
}

// SetupTestStack assembles the stack and seeds the given lots. The
// dispatcher consumes the publisher firehose in the background until the
// test ends; the lifecycle evaluator is driven manually through Sweep.
func SetupTestStack(t *testing.T, lots ...model.Lot) *TestStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	for _, lot := range lots {
		require.NoError(t, store.CreateLot(lot))
	}
	bidLedger := ledger.NewMemoryLedger()
	publisher := pubsub.NewPublisher(16)
	sink := notifier.NewMemorySink()
	dispatcher := notifier.NewDispatcher(bidLedger, store, sink)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events, _ := publisher.SubscribeAll(ctx)
	go dispatcher.Run(ctx, events)

	locks := utils.NewKeyedMutex()
	evaluator := lifecycle.NewEvaluator(store, bidLedger, publisher, dispatcher, locks, time.Hour, 5*time.Minute)
	svc := bidding.NewBiddingService(store, bidLedger, publisher, nil, locks, snipeWindow)
	listings := listing.NewEngine(store)

	h := handler.NewAuctionHandler(svc, listings, publisher, evaluator, store)
	router := server.SetupRouter(h, adminToken)

	return &TestStack{
		Router:    router,
		Store:     store,
		Ledger:    bidLedger,
		Sink:      sink,
		Evaluator: evaluator,
	}
}

// LiveLot seeds a lot that is live right now and closes in an hour.
func LiveLot(lotID, lotNo string, startingPrice, increment int64) model.Lot {
	now := time.Now().UTC()
	return model.Lot{
		LotID:         lotID,
		LotNo:         lotNo,
		State:         model.StateLive,
		StartAt:       now.Add(-1 * time.Hour),
		EndAt:         now.Add(1 * time.Hour),
		StartingPrice: decimal.NewFromInt(startingPrice),
		BidIncrement:  decimal.NewFromInt(increment),
		CurrentPrice:  decimal.NewFromInt(startingPrice),
		Vehicle: model.Vehicle{
			VehicleID: lotID + "-vehicle",
			Make:      "Toyota", Model: "Corolla", Year: 2019,
			Mileage: 42000, FuelType: "petrol", Transmission: "manual", BodyType: "sedan",
		},
	}
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the JSON response envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any, headers ...map[string]string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for _, hs := range headers {
		for k, v := range hs {
			req.Header.Set(k, v)
		}
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}
