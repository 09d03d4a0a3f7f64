package server

import (
	handler "auction-engine/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionHandler *handler.AuctionHandler, adminToken string) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.SubmitBidHandler)
	}

	lots := router.Group("/lots")
	{
		lots.GET("", auctionHandler.ListLotsHandler)
		lots.GET("/:lot_id", auctionHandler.GetLotHandler)
		lots.GET("/:lot_id/bids", auctionHandler.GetBidHistoryHandler)
		lots.GET("/:lot_id/winning", auctionHandler.GetLeadingBidHandler)
		lots.GET("/:lot_id/audit", auctionHandler.AuditLotHandler)
		lots.GET("/:lot_id/stream", auctionHandler.StreamLotHandler)
		lots.POST("/:lot_id/watch", auctionHandler.WatchLotHandler)
	}

	admin := router.Group("/admin", AdminTokenMiddleware(adminToken))
	{
		admin.POST("/lots/:lot_id/transition", auctionHandler.ForceTransitionHandler)
	}

	return router
}
