package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}

// JSONRejection sends a typed bid rejection carrying the current floor, so
// the client can re-offer a valid amount without another round trip.
func JSONRejection(c *gin.Context, status int, reason string, floor, minNext decimal.Decimal) {
	c.JSON(status, gin.H{
		"status":   status,
		"message":  "bid rejected",
		"reason":   reason,
		"floor":    floor,
		"min_next": minNext,
	})
}
