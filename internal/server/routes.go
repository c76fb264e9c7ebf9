package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/omar10996-hub/trading/internal/alpaca"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(client alpaca.ClientInterface, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	h := NewHandler(client, log)

	router.GET("/", h.Home)
	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.GET("/stock/price/:symbol", h.GetStockPrice)
		api.GET("/stock/quote/:symbol", h.GetStockQuote)
		api.GET("/stock/bars/:symbol", h.GetStockBars)

		api.GET("/account", h.GetAccount)
		api.GET("/positions", h.ListPositions)
		api.GET("/positions/:symbol", h.GetPosition)
		api.GET("/orders", h.ListOrders)

		api.GET("/market/status", h.GetMarketStatus)
		api.GET("/market/calendar", h.GetMarketCalendar)
	}

	return router
}

// requestLogger logs one line per request with zap.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("Handled request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
