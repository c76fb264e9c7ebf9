package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/omar10996-hub/trading/internal/alpaca"
)

const (
	serviceName    = "Trading API Server"
	serviceVersion = "1.0.0"

	maxBarLimit      = 100
	defaultBarLimit  = 10
	maxOrderLimit    = 500
	defaultOrders    = 50
	maxCalendarDays  = 30
	defaultCalDays   = 7
	defaultTimeframe = "1Hour"
	defaultStatus    = "open"
)

var validTimeframes = map[string]bool{
	"1Min": true, "5Min": true, "15Min": true, "1Hour": true, "1Day": true,
}

var validOrderStatuses = map[string]bool{
	"open": true, "closed": true, "all": true,
}

// Handler holds dependencies for the API endpoints. The Alpaca client is
// injected so tests can substitute a double.
type Handler struct {
	client alpaca.ClientInterface
	log    *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(client alpaca.ClientInterface, log *zap.Logger) *Handler {
	return &Handler{client: client, log: log}
}

// fail writes the error envelope every failure path shares.
func (h *Handler) fail(c *gin.Context, status int, err error) {
	h.log.Warn("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
	c.JSON(status, gin.H{"error": err.Error()})
}

// intQuery parses an integer query parameter, clamping it to max. A
// malformed value is an error so the caller gets the usual envelope.
func intQuery(c *gin.Context, name string, def, max int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	if v > max {
		v = max
	}
	return v, nil
}

// Home returns service metadata and the endpoint list.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": serviceName,
		"version": serviceVersion,
		"status":  "running",
		"endpoints": gin.H{
			"stock_price":   "/api/stock/price/{symbol}",
			"stock_quote":   "/api/stock/quote/{symbol}",
			"stock_bars":    "/api/stock/bars/{symbol}",
			"account":       "/api/account",
			"positions":     "/api/positions",
			"orders":        "/api/orders",
			"market_status": "/api/market/status",
		},
	})
}

// Health reports service liveness. It probes Alpaca with an account
// fetch but responds 200 either way; connectivity is informational.
func (h *Handler) Health(c *gin.Context) {
	connection := "connected"
	if _, err := h.client.GetAccount(); err != nil {
		connection = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"service":           serviceName,
		"alpaca_connection": connection,
		"timestamp":         time.Now().Format(time.RFC3339),
	})
}

// GetStockPrice returns the latest trade for a symbol.
func (h *Handler) GetStockPrice(c *gin.Context) {
	symbol := c.Param("symbol")

	trade, err := h.client.GetLatestTrade(symbol)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, stockPriceResponse{
		Symbol:    strings.ToUpper(symbol),
		Price:     trade.Price,
		Timestamp: fmtTime(trade.Timestamp),
		Size:      trade.Size,
		Exchange:  trade.Exchange,
	})
}

// GetStockQuote returns the latest bid/ask quote for a symbol.
func (h *Handler) GetStockQuote(c *gin.Context) {
	symbol := c.Param("symbol")

	quote, err := h.client.GetLatestQuote(symbol)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, stockQuoteResponse{
		Symbol:    strings.ToUpper(symbol),
		BidPrice:  quote.BidPrice,
		BidSize:   quote.BidSize,
		AskPrice:  quote.AskPrice,
		AskSize:   quote.AskSize,
		Timestamp: fmtTime(quote.Timestamp),
	})
}

// GetStockBars returns historical bars for a symbol. The timeframe must
// be one of 1Min, 5Min, 15Min, 1Hour or 1Day and the limit is clamped
// to 100 bars.
func (h *Handler) GetStockBars(c *gin.Context) {
	symbol := c.Param("symbol")

	timeframe := c.DefaultQuery("timeframe", defaultTimeframe)
	if !validTimeframes[timeframe] {
		h.fail(c, http.StatusBadRequest, fmt.Errorf("invalid timeframe: %q", timeframe))
		return
	}

	limit, err := intQuery(c, "limit", defaultBarLimit, maxBarLimit)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	bars, err := h.client.GetBars(symbol, timeframe, limit)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	data := make([]barEntry, 0, len(bars))
	for _, b := range bars {
		data = append(data, barEntry{
			Timestamp: fmtTime(b.Timestamp),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		})
	}

	c.JSON(http.StatusOK, stockBarsResponse{
		Symbol:    strings.ToUpper(symbol),
		Timeframe: timeframe,
		Count:     len(data),
		Data:      data,
	})
}

// GetAccount returns the trading account state.
func (h *Handler) GetAccount(c *gin.Context) {
	account, err := h.client.GetAccount()
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, accountResponse{
		AccountNumber:    account.AccountNumber,
		Status:           account.Status,
		Currency:         account.Currency,
		Cash:             parseQty(account.Cash),
		PortfolioValue:   parseQty(account.PortfolioValue),
		BuyingPower:      parseQty(account.BuyingPower),
		Equity:           parseQty(account.Equity),
		LastEquity:       parseQty(account.LastEquity),
		PatternDayTrader: account.PatternDayTrader,
		TradingBlocked:   account.TradingBlocked,
		TransfersBlocked: account.TransfersBlocked,
		AccountBlocked:   account.AccountBlocked,
	})
}

// ListPositions returns all open positions.
func (h *Handler) ListPositions(c *gin.Context) {
	positions, err := h.client.ListPositions()
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	entries := make([]positionEntry, 0, len(positions))
	for _, p := range positions {
		entries = append(entries, toPositionEntry(p))
	}

	c.JSON(http.StatusOK, positionsResponse{
		Count:     len(entries),
		Positions: entries,
	})
}

// GetPosition returns the open position for one symbol. Any failure,
// including "no such position", responds 404.
func (h *Handler) GetPosition(c *gin.Context) {
	symbol := c.Param("symbol")

	p, err := h.client.GetPosition(symbol)
	if err != nil {
		h.fail(c, http.StatusNotFound, err)
		return
	}

	c.JSON(http.StatusOK, positionResponse{
		Symbol:         p.Symbol,
		Qty:            parseQty(p.Qty),
		Side:           p.Side,
		AvgEntryPrice:  parseQty(p.AvgEntryPrice),
		CurrentPrice:   parseQty(p.CurrentPrice),
		MarketValue:    parseQty(p.MarketValue),
		CostBasis:      parseQty(p.CostBasis),
		UnrealizedPL:   parseQty(p.UnrealizedPL),
		UnrealizedPLPC: parseQty(p.UnrealizedPLPC) * 100,
	})
}

// ListOrders returns orders filtered by status (open, closed or all),
// with the limit clamped to 500.
func (h *Handler) ListOrders(c *gin.Context) {
	status := c.DefaultQuery("status", defaultStatus)
	if !validOrderStatuses[status] {
		h.fail(c, http.StatusBadRequest, fmt.Errorf("invalid status: %q", status))
		return
	}

	limit, err := intQuery(c, "limit", defaultOrders, maxOrderLimit)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	orders, err := h.client.ListOrders(status, limit)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	entries := make([]orderEntry, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, toOrderEntry(o))
	}

	c.JSON(http.StatusOK, ordersResponse{
		Count:  len(entries),
		Orders: entries,
	})
}

// GetMarketStatus returns the market clock.
func (h *Handler) GetMarketStatus(c *gin.Context) {
	clock, err := h.client.GetClock()
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, marketStatusResponse{
		IsOpen:    clock.IsOpen,
		Timestamp: fmtTime(clock.Timestamp),
		NextOpen:  fmtTime(clock.NextOpen),
		NextClose: fmtTime(clock.NextClose),
	})
}

// GetMarketCalendar returns the trading calendar for the next `days`
// days, clamped to 30.
func (h *Handler) GetMarketCalendar(c *gin.Context) {
	days, err := intQuery(c, "days", defaultCalDays, maxCalendarDays)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	end := start.AddDate(0, 0, days)

	calendar, err := h.client.GetCalendar(start, end)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	entries := make([]calendarDayEntry, 0, len(calendar))
	for _, day := range calendar {
		entries = append(entries, calendarDayEntry{
			Date:  day.Date,
			Open:  day.Open,
			Close: day.Close,
		})
	}

	c.JSON(http.StatusOK, calendarResponse{
		Count:    len(entries),
		Calendar: entries,
	})
}
