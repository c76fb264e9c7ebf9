package server

import (
	"strconv"
	"time"

	"github.com/omar10996-hub/trading/internal/alpaca"
)

// Response shapes returned to the agent. Field names and types are part
// of the contract: numbers are JSON floats/ints, timestamps RFC 3339
// strings, optional fields null when absent.

type stockPriceResponse struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"`
	Size      int64   `json:"size"`
	Exchange  string  `json:"exchange"`
}

type stockQuoteResponse struct {
	Symbol    string  `json:"symbol"`
	BidPrice  float64 `json:"bid_price"`
	BidSize   int64   `json:"bid_size"`
	AskPrice  float64 `json:"ask_price"`
	AskSize   int64   `json:"ask_size"`
	Timestamp string  `json:"timestamp"`
}

type barEntry struct {
	Timestamp string  `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

type stockBarsResponse struct {
	Symbol    string     `json:"symbol"`
	Timeframe string     `json:"timeframe"`
	Count     int        `json:"count"`
	Data      []barEntry `json:"data"`
}

type accountResponse struct {
	AccountNumber    string  `json:"account_number"`
	Status           string  `json:"status"`
	Currency         string  `json:"currency"`
	Cash             float64 `json:"cash"`
	PortfolioValue   float64 `json:"portfolio_value"`
	BuyingPower      float64 `json:"buying_power"`
	Equity           float64 `json:"equity"`
	LastEquity       float64 `json:"last_equity"`
	PatternDayTrader bool    `json:"pattern_day_trader"`
	TradingBlocked   bool    `json:"trading_blocked"`
	TransfersBlocked bool    `json:"transfers_blocked"`
	AccountBlocked   bool    `json:"account_blocked"`
}

// positionEntry is the list form, which carries the intraday P/L fields.
// The single-position lookup omits them.
type positionEntry struct {
	Symbol                 string  `json:"symbol"`
	Qty                    float64 `json:"qty"`
	Side                   string  `json:"side"`
	AvgEntryPrice          float64 `json:"avg_entry_price"`
	CurrentPrice           float64 `json:"current_price"`
	MarketValue            float64 `json:"market_value"`
	CostBasis              float64 `json:"cost_basis"`
	UnrealizedPL           float64 `json:"unrealized_pl"`
	UnrealizedPLPC         float64 `json:"unrealized_plpc"`
	UnrealizedIntradayPL   float64 `json:"unrealized_intraday_pl"`
	UnrealizedIntradayPLPC float64 `json:"unrealized_intraday_plpc"`
}

type positionResponse struct {
	Symbol         string  `json:"symbol"`
	Qty            float64 `json:"qty"`
	Side           string  `json:"side"`
	AvgEntryPrice  float64 `json:"avg_entry_price"`
	CurrentPrice   float64 `json:"current_price"`
	MarketValue    float64 `json:"market_value"`
	CostBasis      float64 `json:"cost_basis"`
	UnrealizedPL   float64 `json:"unrealized_pl"`
	UnrealizedPLPC float64 `json:"unrealized_plpc"`
}

type positionsResponse struct {
	Count     int             `json:"count"`
	Positions []positionEntry `json:"positions"`
}

type orderEntry struct {
	ID             string   `json:"id"`
	Symbol         string   `json:"symbol"`
	Qty            float64  `json:"qty"`
	FilledQty      float64  `json:"filled_qty"`
	Side           string   `json:"side"`
	Type           string   `json:"type"`
	TimeInForce    string   `json:"time_in_force"`
	LimitPrice     *float64 `json:"limit_price"`
	StopPrice      *float64 `json:"stop_price"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      *string  `json:"updated_at"`
	FilledAt       *string  `json:"filled_at"`
	FilledAvgPrice *float64 `json:"filled_avg_price"`
}

type ordersResponse struct {
	Count  int          `json:"count"`
	Orders []orderEntry `json:"orders"`
}

type marketStatusResponse struct {
	IsOpen    bool   `json:"is_open"`
	Timestamp string `json:"timestamp"`
	NextOpen  string `json:"next_open"`
	NextClose string `json:"next_close"`
}

type calendarDayEntry struct {
	Date  string `json:"date"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

type calendarResponse struct {
	Count    int                `json:"count"`
	Calendar []calendarDayEntry `json:"calendar"`
}

// parseQty converts the trading API's stringified numbers. Unparseable
// or empty values map to zero rather than failing the whole response.
func parseQty(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseQtyPtr(s *string) *float64 {
	if s == nil {
		return nil
	}
	f := parseQty(*s)
	return &f
}

func fmtTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtTime(*t)
	return &s
}

func toPositionEntry(p alpaca.Position) positionEntry {
	return positionEntry{
		Symbol:                 p.Symbol,
		Qty:                    parseQty(p.Qty),
		Side:                   p.Side,
		AvgEntryPrice:          parseQty(p.AvgEntryPrice),
		CurrentPrice:           parseQty(p.CurrentPrice),
		MarketValue:            parseQty(p.MarketValue),
		CostBasis:              parseQty(p.CostBasis),
		UnrealizedPL:           parseQty(p.UnrealizedPL),
		UnrealizedPLPC:         parseQty(p.UnrealizedPLPC) * 100, // fraction to percentage
		UnrealizedIntradayPL:   parseQty(p.UnrealizedIntradayPL),
		UnrealizedIntradayPLPC: parseQty(p.UnrealizedIntradayPLPC) * 100,
	}
}

func toOrderEntry(o alpaca.Order) orderEntry {
	return orderEntry{
		ID:             o.ID,
		Symbol:         o.Symbol,
		Qty:            parseQty(o.Qty),
		FilledQty:      parseQty(o.FilledQty),
		Side:           o.Side,
		Type:           o.Type,
		TimeInForce:    o.TimeInForce,
		LimitPrice:     parseQtyPtr(o.LimitPrice),
		StopPrice:      parseQtyPtr(o.StopPrice),
		Status:         o.Status,
		CreatedAt:      fmtTime(o.CreatedAt),
		UpdatedAt:      fmtTimePtr(o.UpdatedAt),
		FilledAt:       fmtTimePtr(o.FilledAt),
		FilledAvgPrice: parseQtyPtr(o.FilledAvgPrice),
	}
}
