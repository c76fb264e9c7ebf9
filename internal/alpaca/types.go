package alpaca

import "time"

// Market-data API shapes. The data API returns real JSON numbers and
// single-letter field names.

// Trade is the latest trade for a symbol.
type Trade struct {
	Timestamp time.Time `json:"t"`
	Price     float64   `json:"p"`
	Size      int64     `json:"s"`
	Exchange  string    `json:"x"`
}

// Quote is the latest NBBO quote for a symbol.
type Quote struct {
	Timestamp time.Time `json:"t"`
	BidPrice  float64   `json:"bp"`
	BidSize   int64     `json:"bs"`
	AskPrice  float64   `json:"ap"`
	AskSize   int64     `json:"as"`
}

// Bar is one OHLCV sample for a fixed time interval.
type Bar struct {
	Timestamp time.Time `json:"t"`
	Open      float64   `json:"o"`
	High      float64   `json:"h"`
	Low       float64   `json:"l"`
	Close     float64   `json:"c"`
	Volume    int64     `json:"v"`
}

// latestTradeResponse wraps the trade in the envelope the data API returns.
type latestTradeResponse struct {
	Symbol string `json:"symbol"`
	Trade  Trade  `json:"trade"`
}

type latestQuoteResponse struct {
	Symbol string `json:"symbol"`
	Quote  Quote  `json:"quote"`
}

type barsResponse struct {
	Symbol        string  `json:"symbol"`
	Bars          []Bar   `json:"bars"`
	NextPageToken *string `json:"next_page_token"`
}

// Trading API shapes. The trading API serializes every numeric field as
// a string; they are kept as strings here and converted at the mapping
// layer, with optional fields as pointers so absence survives decoding.

// Account is the trading account state.
type Account struct {
	AccountNumber    string `json:"account_number"`
	Status           string `json:"status"`
	Currency         string `json:"currency"`
	Cash             string `json:"cash"`
	PortfolioValue   string `json:"portfolio_value"`
	BuyingPower      string `json:"buying_power"`
	Equity           string `json:"equity"`
	LastEquity       string `json:"last_equity"`
	PatternDayTrader bool   `json:"pattern_day_trader"`
	TradingBlocked   bool   `json:"trading_blocked"`
	TransfersBlocked bool   `json:"transfers_blocked"`
	AccountBlocked   bool   `json:"account_blocked"`
}

// Position is an open holding with unrealized profit/loss.
type Position struct {
	Symbol                 string `json:"symbol"`
	Qty                    string `json:"qty"`
	Side                   string `json:"side"`
	AvgEntryPrice          string `json:"avg_entry_price"`
	CurrentPrice           string `json:"current_price"`
	MarketValue            string `json:"market_value"`
	CostBasis              string `json:"cost_basis"`
	UnrealizedPL           string `json:"unrealized_pl"`
	UnrealizedPLPC         string `json:"unrealized_plpc"`
	UnrealizedIntradayPL   string `json:"unrealized_intraday_pl"`
	UnrealizedIntradayPLPC string `json:"unrealized_intraday_plpc"`
}

// Order is a brokerage order with its lifecycle timestamps. Limit and
// stop prices only exist for the order types that carry them, and the
// filled fields only once something executed.
type Order struct {
	ID             string     `json:"id"`
	Symbol         string     `json:"symbol"`
	Qty            string     `json:"qty"`
	FilledQty      string     `json:"filled_qty"`
	Side           string     `json:"side"`
	Type           string     `json:"type"`
	TimeInForce    string     `json:"time_in_force"`
	LimitPrice     *string    `json:"limit_price"`
	StopPrice      *string    `json:"stop_price"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
	FilledAt       *time.Time `json:"filled_at"`
	FilledAvgPrice *string    `json:"filled_avg_price"`
}

// Clock is the market clock.
type Clock struct {
	Timestamp time.Time `json:"timestamp"`
	IsOpen    bool      `json:"is_open"`
	NextOpen  time.Time `json:"next_open"`
	NextClose time.Time `json:"next_close"`
}

// CalendarDay is one trading day with its session open and close times
// ("09:30" / "16:00" wall-clock strings).
type CalendarDay struct {
	Date  string `json:"date"`
	Open  string `json:"open"`
	Close string `json:"close"`
}
