package alpaca

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/omar10996-hub/trading/internal/config"
)

const (
	// Paper-trading environment. The base URLs are fixed; switching to a
	// live account is out of scope for this service.
	tradingBaseURL = "https://paper-api.alpaca.markets/v2"
	dataBaseURL    = "https://data.alpaca.markets/v2"

	keyHeader    = "APCA-API-KEY-ID"
	secretHeader = "APCA-API-SECRET-KEY"
)

// ClientInterface defines the subset of the Alpaca API this service consumes.
type ClientInterface interface {
	GetLatestTrade(symbol string) (*Trade, error)
	GetLatestQuote(symbol string) (*Quote, error)
	GetBars(symbol, timeframe string, limit int) ([]Bar, error)
	GetAccount() (*Account, error)
	ListPositions() ([]Position, error)
	GetPosition(symbol string) (*Position, error)
	ListOrders(status string, limit int) ([]Order, error)
	GetClock() (*Clock, error)
	GetCalendar(start, end time.Time) ([]CalendarDay, error)
}

// Client is a REST client for the Alpaca paper-trading and market-data APIs.
// It implements the ClientInterface.
//
// Each call is a single blocking round trip: no retries, no local state.
// The client is safe for concurrent use since resty clients are.
type Client struct {
	trading *resty.Client
	data    *resty.Client
	logger  *zap.Logger
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new Alpaca REST client authenticated with the
// configured key pair. Placeholder credentials are accepted; requests
// made with them fail when Alpaca rejects them.
func NewClient(cfg *config.Alpaca, logger *zap.Logger) *Client {
	mkClient := func(baseURL string) *resty.Client {
		return resty.New().
			SetBaseURL(baseURL).
			SetHeader(keyHeader, cfg.ApiKey).
			SetHeader(secretHeader, cfg.SecretKey)
	}

	return &Client{
		trading: mkClient(tradingBaseURL),
		data:    mkClient(dataBaseURL),
		logger:  logger,
	}
}

// do executes a single GET request and turns non-2xx responses into errors.
func (c *Client) do(client *resty.Client, path string, query map[string]string, result any) error {
	req := client.R().SetResult(result)
	if query != nil {
		req.SetQueryParams(query)
	}

	c.logger.Debug("Executing Alpaca request", zap.String("path", path))
	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("alpaca returned status %s: %s", resp.Status(), resp.String())
	}
	return nil
}

// GetLatestTrade fetches the most recent trade for a symbol.
func (c *Client) GetLatestTrade(symbol string) (*Trade, error) {
	var out latestTradeResponse
	path := fmt.Sprintf("/stocks/%s/trades/latest", symbol)
	if err := c.do(c.data, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get latest trade for %s: %w", symbol, err)
	}
	return &out.Trade, nil
}

// GetLatestQuote fetches the most recent bid/ask quote for a symbol.
func (c *Client) GetLatestQuote(symbol string) (*Quote, error) {
	var out latestQuoteResponse
	path := fmt.Sprintf("/stocks/%s/quotes/latest", symbol)
	if err := c.do(c.data, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get latest quote for %s: %w", symbol, err)
	}
	return &out.Quote, nil
}

// GetBars fetches up to limit historical bars for a symbol at the given
// timeframe, oldest first, as returned by Alpaca.
func (c *Client) GetBars(symbol, timeframe string, limit int) ([]Bar, error) {
	var out barsResponse
	path := fmt.Sprintf("/stocks/%s/bars", symbol)
	query := map[string]string{
		"timeframe": timeframe,
		"limit":     strconv.Itoa(limit),
	}
	if err := c.do(c.data, path, query, &out); err != nil {
		return nil, fmt.Errorf("failed to get bars for %s: %w", symbol, err)
	}
	return out.Bars, nil
}

// GetAccount fetches the trading account. Also used as the connectivity
// probe by the health endpoint.
func (c *Client) GetAccount() (*Account, error) {
	var out Account
	if err := c.do(c.trading, "/account", nil, &out); err != nil {
		c.logger.Error("Failed to get account", zap.Error(err))
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &out, nil
}

// ListPositions fetches all open positions.
func (c *Client) ListPositions() ([]Position, error) {
	var out []Position
	if err := c.do(c.trading, "/positions", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	return out, nil
}

// GetPosition fetches the open position for one symbol. Alpaca responds
// 404 when there is none, which surfaces here as an error.
func (c *Client) GetPosition(symbol string) (*Position, error) {
	var out Position
	path := fmt.Sprintf("/positions/%s", symbol)
	if err := c.do(c.trading, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get position for %s: %w", symbol, err)
	}
	return &out, nil
}

// ListOrders fetches up to limit orders filtered by status (open, closed or all).
func (c *Client) ListOrders(status string, limit int) ([]Order, error) {
	var out []Order
	query := map[string]string{
		"status": status,
		"limit":  strconv.Itoa(limit),
	}
	if err := c.do(c.trading, "/orders", query, &out); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return out, nil
}

// GetClock fetches the market clock.
func (c *Client) GetClock() (*Clock, error) {
	var out Clock
	if err := c.do(c.trading, "/clock", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get market clock: %w", err)
	}
	return &out, nil
}

// GetCalendar fetches the trading calendar between start and end inclusive.
func (c *Client) GetCalendar(start, end time.Time) ([]CalendarDay, error) {
	var out []CalendarDay
	query := map[string]string{
		"start": start.Format("2006-01-02"),
		"end":   end.Format("2006-01-02"),
	}
	if err := c.do(c.trading, "/calendar", query, &out); err != nil {
		return nil, fmt.Errorf("failed to get market calendar: %w", err)
	}
	return out, nil
}
