package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pthm-cable/bubblefield/components"
	"github.com/pthm-cable/bubblefield/config"
)

// ErrNotFound is returned by Lookup when the API knows no asset with that id.
var ErrNotFound = errors.New("asset not found")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.Code, e.URL)
}

// changeWindows is the price_change_percentage parameter for every request.
const changeWindows = "24h,7d,30d"

// Client fetches listings from a CoinGecko-compatible API.
// Each call is a single attempt.
type Client struct {
	baseURL    string
	vsCurrency string
	pageSize   int
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client from the market config section.
func NewClient(cfg config.MarketConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}
	vs := cfg.VsCurrency
	if vs == "" {
		vs = "usd"
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		vsCurrency: vs,
		pageSize:   pageSize,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Top fetches the first page of assets ordered by market cap.
func (c *Client) Top(ctx context.Context) ([]components.Asset, error) {
	q := url.Values{}
	q.Set("vs_currency", c.vsCurrency)
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(c.pageSize))
	q.Set("page", "1")
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", changeWindows)

	records, err := c.markets(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetching top assets: %w", err)
	}
	slog.Info("market listing fetched", "count", len(records))
	return Assets(records), nil
}

// Lookup fetches a single asset by its API id.
// Returns ErrNotFound if the response is an empty array.
func (c *Client) Lookup(ctx context.Context, id string) (components.Asset, error) {
	q := url.Values{}
	q.Set("vs_currency", c.vsCurrency)
	q.Set("ids", id)
	q.Set("price_change_percentage", changeWindows)

	records, err := c.markets(ctx, q)
	if err != nil {
		return components.Asset{}, fmt.Errorf("looking up %q: %w", id, err)
	}
	if len(records) == 0 {
		return components.Asset{}, fmt.Errorf("looking up %q: %w", id, ErrNotFound)
	}
	return records[0].Asset(), nil
}

func (c *Client) markets(ctx context.Context, q url.Values) ([]Record, error) {
	endpoint := c.baseURL + "/coins/markets?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("market request failed", "status", resp.StatusCode, "url", endpoint)
		return nil, &StatusError{Code: resp.StatusCode, URL: endpoint}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decoding markets: %w", err)
	}
	return records, nil
}
