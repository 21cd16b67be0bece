package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultDataAPIURL  = "https://data-api.polymarket.com"
	defaultGammaAPIURL = "https://gamma-api.polymarket.com"
)

// Config holds market-data client configuration.
type Config struct {
	// DataAPIURL is the base URL for positions and portfolio value.
	DataAPIURL string
	// GammaAPIURL is the base URL for the market-metadata catalog.
	GammaAPIURL string
	// Timeout is the per-call HTTP timeout.
	Timeout time.Duration
	// RetryPolicy bounds retries of transport errors.
	RetryPolicy RetryPolicy
}

// DefaultConfig returns client defaults pointing at the public APIs.
func DefaultConfig() Config {
	return Config{
		DataAPIURL:  defaultDataAPIURL,
		GammaAPIURL: defaultGammaAPIURL,
		Timeout:     30 * time.Second,
		RetryPolicy: DefaultRetryPolicy(),
	}
}

// Client fetches positions, portfolio value and market metadata from the
// provider's read-only JSON APIs. Failures never propagate: a non-2xx
// response, malformed payload or exhausted retry budget degrades to a
// "no data" return and a warning, so one bad wallet cannot block sibling
// wallets or other users.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *slog.Logger
}

// NewClient constructs a market-data client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.DataAPIURL == "" {
		cfg.DataAPIURL = defaultDataAPIURL
	}
	if cfg.GammaAPIURL == "" {
		cfg.GammaAPIURL = defaultGammaAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

// FetchPositions returns a wallet's positions plus the verbatim response
// body (kept for the raw snapshot), or (nil, nil) when no data could be
// fetched.
func (c *Client) FetchPositions(ctx context.Context, address string) (*PositionResponse, json.RawMessage) {
	endpoint := c.cfg.DataAPIURL + "/positions?address=" + url.QueryEscape(address)

	body, err := c.getJSON(ctx, endpoint)
	if err != nil {
		c.logger.Warn("position fetch failed", "address", address, "error", err)
		return nil, nil
	}

	var resp PositionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("position payload malformed", "address", address, "error", err)
		return nil, nil
	}

	c.logger.Info("fetched positions", "address", address, "count", len(resp.Positions))
	return &resp, json.RawMessage(body)
}

// FetchValue returns a wallet's aggregate portfolio value, or nil when no
// data could be fetched.
func (c *Client) FetchValue(ctx context.Context, address string) *ValueResponse {
	endpoint := c.cfg.DataAPIURL + "/value?address=" + url.QueryEscape(address)

	body, err := c.getJSON(ctx, endpoint)
	if err != nil {
		c.logger.Warn("value fetch failed", "address", address, "error", err)
		return nil
	}

	var resp ValueResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("value payload malformed", "address", address, "error", err)
		return nil
	}

	c.logger.Info("fetched portfolio value", "address", address)
	return &resp
}

// FetchMarkets returns the market-metadata catalog, or an empty slice when
// it could not be fetched. The ingestion job calls this once per run, not
// once per wallet.
func (c *Client) FetchMarkets(ctx context.Context) []Market {
	endpoint := c.cfg.GammaAPIURL + "/markets"

	body, err := c.getJSON(ctx, endpoint)
	if err != nil {
		c.logger.Warn("market catalog fetch failed", "error", err)
		return nil
	}

	var markets []Market
	if err := json.Unmarshal(body, &markets); err != nil {
		c.logger.Warn("market catalog payload malformed", "error", err)
		return nil
	}

	c.logger.Info("fetched market catalog", "count", len(markets))
	return markets
}

// getJSON performs a GET, retrying transport errors per the policy. HTTP
// error statuses are terminal: the server answered, retrying will not
// change its mind within one run.
func (c *Client) getJSON(ctx context.Context, endpoint string) ([]byte, error) {
	var body []byte

	err := withRetry(ctx, c.cfg.RetryPolicy, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retryable(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("unexpected response status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retryable(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}
