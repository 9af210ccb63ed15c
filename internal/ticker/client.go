package ticker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pmarinho/fintrack/internal/domain/models"
)

// DefaultBaseURL points at the public Binance REST API.
const DefaultBaseURL = "https://api.binance.com/api/v3"

// Client fetches spot prices for trading-pair symbols from an external
// market-data endpoint. Symbols are expected to be upper-cased trading pairs
// ("BTCUSDT"); callers normalize before calling.
type Client interface {
	GetCurrentPrice(ctx context.Context, symbol string) (models.PriceQuote, error)
	Get24hrStats(ctx context.Context, symbol string) (models.PriceQuote, error)
	GetMultiplePrices(ctx context.Context, symbols []string) ([]models.PriceQuote, error)
}

// FetchError reports a failed price lookup: network failure, non-200 status,
// malformed payload, or an unknown symbol all surface through this type.
// The client never retries.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch price for %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPClient is the REST implementation of Client.
//
// Every call is one-shot: no caching, no rate limiting, no backoff. The
// embedded http.Client carries an explicit timeout so a hung ticker endpoint
// cannot stall a request indefinitely.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds an HTTPClient against baseURL with the given request
// timeout. An empty baseURL falls back to DefaultBaseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

var _ Client = (*HTTPClient)(nil)

// priceResponse matches the latest-price payload. Price arrives as a string
// on the wire ("30000.10"); json.Number tolerates both string and numeric
// encodings.
type priceResponse struct {
	Symbol string      `json:"symbol"`
	Price  json.Number `json:"price"`
}

// statsResponse matches the 24hr ticker payload.
type statsResponse struct {
	Symbol             string      `json:"symbol"`
	LastPrice          json.Number `json:"lastPrice"`
	Volume             json.Number `json:"volume"`
	HighPrice          json.Number `json:"highPrice"`
	LowPrice           json.Number `json:"lowPrice"`
	PriceChangePercent json.Number `json:"priceChangePercent"`
}

// GetCurrentPrice returns the latest price for one trading pair.
func (c *HTTPClient) GetCurrentPrice(ctx context.Context, symbol string) (models.PriceQuote, error) {
	var payload priceResponse
	if err := c.getJSON(ctx, "/ticker/price", symbol, &payload); err != nil {
		return models.PriceQuote{}, &FetchError{Symbol: symbol, Err: err}
	}

	price, err := payload.Price.Float64()
	if err != nil {
		return models.PriceQuote{}, &FetchError{Symbol: symbol, Err: fmt.Errorf("malformed price %q: %w", payload.Price, err)}
	}

	return models.PriceQuote{
		Symbol:    payload.Symbol,
		Price:     price,
		Timestamp: time.Now(),
	}, nil
}

// Get24hrStats returns the extended 24h ticker for one trading pair.
func (c *HTTPClient) Get24hrStats(ctx context.Context, symbol string) (models.PriceQuote, error) {
	var payload statsResponse
	if err := c.getJSON(ctx, "/ticker/24hr", symbol, &payload); err != nil {
		return models.PriceQuote{}, &FetchError{Symbol: symbol, Err: err}
	}

	quote := models.PriceQuote{
		Symbol:    payload.Symbol,
		Timestamp: time.Now(),
	}

	fields := []struct {
		src json.Number
		dst *float64
	}{
		{payload.LastPrice, &quote.Price},
		{payload.Volume, &quote.Volume},
		{payload.HighPrice, &quote.High24h},
		{payload.LowPrice, &quote.Low24h},
		{payload.PriceChangePercent, &quote.PriceChangePct24h},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		v, err := f.src.Float64()
		if err != nil {
			return models.PriceQuote{}, &FetchError{Symbol: symbol, Err: fmt.Errorf("malformed 24hr payload: %w", err)}
		}
		*f.dst = v
	}

	return quote, nil
}

// GetMultiplePrices fetches each symbol concurrently and returns quotes in
// input order. If any single fetch fails the whole batch fails and sibling
// fetches are cancelled (fail-fast, no partial results).
func (c *HTTPClient) GetMultiplePrices(ctx context.Context, symbols []string) ([]models.PriceQuote, error) {
	quotes := make([]models.PriceQuote, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			q, err := c.GetCurrentPrice(gctx, symbol)
			if err != nil {
				return err
			}
			quotes[i] = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return quotes, nil
}

// getJSON issues GET {baseURL}{path}?symbol={symbol} and decodes the body.
func (c *HTTPClient) getJSON(ctx context.Context, path, symbol string, out any) error {
	u := fmt.Sprintf("%s%s?symbol=%s", c.baseURL, path, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
