// Package pricing queries the CoinGecko simple/price endpoint.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/worldicons/worldicons-bot/internal/domain"
	"github.com/worldicons/worldicons-bot/internal/metrics"
	"github.com/worldicons/worldicons-bot/internal/utils"
)

// Defaults for the public CoinGecko API
const (
	DefaultBaseURL  = "https://api.coingecko.com/api/v3/simple/price"
	DefaultCurrency = "eur"
	DefaultTimeout  = 10 * time.Second

	cacheSize       = 32
	errorBodyLength = 200 // runes
)

// Asset is a coin tracked by the price command.
type Asset struct {
	ID    string // CoinGecko id
	Label string // display ticker
}

// Assets are the coins reported by the price command, in display order.
var Assets = []Asset{
	{ID: "sui", Label: "SUI"},
	{ID: "solana", Label: "SOL"},
}

// StatusError is returned when CoinGecko answers with a non-success status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("CoinGecko error HTTP %d: %s", e.StatusCode, e.Body)
}

// Unwrap classifies every status error as an external service failure.
func (e *StatusError) Unwrap() error {
	return domain.ErrExternalService
}

// Quote holds the prices of Assets in one fiat currency.
type Quote struct {
	Currency string
	prices   map[string]decimal.Decimal
}

// NewQuote builds a quote from known prices; assets absent from prices report as unavailable.
func NewQuote(currency string, prices map[string]decimal.Decimal) *Quote {
	q := &Quote{Currency: currency, prices: make(map[string]decimal.Decimal, len(prices))}
	for id, p := range prices {
		q.prices[id] = p
	}
	return q
}

// Price returns the price of the asset, or false when the API did not report it.
func (q *Quote) Price(assetID string) (decimal.Decimal, bool) {
	p, ok := q.prices[assetID]
	return p, ok
}

// Fetcher is what the price command needs from a price source.
type Fetcher interface {
	FetchPrices(ctx context.Context, currency string) (*Quote, error)
}

// Client talks to CoinGecko. Successful quotes are cached per currency.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	cache      *expirable.LRU[string, *Quote]
}

// NewClient creates a client; a cacheTTL of zero disables caching.
func NewClient(baseURL string, cacheTTL time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	if cacheTTL > 0 {
		c.cache = expirable.NewLRU[string, *Quote](cacheSize, nil, cacheTTL)
	}
	return c
}

// NormalizeCurrency trims and lowercases a fiat code, defaulting to DefaultCurrency.
func NormalizeCurrency(currency string) string {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		return DefaultCurrency
	}
	return currency
}

// FetchPrices returns the current price of every asset in currency.
// Failures wrap domain.ErrExternalService and are never retried.
func (c *Client) FetchPrices(ctx context.Context, currency string) (*Quote, error) {
	currency = NormalizeCurrency(currency)

	if c.cache != nil {
		if q, ok := c.cache.Get(currency); ok {
			metrics.ExternalRequests.WithLabelValues(metrics.ServiceCoinGecko, metrics.OutcomeCached).Inc()
			return q, nil
		}
	}

	start := time.Now()
	q, err := c.fetch(ctx, currency)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	metrics.RecordExternal(metrics.ServiceCoinGecko, outcome, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Add(currency, q)
	}
	return q, nil
}

func (c *Client) fetch(ctx context.Context, currency string) (*Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	ids := make([]string, len(Assets))
	for i, a := range Assets {
		ids[i] = a.ID
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrExternalService, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, (errorBodyLength+1)*utf8.UTFMax))
		body := utils.Truncate(string(raw), errorBodyLength)
		slog.Warn("CoinGecko returned non-success status", "status", resp.StatusCode)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	var payload map[string]map[string]decimal.NullDecimal
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode prices: %v", domain.ErrExternalService, err)
	}

	prices := make(map[string]decimal.Decimal, len(Assets))
	for _, a := range Assets {
		if p, ok := payload[a.ID][currency]; ok && p.Valid {
			prices[a.ID] = p.Decimal
		}
	}
	return NewQuote(currency, prices), nil
}

// IsStatusError reports whether err carries a CoinGecko status code.
func IsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
