// Package rates fetches and caches USD-based exchange rates for the
// report surface. The cache is an explicit object with an injected clock
// and TTL so expiry is testable; rates fall back to a static table when
// the upstream API is unreachable.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const defaultURL = "https://api.exchangerate-api.com/v4/latest/USD"

// fallbackRates keeps conversion working offline. Approximate by nature.
var fallbackRates = map[string]float64{
	"USD": 1,
	"EUR": 0.85,
	"GBP": 0.73,
	"JPY": 110.42,
	"CAD": 1.25,
	"AUD": 1.36,
	"CNY": 6.47,
	"INR": 74.38,
}

var currencyMeta = map[string]struct{ Name, Symbol string }{
	"USD": {"US Dollar", "$"},
	"EUR": {"Euro", "€"},
	"GBP": {"British Pound", "£"},
	"JPY": {"Japanese Yen", "¥"},
	"CAD": {"Canadian Dollar", "C$"},
	"AUD": {"Australian Dollar", "A$"},
	"CNY": {"Chinese Yuan", "¥"},
	"INR": {"Indian Rupee", "₹"},
}

type Currency struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

type Config struct {
	URL string
	TTL time.Duration
	// Clock is injectable for expiry tests; nil means time.Now.
	Clock func() time.Time
	// Client is the HTTP client used for fetches; nil means a 10s-timeout client.
	Client *http.Client
}

// Cache is the process-wide rate store. Safe for concurrent use.
type Cache struct {
	mu        sync.Mutex
	rates     map[string]float64
	fetchedAt time.Time

	cfg    Config
	logger *slog.Logger
}

func NewCache(cfg Config, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.URL == "" {
		cfg.URL = defaultURL
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Cache{cfg: cfg, logger: logger}
}

// Rates returns the cached table, refreshing it when stale. Fetch
// failures degrade to the fallback table rather than erroring; reporting
// should keep working offline.
func (c *Cache) Rates(ctx context.Context) map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.cfg.Clock()
	if c.rates != nil && now.Sub(c.fetchedAt) < c.cfg.TTL {
		return c.rates
	}

	fetched, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("rates.fetch.failed", "err", err)
		if c.rates != nil {
			// stale beats static
			return c.rates
		}
		return fallbackRates
	}
	c.rates = fetched
	c.fetchedAt = now
	c.logger.Info("rates.fetch.ok", "currencies", len(fetched))
	return c.rates
}

// Convert changes amount from one currency to another via the USD cross
// rate. Fails on unknown currency codes.
func (c *Cache) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rates := c.Rates(ctx)
	fromRate, okFrom := rates[from]
	toRate, okTo := rates[to]
	if !okFrom || !okTo || fromRate == 0 {
		return decimal.Zero, fmt.Errorf("unsupported currency pair %s/%s", from, to)
	}
	usd := amount.Div(decimal.NewFromFloat(fromRate))
	return usd.Mul(decimal.NewFromFloat(toRate)).Round(2), nil
}

// Currencies lists supported currencies with display metadata. Only codes
// with known metadata are included.
func (c *Cache) Currencies(ctx context.Context) []Currency {
	rates := c.Rates(ctx)
	out := make([]Currency, 0, len(currencyMeta))
	for code, meta := range currencyMeta {
		rate, ok := rates[code]
		if !ok {
			continue
		}
		out = append(out, Currency{Code: code, Name: meta.Name, Symbol: meta.Symbol, Rate: rate})
	}
	return out
}

func (c *Cache) fetch(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.cfg.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates API returned %s", resp.Status)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("rates API returned no rates")
	}
	return body.Rates, nil
}
