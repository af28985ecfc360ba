package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratesServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"USD":1,"EUR":0.9,"GBP":0.8,"JPY":150}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRatesCachedUntilTTL(t *testing.T) {
	hits := 0
	srv := ratesServer(t, &hits)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache(Config{
		URL:   srv.URL,
		TTL:   time.Hour,
		Clock: func() time.Time { return now },
	}, nil)

	ctx := context.Background()
	first := c.Rates(ctx)
	assert.Equal(t, 1, hits)
	assert.Equal(t, 0.9, first["EUR"])

	// within TTL: served from cache
	now = now.Add(30 * time.Minute)
	_ = c.Rates(ctx)
	assert.Equal(t, 1, hits)

	// past TTL: refetched
	now = now.Add(31 * time.Minute)
	_ = c.Rates(ctx)
	assert.Equal(t, 2, hits)
}

func TestRatesFallbackWhenUnreachable(t *testing.T) {
	c := NewCache(Config{URL: "http://127.0.0.1:1/nope", TTL: time.Hour}, nil)

	got := c.Rates(context.Background())
	assert.Equal(t, fallbackRates, got)
}

func TestRatesStaleBeatsFallback(t *testing.T) {
	hits := 0
	srv := ratesServer(t, &hits)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache(Config{
		URL:   srv.URL,
		TTL:   time.Minute,
		Clock: func() time.Time { return now },
	}, nil)

	ctx := context.Background()
	_ = c.Rates(ctx)
	require.Equal(t, 1, hits)

	// upstream goes away; the stale table keeps serving
	srv.Close()
	now = now.Add(2 * time.Minute)
	got := c.Rates(ctx)
	assert.Equal(t, 0.9, got["EUR"])
}

func TestConvert(t *testing.T) {
	hits := 0
	srv := ratesServer(t, &hits)
	c := NewCache(Config{URL: srv.URL}, nil)
	ctx := context.Background()

	got, err := c.Convert(ctx, decimal.NewFromInt(100), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "90", got.String())

	got, err = c.Convert(ctx, decimal.NewFromInt(90), "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "100", got.String())

	same, err := c.Convert(ctx, decimal.NewFromInt(7), "GBP", "GBP")
	require.NoError(t, err)
	assert.Equal(t, "7", same.String())

	_, err = c.Convert(ctx, decimal.NewFromInt(1), "USD", "XXX")
	require.Error(t, err)
}

func TestCurrencies(t *testing.T) {
	hits := 0
	srv := ratesServer(t, &hits)
	c := NewCache(Config{URL: srv.URL}, nil)

	list := c.Currencies(context.Background())
	require.Len(t, list, 4) // only codes present in the fetched table

	byCode := map[string]Currency{}
	for _, cur := range list {
		byCode[cur.Code] = cur
	}
	assert.Equal(t, "Euro", byCode["EUR"].Name)
	assert.Equal(t, "€", byCode["EUR"].Symbol)
	assert.Equal(t, 0.9, byCode["EUR"].Rate)
}
