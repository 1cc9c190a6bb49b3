package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giza-dash/internal/cache"
	"github.com/giza-dash/pkg/config"
	"github.com/giza-dash/pkg/models"
)

const validCoinPayload = `{
	"id": "giza",
	"symbol": "giza",
	"name": "Giza",
	"market_cap_rank": 1319,
	"market_data": {
		"current_price": {"usd": 0.1762},
		"price_change_percentage_24h": -7.40,
		"price_change_percentage_7d": -5.10,
		"market_cap": {"usd": 18720000},
		"total_volume": {"usd": 3540038},
		"circulating_supply": 88691142,
		"total_supply": 1000000000,
		"max_supply": 1000000000,
		"fully_diluted_valuation": {"usd": 176200000},
		"ath": {"usd": 0.49},
		"ath_date": {"usd": "2025-03-15T00:00:00.000Z"},
		"atl": {"usd": 0.073},
		"atl_date": {"usd": "2025-01-01T00:00:00.000Z"}
	}
}`

const validChartPayload = `{
	"prices": [[1735689600000, 0.073], [1736899200000, 0.089], [1738368000000, 0.156]],
	"total_volumes": [[1735689600000, 1200000], [1736899200000, 1500000], [1738368000000, 2100000]]
}`

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestProvider(t *testing.T, handler http.Handler, ttl time.Duration) *Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.CoinGeckoConfig{
		BaseURL:        srv.URL,
		CoinID:         "giza",
		Currency:       "usd",
		RequestTimeout: 2 * time.Second,
		HistoryDays:    30,
	}

	return New(cfg, ttl, cache.NewMemoryStore(), testLogger())
}

func captureWarnings(p *Provider) *[]models.FetchWarning {
	warnings := &[]models.FetchWarning{}
	p.OnWarning = func(w models.FetchWarning) {
		*warnings = append(*warnings, w)
	}
	return warnings
}

func coinHandler(body string, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	})
}

func TestGetTokenMetricsRoundTrip(t *testing.T) {
	p := newTestProvider(t, coinHandler(validCoinPayload, http.StatusOK), time.Minute)
	warnings := captureWarnings(p)

	m := p.GetTokenMetrics(context.Background())

	assert.Equal(t, 0.1762, m.Price)
	assert.Equal(t, -7.40, m.PriceChange24h)
	assert.Equal(t, -5.10, m.PriceChange7d)
	assert.Equal(t, 18720000.0, m.MarketCap)
	assert.Equal(t, 3540038.0, m.Volume24h)
	assert.Equal(t, 88691142.0, m.CirculatingSupply)
	assert.Equal(t, 1000000000.0, m.TotalSupply)
	assert.Equal(t, 1000000000.0, m.MaxSupply)
	assert.Equal(t, 176200000.0, m.FDV)
	assert.Equal(t, 1319, m.Rank)
	assert.Equal(t, 0.49, m.ATH)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), m.ATHDate.UTC())
	assert.Equal(t, 0.073, m.ATL)
	assert.Equal(t, models.SourceLive, m.Source)
	assert.False(t, m.FetchedAt.IsZero())
	assert.Empty(t, *warnings)
}

func TestGetTokenMetricsCachesWithinTTL(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, validCoinPayload)
	})
	p := newTestProvider(t, handler, time.Minute)

	first := p.GetTokenMetrics(context.Background())
	second := p.GetTokenMetrics(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call inside TTL must be served from cache")
	assert.Equal(t, first, second)
}

func TestGetTokenMetricsRefetchesAfterExpiry(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, validCoinPayload)
	})
	p := newTestProvider(t, handler, time.Nanosecond)

	p.GetTokenMetrics(context.Background())
	time.Sleep(5 * time.Millisecond)
	p.GetTokenMetrics(context.Background())

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "call after TTL expiry must refetch")
}

func TestFallbackOnProtocolError(t *testing.T) {
	p := newTestProvider(t, coinHandler("too many requests", http.StatusTooManyRequests), time.Minute)
	warnings := captureWarnings(p)

	m := p.GetTokenMetrics(context.Background())

	assert.Equal(t, models.SourceDemo, m.Source)
	assert.Equal(t, demoMetrics.Price, m.Price)
	assert.Equal(t, demoMetrics.MarketCap, m.MarketCap)
	require.Len(t, *warnings, 1)
	assert.Equal(t, models.WarnProtocol, (*warnings)[0].Kind)
}

func TestFallbackOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	cfg := &config.CoinGeckoConfig{
		BaseURL:        srv.URL,
		CoinID:         "giza",
		Currency:       "usd",
		RequestTimeout: time.Second,
		HistoryDays:    30,
	}
	p := New(cfg, time.Minute, cache.NewMemoryStore(), testLogger())
	warnings := captureWarnings(p)

	m := p.GetTokenMetrics(context.Background())

	assert.Equal(t, models.SourceDemo, m.Source)
	require.Len(t, *warnings, 1)
	assert.Equal(t, models.WarnNetwork, (*warnings)[0].Kind)
}

func TestFallbackOnTimeout(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, validCoinPayload)
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.CoinGeckoConfig{
		BaseURL:        srv.URL,
		CoinID:         "giza",
		Currency:       "usd",
		RequestTimeout: 20 * time.Millisecond,
		HistoryDays:    30,
	}
	p := New(cfg, time.Minute, cache.NewMemoryStore(), testLogger())
	warnings := captureWarnings(p)

	m := p.GetTokenMetrics(context.Background())

	assert.Equal(t, models.SourceDemo, m.Source)
	require.Len(t, *warnings, 1)
	assert.Equal(t, models.WarnNetwork, (*warnings)[0].Kind)
}

func TestFallbackOnMalformedPayload(t *testing.T) {
	p := newTestProvider(t, coinHandler("<html>rate limited</html>", http.StatusOK), time.Minute)
	warnings := captureWarnings(p)

	m := p.GetTokenMetrics(context.Background())

	assert.Equal(t, models.SourceDemo, m.Source)
	require.Len(t, *warnings, 1)
	assert.Equal(t, models.WarnSchema, (*warnings)[0].Kind)
}

func TestFallbackOnMissingPrice(t *testing.T) {
	p := newTestProvider(t, coinHandler(`{"id": "giza", "market_data": {}}`, http.StatusOK), time.Minute)
	warnings := captureWarnings(p)

	m := p.GetTokenMetrics(context.Background())

	assert.Equal(t, models.SourceDemo, m.Source)
	require.Len(t, *warnings, 1)
	assert.Equal(t, models.WarnSchema, (*warnings)[0].Kind)
}

func TestFallbackIsNotCached(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if atomic.LoadInt32(&calls) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, validCoinPayload)
	})
	p := newTestProvider(t, handler, time.Minute)
	captureWarnings(p)

	first := p.GetTokenMetrics(context.Background())
	second := p.GetTokenMetrics(context.Background())

	assert.Equal(t, models.SourceDemo, first.Source)
	assert.Equal(t, models.SourceLive, second.Source, "demo fallback must not poison the cache")
}

func TestNegativeFieldsClamped(t *testing.T) {
	payload := `{
		"id": "giza",
		"market_cap_rank": 1319,
		"market_data": {
			"current_price": {"usd": 0.1762},
			"price_change_percentage_24h": -7.40,
			"market_cap": {"usd": -5},
			"total_volume": {"usd": -1}
		}
	}`
	p := newTestProvider(t, coinHandler(payload, http.StatusOK), time.Minute)

	m := p.GetTokenMetrics(context.Background())

	assert.Equal(t, models.SourceLive, m.Source)
	assert.Zero(t, m.MarketCap)
	assert.Zero(t, m.Volume24h)
	assert.Equal(t, -7.40, m.PriceChange24h, "percent changes stay signed")
}

func TestGetPriceHistoryOrderingAndLength(t *testing.T) {
	// Out of order with one duplicate timestamp
	payload := `{
		"prices": [[2000, 0.2], [1000, 0.1], [3000, 0.3], [1000, 0.15]],
		"total_volumes": [[1000, 10], [2000, 20]]
	}`
	p := newTestProvider(t, coinHandler(payload, http.StatusOK), time.Minute)
	warnings := captureWarnings(p)

	points := p.GetPriceHistory(context.Background(), 30)

	require.Len(t, points, 3)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Timestamp.After(points[i-1].Timestamp),
			"timestamps must be strictly increasing")
	}
	assert.Equal(t, 0.1, points[0].Price, "first sample wins on duplicate timestamps")
	assert.Equal(t, 10.0, points[0].Volume)
	assert.Equal(t, 20.0, points[1].Volume)
	assert.Zero(t, points[2].Volume, "missing volume sample pairs as zero")
	assert.Empty(t, *warnings)
}

func TestGetPriceHistoryCachesPerWindow(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, validChartPayload)
	})
	p := newTestProvider(t, handler, time.Minute)

	p.GetPriceHistory(context.Background(), 30)
	p.GetPriceHistory(context.Background(), 30)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	p.GetPriceHistory(context.Background(), 7)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "different window is a different cache key")
}

func TestGetPriceHistoryFallback(t *testing.T) {
	p := newTestProvider(t, coinHandler("not found", http.StatusNotFound), time.Minute)
	warnings := captureWarnings(p)

	points := p.GetPriceHistory(context.Background(), 30)

	require.Len(t, points, 14)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Timestamp.After(points[i-1].Timestamp))
	}
	require.Len(t, *warnings, 1)
	assert.Equal(t, models.WarnProtocol, (*warnings)[0].Kind)
}

func TestGetPriceHistoryDefaultsWindow(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		fmt.Fprint(w, validChartPayload)
	})
	p := newTestProvider(t, handler, time.Minute)

	p.GetPriceHistory(context.Background(), 0)

	assert.Contains(t, gotPath, "days=30")
}
