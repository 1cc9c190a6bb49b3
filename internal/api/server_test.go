package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giza-dash/internal/cache"
	"github.com/giza-dash/internal/provider"
	"github.com/giza-dash/pkg/config"
)

const upstreamCoinPayload = `{
	"id": "giza",
	"market_cap_rank": 1319,
	"market_data": {
		"current_price": {"usd": 0.1762},
		"price_change_percentage_24h": -7.40,
		"market_cap": {"usd": 18720000},
		"total_volume": {"usd": 3540038},
		"circulating_supply": 88691142,
		"total_supply": 1000000000,
		"fully_diluted_valuation": {"usd": 176200000},
		"ath": {"usd": 0.49},
		"atl": {"usd": 0.073}
	}
}`

const upstreamChartPayload = `{
	"prices": [[1735689600000, 0.073], [1736899200000, 0.089]],
	"total_volumes": [[1735689600000, 1200000], [1736899200000, 1500000]]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/coins/giza" {
			fmt.Fprint(w, upstreamCoinPayload)
			return
		}
		fmt.Fprint(w, upstreamChartPayload)
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		CoinGecko: config.CoinGeckoConfig{
			BaseURL:        upstream.URL,
			CoinID:         "giza",
			Currency:       "usd",
			RequestTimeout: 2 * time.Second,
			HistoryDays:    30,
		},
		Cache:    config.CacheConfig{Backend: "memory", TTL: time.Minute},
		Security: config.SecurityConfig{CORSEnabled: false},
		Protocol: config.ProtocolConfig{AssetsUnderAgents: 11500000},
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	p := provider.New(&cfg.CoinGecko, cfg.Cache.TTL, cache.NewMemoryStore(), log)
	return NewServer(cfg, log, p)
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/v1/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "live", body["data_source"])
	assert.Equal(t, "memory", body["cache_backend"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/v1/token/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0.1762, body["price"])
	assert.Equal(t, float64(1319), body["rank"])
	assert.Equal(t, "live", body["source"])
}

func TestRatiosEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/v1/token/ratios")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Source string `json:"source"`
		Ratios struct {
			MarketCapToFDV float64 `json:"market_cap_to_fdv"`
			PriceVsATH     float64 `json:"price_vs_ath"`
		} `json:"ratios"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "live", body.Source)
	assert.InDelta(t, 0.1063, body.Ratios.MarketCapToFDV, 0.0001)
	assert.InDelta(t, -0.6404, body.Ratios.PriceVsATH, 0.0001)
}

func TestHistoryEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/v1/token/history?days=7")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Coin  string `json:"coin"`
		Days  int    `json:"days"`
		Count int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "giza", body.Coin)
	assert.Equal(t, 7, body.Days)
	assert.Equal(t, 2, body.Count)
}

func TestHistoryEndpointRejectsBadWindow(t *testing.T) {
	s := newTestServer(t)

	for _, days := range []string{"abc", "0", "-3", "9999"} {
		rec := doRequest(t, s, "/api/v1/token/history?days="+days)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "days=%s", days)
	}
}

func TestProtocolEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/v1/protocol/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, float64(7000), stats["active_agents"])

	rec = doRequest(t, s, "/api/v1/protocol/growth")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, "/api/v1/token/distribution")
	require.Equal(t, http.StatusOK, rec.Code)
	var slices []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slices))
	assert.Len(t, slices, 5)
}

func TestUnknownRouteReturns404(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
