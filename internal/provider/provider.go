// Package provider fetches token market data from a CoinGecko-style price
// index. Its exported methods are total: any network, protocol, or schema
// failure resolves to a deterministic demo dataset plus a warning signal,
// never an error.
package provider

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/giza-dash/internal/cache"
	"github.com/giza-dash/pkg/config"
	"github.com/giza-dash/pkg/models"
)

// Warning kinds, matching models.Warn* constants.
const (
	kindNetwork  = models.WarnNetwork
	kindProtocol = models.WarnProtocol
	kindSchema   = models.WarnSchema
)

// fetchError carries the failure taxonomy across the client boundary
type fetchError struct {
	kind string
	err  error
}

func (e *fetchError) Error() string { return e.err.Error() }
func (e *fetchError) Unwrap() error { return e.err }

// Provider serves token metrics and price history, cache-first, with demo
// fallback. Concurrent refreshes are not coalesced; the last completed fetch
// wins the cache slot.
type Provider struct {
	client *coinGeckoClient
	store  cache.Store
	cfg    *config.CoinGeckoConfig
	ttl    time.Duration
	logger *logrus.Entry
	now    func() time.Time

	// OnWarning is invoked for every fetch that falls back to demo data.
	// The default hook logs at warn level.
	OnWarning func(models.FetchWarning)
}

// New creates a metrics provider backed by the given cache store
func New(cfg *config.CoinGeckoConfig, ttl time.Duration, store cache.Store, logger *logrus.Logger) *Provider {
	p := &Provider{
		client: newCoinGeckoClient(cfg, logger),
		store:  store,
		cfg:    cfg,
		ttl:    ttl,
		logger: logger.WithField("component", "provider"),
		now:    time.Now,
	}
	p.OnWarning = func(w models.FetchWarning) {
		p.logger.WithFields(logrus.Fields{
			"kind":  w.Kind,
			"error": w.Message,
		}).Warn("Falling back to demo data")
	}
	return p
}

// GetTokenMetrics returns the current market snapshot for the configured
// coin. Never fails: cache hit, live fetch, or demo fallback, in that order.
func (p *Provider) GetTokenMetrics(ctx context.Context) *models.TokenMetrics {
	key := cache.MetricsKey(p.cfg.CoinID)

	if cached, found, err := p.store.GetMetrics(ctx, key); err != nil {
		p.logger.WithError(err).Debug("Cache read failed")
	} else if found {
		return cached
	}

	metrics, err := p.fetchMetrics(ctx)
	if err != nil {
		p.warn(err)
		return DemoMetrics(p.now())
	}

	if err := p.store.SetMetrics(ctx, key, metrics, p.ttl); err != nil {
		p.logger.WithError(err).Warn("Cache write failed")
	}

	return metrics
}

// GetPriceHistory returns the price series for the given day window
// (the configured default when days <= 0). Never fails.
func (p *Provider) GetPriceHistory(ctx context.Context, days int) []models.PricePoint {
	if days <= 0 {
		days = p.cfg.HistoryDays
	}
	key := cache.HistoryKey(p.cfg.CoinID, days)

	if cached, found, err := p.store.GetHistory(ctx, key); err != nil {
		p.logger.WithError(err).Debug("Cache read failed")
	} else if found {
		return cached
	}

	points, err := p.fetchHistory(ctx, days)
	if err != nil {
		p.warn(err)
		return DemoHistory()
	}

	if err := p.store.SetHistory(ctx, key, points, p.ttl); err != nil {
		p.logger.WithError(err).Warn("Cache write failed")
	}

	return points
}

// fetchMetrics is the fallible half of GetTokenMetrics: fetch + normalize,
// error branch mapped to the fallback by the caller.
func (p *Provider) fetchMetrics(ctx context.Context) (*models.TokenMetrics, error) {
	payload, err := p.client.fetchCoin(ctx, p.cfg.CoinID)
	if err != nil {
		return nil, err
	}
	return p.normalizeMetrics(payload)
}

func (p *Provider) fetchHistory(ctx context.Context, days int) ([]models.PricePoint, error) {
	payload, err := p.client.fetchMarketChart(ctx, p.cfg.CoinID, p.cfg.Currency, days)
	if err != nil {
		return nil, err
	}
	return normalizeHistory(payload)
}

// normalizeMetrics converts the upstream payload into a snapshot. A zero
// current price means the payload is unusable and is treated as a schema
// failure; everything else degrades field by field.
func (p *Provider) normalizeMetrics(payload *coinPayload) (*models.TokenMetrics, error) {
	cur := p.cfg.Currency
	md := payload.MarketData

	price := md.CurrentPrice[cur]
	if price <= 0 {
		return nil, &fetchError{kind: kindSchema, err: errMissingPrice}
	}

	m := &models.TokenMetrics{
		Price:             price,
		PriceChange24h:    md.PriceChange24h,
		PriceChange7d:     md.PriceChange7d,
		MarketCap:         clampNonNegative(md.MarketCap[cur]),
		Volume24h:         clampNonNegative(md.TotalVolume[cur]),
		CirculatingSupply: clampNonNegative(md.CirculatingSupply),
		TotalSupply:       clampNonNegative(md.TotalSupply),
		MaxSupply:         clampNonNegative(md.MaxSupply),
		FDV:               clampNonNegative(md.FullyDilutedValue[cur]),
		Rank:              payload.MarketCapRank,
		ATH:               clampNonNegative(md.ATH[cur]),
		ATHDate:           parseISOTime(md.ATHDate[cur]),
		ATL:               clampNonNegative(md.ATL[cur]),
		ATLDate:           parseISOTime(md.ATLDate[cur]),
		FetchedAt:         p.now(),
		Source:            models.SourceLive,
	}

	if m.SupplyInvariantViolated() {
		p.logger.WithFields(logrus.Fields{
			"circulating": m.CirculatingSupply,
			"total":       m.TotalSupply,
		}).Warn("Upstream reports more circulating than total supply")
	}

	return m, nil
}

var errMissingPrice = errors.New("payload missing current price")

// normalizeHistory pairs the price and volume series by timestamp, sorts
// ascending, and drops duplicate timestamps. Points without a matching
// volume sample get volume 0.
func normalizeHistory(payload *marketChartPayload) ([]models.PricePoint, error) {
	if len(payload.Prices) == 0 {
		return nil, &fetchError{kind: kindSchema, err: errors.New("payload missing price series")}
	}

	volumes := make(map[int64]float64, len(payload.TotalVolumes))
	for _, pair := range payload.TotalVolumes {
		if len(pair) == 2 {
			volumes[int64(pair[0])] = pair[1]
		}
	}

	points := make([]models.PricePoint, 0, len(payload.Prices))
	seen := make(map[int64]bool, len(payload.Prices))
	for _, pair := range payload.Prices {
		if len(pair) != 2 {
			return nil, &fetchError{kind: kindSchema, err: errors.New("malformed price sample")}
		}
		ms := int64(pair[0])
		if seen[ms] {
			continue
		}
		seen[ms] = true
		points = append(points, models.PricePoint{
			Timestamp: time.UnixMilli(ms).UTC(),
			Price:     pair[1],
			Volume:    volumes[ms],
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	return points, nil
}

func (p *Provider) warn(err error) {
	kind := kindNetwork
	var fe *fetchError
	if errors.As(err, &fe) {
		kind = fe.kind
	}
	p.OnWarning(models.FetchWarning{
		Kind:      kind,
		Message:   err.Error(),
		Timestamp: p.now(),
	})
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func parseISOTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
