package models

import (
	"time"
)

// Source markers for a TokenMetrics snapshot.
const (
	SourceLive = "live"
	SourceDemo = "demo"
)

// TokenMetrics is an immutable market snapshot for the tracked token.
// All monetary fields are denominated in the configured quote currency.
// MaxSupply of 0 means the upstream reports no supply cap.
type TokenMetrics struct {
	Price             float64   `json:"price"`
	PriceChange24h    float64   `json:"price_change_24h"` // percent, signed
	PriceChange7d     float64   `json:"price_change_7d"`  // percent, signed
	MarketCap         float64   `json:"market_cap"`
	Volume24h         float64   `json:"volume_24h"`
	CirculatingSupply float64   `json:"circulating_supply"`
	TotalSupply       float64   `json:"total_supply"`
	MaxSupply         float64   `json:"max_supply,omitempty"`
	FDV               float64   `json:"fdv"`
	Rank              int       `json:"rank"`
	ATH               float64   `json:"ath"`
	ATHDate           time.Time `json:"ath_date"`
	ATL               float64   `json:"atl"`
	ATLDate           time.Time `json:"atl_date"`
	FetchedAt         time.Time `json:"fetched_at"`
	Source            string    `json:"source"`
}

// SupplyInvariantViolated reports whether the snapshot claims more coins in
// circulation than exist in total. Such payloads are served anyway; callers
// are expected to flag them.
func (m *TokenMetrics) SupplyInvariantViolated() bool {
	return m.TotalSupply > 0 && m.TotalSupply < m.CirculatingSupply
}

// PricePoint is a single sample of a token price series.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
}

// Ratios holds the derived financial ratios rendered on the dashboard.
// All values are plain fractions (0.1063, not 10.63%).
type Ratios struct {
	VolumeToMarketCap float64 `json:"volume_to_market_cap"`
	CirculatingRatio  float64 `json:"circulating_ratio"`
	PriceVsATH        float64 `json:"price_vs_ath"`
	PriceVsATL        float64 `json:"price_vs_atl"`
	MarketCapToFDV    float64 `json:"market_cap_to_fdv"`
	AUAToMarketCap    float64 `json:"aua_to_market_cap"`
}

// Warning kinds emitted by the metrics provider.
const (
	WarnNetwork  = "network"
	WarnProtocol = "protocol"
	WarnSchema   = "schema"
)

// FetchWarning is the non-fatal signal emitted when a fetch falls back to
// demo data.
type FetchWarning struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
