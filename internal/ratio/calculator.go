// Package ratio derives the dashboard's financial ratios from a metrics
// snapshot. Every function is pure and total: a zero denominator yields 0,
// never an error.
package ratio

import (
	"github.com/giza-dash/pkg/models"
)

// VolumeToMarketCap is 24h traded volume as a fraction of market cap
func VolumeToMarketCap(m *models.TokenMetrics) float64 {
	return safeDivide(m.Volume24h, m.MarketCap)
}

// CirculatingRatio is the circulating share of total supply
func CirculatingRatio(m *models.TokenMetrics) float64 {
	return safeDivide(m.CirculatingSupply, m.TotalSupply)
}

// PriceVsATH is the signed distance from the all-time high, e.g. -0.64
// when the price sits 64% below it
func PriceVsATH(m *models.TokenMetrics) float64 {
	if m.ATH == 0 {
		return 0
	}
	return m.Price/m.ATH - 1
}

// PriceVsATL is the signed distance from the all-time low
func PriceVsATL(m *models.TokenMetrics) float64 {
	if m.ATL == 0 {
		return 0
	}
	return m.Price/m.ATL - 1
}

// MarketCapToFDV is market cap as a fraction of fully diluted valuation
func MarketCapToFDV(m *models.TokenMetrics) float64 {
	return safeDivide(m.MarketCap, m.FDV)
}

// AUAToMarketCap relates protocol assets under agents to the market cap
func AUAToMarketCap(aua float64, m *models.TokenMetrics) float64 {
	return safeDivide(aua, m.MarketCap)
}

// Compute bundles all ratios for one snapshot
func Compute(m *models.TokenMetrics, aua float64) models.Ratios {
	return models.Ratios{
		VolumeToMarketCap: VolumeToMarketCap(m),
		CirculatingRatio:  CirculatingRatio(m),
		PriceVsATH:        PriceVsATH(m),
		PriceVsATL:        PriceVsATL(m),
		MarketCapToFDV:    MarketCapToFDV(m),
		AUAToMarketCap:    AUAToMarketCap(aua, m),
	}
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
