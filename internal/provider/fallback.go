package provider

import (
	"time"

	"github.com/giza-dash/pkg/models"
)

// Demo dataset served whenever the upstream is unreachable or returns a
// payload we cannot trust. Values mirror the token's launch-year figures so
// the dashboard stays plausible offline.
var demoMetrics = models.TokenMetrics{
	Price:             0.1762,
	PriceChange24h:    -7.40,
	PriceChange7d:     -5.10,
	MarketCap:         18720000,
	Volume24h:         3540038,
	CirculatingSupply: 88691142,
	TotalSupply:       1000000000,
	MaxSupply:         1000000000,
	FDV:               176200000,
	Rank:              1319,
	ATH:               0.49,
	ATHDate:           time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	ATL:               0.073,
	ATLDate:           time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	Source:            models.SourceDemo,
}

var demoHistory = []struct {
	date   string
	price  float64
	volume float64
}{
	{"2025-01-01", 0.073, 1200000},
	{"2025-01-15", 0.089, 1500000},
	{"2025-02-01", 0.156, 2100000},
	{"2025-02-15", 0.234, 3200000},
	{"2025-03-01", 0.387, 4800000},
	{"2025-03-15", 0.49, 6100000},
	{"2025-04-01", 0.421, 4900000},
	{"2025-04-15", 0.356, 4200000},
	{"2025-05-01", 0.298, 3800000},
	{"2025-05-15", 0.267, 3100000},
	{"2025-06-01", 0.223, 2900000},
	{"2025-06-15", 0.198, 2600000},
	{"2025-07-01", 0.189, 2400000},
	{"2025-07-17", 0.1762, 3540038},
}

// DemoMetrics returns the deterministic fallback snapshot, stamped with the
// current time so staleness checks downstream still work.
func DemoMetrics(now time.Time) *models.TokenMetrics {
	m := demoMetrics
	m.FetchedAt = now
	return &m
}

// DemoHistory returns the deterministic fallback price series
func DemoHistory() []models.PricePoint {
	points := make([]models.PricePoint, 0, len(demoHistory))
	for _, p := range demoHistory {
		ts, _ := time.Parse("2006-01-02", p.date)
		points = append(points, models.PricePoint{
			Timestamp: ts,
			Price:     p.price,
			Volume:    p.volume,
		})
	}
	return points
}
