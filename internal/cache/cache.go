package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/giza-dash/pkg/models"
)

// Store caches fetched market data keyed by operation+parameters.
// A miss is reported as found=false with a nil error; errors are reserved
// for backend failures.
type Store interface {
	GetMetrics(ctx context.Context, key string) (*models.TokenMetrics, bool, error)
	SetMetrics(ctx context.Context, key string, m *models.TokenMetrics, ttl time.Duration) error
	GetHistory(ctx context.Context, key string) ([]models.PricePoint, bool, error)
	SetHistory(ctx context.Context, key string, points []models.PricePoint, ttl time.Duration) error
	Close() error
}

// MetricsKey builds the cache key for the current-metrics operation
func MetricsKey(coinID string) string {
	return fmt.Sprintf("metrics:%s", coinID)
}

// HistoryKey builds the cache key for a price-history window
func HistoryKey(coinID string, days int) string {
	return fmt.Sprintf("history:%s:%d", coinID, days)
}
