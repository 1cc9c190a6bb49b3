package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/giza-dash/pkg/config"
)

// coinGeckoClient handles CoinGecko API interactions for a single coin
type coinGeckoClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logrus.Entry
}

func newCoinGeckoClient(cfg *config.CoinGeckoConfig, logger *logrus.Logger) *coinGeckoClient {
	return &coinGeckoClient{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger.WithField("component", "coingecko"),
	}
}

// coinPayload is the subset of the /coins/{id} response the dashboard uses.
// Monetary fields are keyed by currency code.
type coinPayload struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank int    `json:"market_cap_rank"`
	MarketData    struct {
		CurrentPrice      map[string]float64 `json:"current_price"`
		PriceChange24h    float64            `json:"price_change_percentage_24h"`
		PriceChange7d     float64            `json:"price_change_percentage_7d"`
		MarketCap         map[string]float64 `json:"market_cap"`
		TotalVolume       map[string]float64 `json:"total_volume"`
		CirculatingSupply float64            `json:"circulating_supply"`
		TotalSupply       float64            `json:"total_supply"`
		MaxSupply         float64            `json:"max_supply"`
		FullyDilutedValue map[string]float64 `json:"fully_diluted_valuation"`
		ATH               map[string]float64 `json:"ath"`
		ATHDate           map[string]string  `json:"ath_date"`
		ATL               map[string]float64 `json:"atl"`
		ATLDate           map[string]string  `json:"atl_date"`
	} `json:"market_data"`
}

// marketChartPayload is the /coins/{id}/market_chart response: parallel
// series of [timestamp_ms, value] pairs.
type marketChartPayload struct {
	Prices       [][]float64 `json:"prices"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

// fetchCoin fetches current market data for the coin
func (c *coinGeckoClient) fetchCoin(ctx context.Context, coinID string) (*coinPayload, error) {
	url := fmt.Sprintf("%s/coins/%s?localization=false&tickers=false&market_data=true&community_data=false&developer_data=false",
		c.baseURL, coinID)

	var payload coinPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// fetchMarketChart fetches the price/volume time series for a day window
func (c *coinGeckoClient) fetchMarketChart(ctx context.Context, coinID, currency string, days int) (*marketChartPayload, error) {
	url := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=%d",
		c.baseURL, coinID, currency, days)

	var payload marketChartPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *coinGeckoClient) getJSON(ctx context.Context, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &fetchError{kind: kindNetwork, err: fmt.Errorf("failed to create request: %w", err)}
	}

	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &fetchError{kind: kindNetwork, err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &fetchError{kind: kindProtocol, err: fmt.Errorf("API returned status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &fetchError{kind: kindSchema, err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}
