package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giza-dash/internal/cache"
	"github.com/giza-dash/internal/provider"
	"github.com/giza-dash/internal/ratio"
	"github.com/giza-dash/pkg/config"
	"github.com/giza-dash/pkg/logger"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Fetch and print the current token snapshot",
	Long:  "One-shot fetch of the token market snapshot and derived ratios, printed as a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			fmt.Printf("Note: %v\n", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err := logger.New(&cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// One-shot run, no reason to reach for Redis
		store := cache.NewMemoryStore()
		p := provider.New(&cfg.CoinGecko, cfg.Cache.TTL, store, log)

		ctx := context.Background()
		m := p.GetTokenMetrics(ctx)
		ratios := ratio.Compute(m, cfg.Protocol.AssetsUnderAgents)

		fmt.Printf("Token: %s (source: %s)\n", cfg.CoinGecko.CoinID, m.Source)
		fmt.Println(strings.Repeat("-", 48))
		fmt.Printf("%-24s %20.6f\n", "Price", m.Price)
		fmt.Printf("%-24s %19.2f%%\n", "Change 24h", m.PriceChange24h)
		fmt.Printf("%-24s %19.2f%%\n", "Change 7d", m.PriceChange7d)
		fmt.Printf("%-24s %20.0f\n", "Market Cap", m.MarketCap)
		fmt.Printf("%-24s %20.0f\n", "Volume 24h", m.Volume24h)
		fmt.Printf("%-24s %20.0f\n", "Circulating Supply", m.CirculatingSupply)
		fmt.Printf("%-24s %20.0f\n", "Total Supply", m.TotalSupply)
		fmt.Printf("%-24s %20.0f\n", "FDV", m.FDV)
		fmt.Printf("%-24s %20d\n", "Rank", m.Rank)
		fmt.Printf("%-24s %20.6f\n", "ATH", m.ATH)
		fmt.Printf("%-24s %20.6f\n", "ATL", m.ATL)
		fmt.Println(strings.Repeat("-", 48))
		fmt.Printf("%-24s %19.2f%%\n", "Volume / Market Cap", ratios.VolumeToMarketCap*100)
		fmt.Printf("%-24s %19.2f%%\n", "Circulating / Total", ratios.CirculatingRatio*100)
		fmt.Printf("%-24s %19.2f%%\n", "Price vs ATH", ratios.PriceVsATH*100)
		fmt.Printf("%-24s %19.2f%%\n", "Price vs ATL", ratios.PriceVsATL*100)
		fmt.Printf("%-24s %19.2f%%\n", "Market Cap / FDV", ratios.MarketCapToFDV*100)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
