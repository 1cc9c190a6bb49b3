// Package protocol serves the static protocol-level figures rendered on the
// dashboard's protocol and tokenomics tabs. The numbers are curated releases,
// not live data, so they live here as versioned constants.
package protocol

import (
	"github.com/giza-dash/pkg/models"
)

// Stats returns the current protocol usage figures
func Stats() models.ProtocolStats {
	return models.ProtocolStats{
		TotalVolumeProcessed:     474000000,
		AssetsUnderAgents:        11500000,
		ActiveAgents:             7000,
		TotalTransactions:        213000,
		AverageAPR:               9.32,
		YieldVsPassive:           83,
		CapitalProductivityIndex: 5.843,
	}
}

// Growth returns the monthly protocol adoption series
func Growth() []models.GrowthPoint {
	return []models.GrowthPoint{
		{Month: "Jan", Agents: 1000, Volume: 50000000, AUA: 2000000},
		{Month: "Feb", Agents: 2100, Volume: 89000000, AUA: 3500000},
		{Month: "Mar", Agents: 3800, Volume: 156000000, AUA: 5200000},
		{Month: "Apr", Agents: 5200, Volume: 234000000, AUA: 7800000},
		{Month: "May", Agents: 6500, Volume: 358000000, AUA: 9200000},
		{Month: "Jun", Agents: 6800, Volume: 421000000, AUA: 10500000},
		{Month: "Jul", Agents: 7000, Volume: 474000000, AUA: 11500000},
	}
}

// Distribution returns the token allocation buckets in millions of tokens
func Distribution() []models.DistributionSlice {
	return []models.DistributionSlice{
		{Name: "Circulating Supply", Value: 88.7},
		{Name: "Team & Advisors", Value: 200},
		{Name: "Ecosystem Fund", Value: 300},
		{Name: "Treasury", Value: 150},
		{Name: "Future Emissions", Value: 261.3},
	}
}
