package models

// ProtocolStats aggregates protocol-level usage figures shown on the
// dashboard's protocol tab.
type ProtocolStats struct {
	TotalVolumeProcessed     float64 `json:"total_volume_processed"`
	AssetsUnderAgents        float64 `json:"assets_under_agents"`
	ActiveAgents             int     `json:"active_agents"`
	TotalTransactions        int     `json:"total_transactions"`
	AverageAPR               float64 `json:"average_apr"`
	YieldVsPassive           float64 `json:"yield_vs_passive"`
	CapitalProductivityIndex float64 `json:"capital_productivity_index"`
}

// GrowthPoint is one month of protocol adoption figures.
type GrowthPoint struct {
	Month  string  `json:"month"`
	Agents int     `json:"agents"`
	Volume float64 `json:"volume"`
	AUA    float64 `json:"aua"`
}

// DistributionSlice is one allocation bucket of the token supply,
// in millions of tokens.
type DistributionSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
