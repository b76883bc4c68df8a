package models

import "time"

// ZoneStats represents aggregate simulation history for one zone
type ZoneStats struct {
	ZoneID           string    `json:"zone_id"`
	PeriodDays       int       `json:"period_days"`
	Runs             int       `json:"runs"`
	TotalSavingsUSD  float64   `json:"total_savings_usd"`
	AvgSavingsPct    float64   `json:"avg_savings_pct"`
	FallbackRuns     int       `json:"fallback_runs"`
	LastRunAt        time.Time `json:"last_run_at"`
	WorstNoActionUSD float64   `json:"worst_no_action_usd"`
}

// SavingsPoint represents one day's aggregated savings across runs
type SavingsPoint struct {
	Date       time.Time `json:"date"`
	Runs       int       `json:"runs"`
	SavingsUSD float64   `json:"savings_usd"`
}
