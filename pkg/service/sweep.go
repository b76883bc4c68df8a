package service

import (
	"context"
	"fmt"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// SweepOutcome is the per-zone result of a sweep
type SweepOutcome struct {
	ZoneID     string           `json:"zone_id"`
	ZoneName   string           `json:"zone_name"`
	RiskLevel  models.RiskLevel `json:"risk_level"`
	SavingsUSD float64          `json:"savings_usd"`
	Error      string           `json:"error,omitempty"`
}

// SweepSummary aggregates a sweep across the active zone roster
type SweepSummary struct {
	ZonesProcessed  int            `json:"zones_processed"`
	Failures        int            `json:"failures"`
	CriticalZones   []string       `json:"critical_zones,omitempty"`
	TotalSavingsUSD float64        `json:"total_savings_usd"`
	Outcomes        []SweepOutcome `json:"outcomes"`
}

// SweepZones runs the default simulation for every active zone. Zones are
// independent, one failing zone never stops the sweep.
func (s *Service) SweepZones(ctx context.Context, projectionDays int) (*SweepSummary, error) {
	zones, err := s.ListZones(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	fmt.Printf("[INFO] Sweeping %d zone(s) over %d days\n", len(zones), projectionDays)

	summary := &SweepSummary{}
	for _, zone := range zones {
		outcome := SweepOutcome{ZoneID: zone.ID, ZoneName: zone.Name}

		if snap, err := s.GetZoneRisk(ctx, zone.ID); err == nil {
			outcome.RiskLevel = snap.RiskLevel
			if snap.RiskLevel == models.RiskCritical {
				summary.CriticalZones = append(summary.CriticalZones, zone.ID)
			}
		}

		result, err := s.RunSimulation(ctx, models.SimulationRequest{
			ZoneID:         zone.ID,
			ProjectionDays: projectionDays,
		})
		if err != nil {
			fmt.Printf("[WARN] Sweep failed for zone %s: %v\n", zone.ID, err)
			outcome.Error = err.Error()
			summary.Failures++
			summary.Outcomes = append(summary.Outcomes, outcome)
			continue
		}

		outcome.SavingsUSD = result.SavingsUSD
		summary.TotalSavingsUSD += result.SavingsUSD
		summary.ZonesProcessed++
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	fmt.Printf("[INFO] Sweep complete: %d processed, %d failed, $%.2f potential savings\n",
		summary.ZonesProcessed, summary.Failures, summary.TotalSavingsUSD)
	return summary, nil
}
