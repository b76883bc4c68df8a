// Package simulation projects drought-driven generation losses into daily
// costs over a horizon, comparing a no-action trajectory against one where
// the selected mitigation plan takes effect.
package simulation

import (
	"fmt"
	"math"
	"sort"

	"github.com/hidrica/drought-cost-engine/pkg/actions"
	"github.com/hidrica/drought-cost-engine/pkg/capacity"
	"github.com/hidrica/drought-cost-engine/pkg/converter"
	"github.com/hidrica/drought-cost-engine/pkg/models"
	"github.com/hidrica/drought-cost-engine/pkg/spi"
)

const (
	// Projection window bounds in days
	MinProjectionDays = 1
	MaxProjectionDays = 365

	// emergencyFuelThreshold is the daily loss fraction above which lost
	// generation must be replaced with fuel purchases
	emergencyFuelThreshold = 0.30

	// fuelEnergyConversion is the MMBtu of replacement fuel burned per
	// lost MWh, roughly an open-cycle gas turbine heat rate
	fuelEnergyConversion = 8.0

	// improvementPerEffectDay converts a mitigation plan's expected effect
	// days into SPI improvement at full ramp
	improvementPerEffectDay = 0.05

	// SPI trajectories stay inside the plausible index range
	spiFloor   = -3.5
	spiCeiling = 3.5

	// criticalBandSPI anchors the theoretical worst-case denominator used
	// for capacity loss percentages
	criticalBandSPI = -2.0
)

// Simulate runs both scenarios for a zone. It is pure: identical inputs
// produce identical results, so callers own clock and persistence.
func Simulate(zone *models.Zone, plants []models.PowerPlant, sel actions.Selection, quote *models.PriceQuote, days int) (*models.SimulationResult, error) {
	if zone == nil {
		return nil, fmt.Errorf("zone is required: %w", models.ErrInvalidInput)
	}
	if math.IsNaN(zone.CurrentSPI6M) || math.IsInf(zone.CurrentSPI6M, 0) {
		return nil, fmt.Errorf("zone %s SPI %v is not a finite value: %w", zone.ID, zone.CurrentSPI6M, models.ErrInvalidInput)
	}
	if days < MinProjectionDays || days > MaxProjectionDays {
		return nil, fmt.Errorf("projection window %d outside [%d, %d]: %w",
			days, MinProjectionDays, MaxProjectionDays, models.ErrInvalidProjectionWindow)
	}
	if quote == nil {
		return nil, fmt.Errorf("price quote is required: %w", models.ErrInvalidInput)
	}
	if quote.MarginalPriceUSDMWh <= 0 || quote.FuelPriceUSDMMBtu <= 0 {
		return nil, fmt.Errorf("quote prices %.2f/%.2f must be positive: %w",
			quote.MarginalPriceUSDMWh, quote.FuelPriceUSDMMBtu, models.ErrInvalidInput)
	}

	active := make([]models.PowerPlant, 0, len(plants))
	for _, p := range plants {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("zone %s has no active plants: %w", zone.ID, models.ErrNoPlantsAvailable)
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	improvement := totalImprovement(sel)
	drift := zone.Trend.DriftPerDay()

	result := &models.SimulationResult{
		ZoneID:         zone.ID,
		PlantsAnalyzed: len(active),
		ProjectionDays: days,
		PriceQuoteUsed: *quote,
		SelectionMode:  sel.Mode,
		Actions:        sel.Actions,
	}

	var worstCaseTotal float64
	for _, plant := range active {
		result.TotalCapacityMW += plant.CapacityMW

		breakdown := models.PlantBreakdown{
			PlantID:    plant.ID,
			Name:       plant.Name,
			PlantType:  plant.PlantType,
			CapacityMW: plant.CapacityMW,
		}

		for d := 0; d < days; d++ {
			spiNoAction := clampSPI(zone.CurrentSPI6M + drift*float64(d))
			ramp := improvement * float64(d+1) / float64(days)
			spiWithAction := clampSPI(spiNoAction + ramp)

			if err := accumulateDay(&breakdown.NoAction, plant, spiNoAction, quote); err != nil {
				return nil, err
			}
			if err := accumulateDay(&breakdown.WithAction, plant, spiWithAction, quote); err != nil {
				return nil, err
			}
		}

		worstCase := worstCaseCost(plant, quote) * float64(days)
		breakdown.NoAction.CapacityLossPct = lossPct(breakdown.NoAction.TotalCostUSD, worstCase)
		breakdown.WithAction.CapacityLossPct = lossPct(breakdown.WithAction.TotalCostUSD, worstCase)
		breakdown.SavingsUSD = breakdown.NoAction.TotalCostUSD - breakdown.WithAction.TotalCostUSD

		worstCaseTotal += worstCase
		result.NoAction.TotalCostUSD += breakdown.NoAction.TotalCostUSD
		result.NoAction.EmergencyFuelCostUSD += breakdown.NoAction.EmergencyFuelCostUSD
		result.NoAction.LostGenerationMWh += breakdown.NoAction.LostGenerationMWh
		result.WithAction.TotalCostUSD += breakdown.WithAction.TotalCostUSD
		result.WithAction.EmergencyFuelCostUSD += breakdown.WithAction.EmergencyFuelCostUSD
		result.WithAction.LostGenerationMWh += breakdown.WithAction.LostGenerationMWh

		result.PerPlantBreakdown = append(result.PerPlantBreakdown, breakdown)
	}

	result.NoAction.CapacityLossPct = lossPct(result.NoAction.TotalCostUSD, worstCaseTotal)
	result.WithAction.CapacityLossPct = lossPct(result.WithAction.TotalCostUSD, worstCaseTotal)
	result.SavingsUSD = result.NoAction.TotalCostUSD - result.WithAction.TotalCostUSD
	if result.NoAction.TotalCostUSD != 0 {
		result.SavingsPct = result.SavingsUSD / result.NoAction.TotalCostUSD * 100
	}
	return result, nil
}

// totalImprovement is the SPI gain the with-action trajectory ramps toward
// by the end of the horizon
func totalImprovement(sel actions.Selection) float64 {
	switch sel.Mode {
	case models.SelectionExplicit, models.SelectionHeuristic:
		return improvementPerEffectDay * sel.TotalEffectDays
	case models.SelectionDefaultAssumption:
		return sel.AssumedImprovement
	default:
		return 0
	}
}

// accumulateDay adds one day of losses for one plant into a scenario
func accumulateDay(scenario *models.ScenarioResult, plant models.PowerPlant, spiValue float64, quote *models.PriceQuote) error {
	loss, err := capacity.LossFraction(spi.BaseLoss(spiValue), plant)
	if err != nil {
		return err
	}

	lostMWh := loss * converter.MWToDailyMWh(plant.CapacityMW)
	cost := lostMWh * quote.MarginalPriceUSDMWh
	if loss > emergencyFuelThreshold {
		fuel := converter.FuelCostUSD(lostMWh, quote.FuelPriceUSDMMBtu, fuelEnergyConversion)
		scenario.EmergencyFuelCostUSD += fuel
		cost += fuel
	}

	scenario.TotalCostUSD += cost
	scenario.LostGenerationMWh += lostMWh
	return nil
}

// worstCaseCost is one day of cost for a plant pinned at the critical band,
// the denominator for cost-derived capacity loss percentages
func worstCaseCost(plant models.PowerPlant, quote *models.PriceQuote) float64 {
	loss, err := capacity.LossFraction(spi.BaseLoss(criticalBandSPI), plant)
	if err != nil {
		return 0
	}

	lostMWh := loss * converter.MWToDailyMWh(plant.CapacityMW)
	cost := lostMWh * quote.MarginalPriceUSDMWh
	if loss > emergencyFuelThreshold {
		cost += converter.FuelCostUSD(lostMWh, quote.FuelPriceUSDMMBtu, fuelEnergyConversion)
	}
	return cost
}

func lossPct(cost, worstCase float64) float64 {
	if worstCase == 0 {
		return 0
	}
	pct := cost / worstCase * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func clampSPI(v float64) float64 {
	if v < spiFloor {
		return spiFloor
	}
	if v > spiCeiling {
		return spiCeiling
	}
	return v
}
