package reporter

import (
	"fmt"
	"io"
	"sort"
)

// GenerateText writes a plain text report
func GenerateText(report *Report, w io.Writer) error {
	res := report.Result

	name := report.ZoneName
	if name == "" {
		name = report.ZoneID
	}
	fmt.Fprintf(w, "Drought Cost Projection: %s\n", name)
	fmt.Fprintf(w, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	if report.Risk != nil {
		fmt.Fprintf(w, "Risk: %s (SPI %.2f, trend %s)\n", report.Risk.RiskLevel, report.Risk.SPI6M, report.Risk.Trend)
		if report.Risk.DaysToCritical > 0 {
			fmt.Fprintf(w, "Days to critical: %d\n", report.Risk.DaysToCritical)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Horizon: %d days, %d plant(s), %.1f MW\n", res.ProjectionDays, res.PlantsAnalyzed, res.TotalCapacityMW)
	fmt.Fprintf(w, "Prices: %.2f $/MWh energy, %.2f $/MMBtu fuel (%s)\n",
		res.PriceQuoteUsed.MarginalPriceUSDMWh, res.PriceQuoteUsed.FuelPriceUSDMMBtu, res.PriceQuoteUsed.Source)
	if report.FallbackPricing {
		fmt.Fprintln(w, "[WARN] Fallback pricing in effect, figures are indicative only")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "No action:   $%.2f total ($%.2f/day), %.1f%% capacity loss, %.1f MWh lost\n",
		res.NoAction.TotalCostUSD, report.DailyCostNoActionUSD, res.NoAction.CapacityLossPct, res.NoAction.LostGenerationMWh)
	fmt.Fprintf(w, "With action: $%.2f total ($%.2f/day), %.1f%% capacity loss, %.1f MWh lost\n",
		res.WithAction.TotalCostUSD, report.DailyCostWithActionUSD, res.WithAction.CapacityLossPct, res.WithAction.LostGenerationMWh)
	fmt.Fprintf(w, "Savings:     $%.2f (%.1f%%)\n\n", res.SavingsUSD, res.SavingsPct)

	if res.NoAction.EmergencyFuelCostUSD > 0 || res.WithAction.EmergencyFuelCostUSD > 0 {
		fmt.Fprintf(w, "Emergency fuel: $%.2f without action, $%.2f with action\n\n",
			res.NoAction.EmergencyFuelCostUSD, res.WithAction.EmergencyFuelCostUSD)
	}

	if len(res.Actions) > 0 {
		fmt.Fprintf(w, "Actions applied (%s):\n", res.SelectionMode)
		for i, action := range res.Actions {
			fmt.Fprintf(w, "%d. %s (%s)\n", i+1, action.Name, action.Code)
			fmt.Fprintf(w, "   Reduction: %.1f%% over %d days (priority %d)\n",
				action.ReductionPercentage, action.DurationDays, action.PriorityLevel)
			fmt.Fprintf(w, "   Reason: %s\n", action.Justification)
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintf(w, "Actions applied: none (%s)\n\n", res.SelectionMode)
	}

	if len(res.PerPlantBreakdown) > 0 {
		fmt.Fprintln(w, "Per plant:")
		for i, plant := range res.PerPlantBreakdown {
			fmt.Fprintf(w, "%d. %s (%s, %.1f MW)\n", i+1, plant.Name, plant.PlantType, plant.CapacityMW)
			fmt.Fprintf(w, "   No action: $%.2f   With action: $%.2f   Savings: $%.2f\n",
				plant.NoAction.TotalCostUSD, plant.WithAction.TotalCostUSD, plant.SavingsUSD)
		}
		fmt.Fprintln(w)
	}

	if len(report.PlantTypeStats) > 0 {
		fmt.Fprintln(w, "By plant type:")
		types := make([]string, 0, len(report.PlantTypeStats))
		for pt := range report.PlantTypeStats {
			types = append(types, pt)
		}
		sort.Strings(types)
		for _, pt := range types {
			stat := report.PlantTypeStats[pt]
			fmt.Fprintf(w, "   %-16s %d plant(s), %.1f MW, $%.2f savings\n",
				stat.PlantType, stat.Count, stat.CapacityMW, stat.SavingsUSD)
		}
		fmt.Fprintln(w)
	}

	if res.Brief != "" {
		fmt.Fprintln(w, "Brief:")
		fmt.Fprintln(w, res.Brief)
	}

	return nil
}
