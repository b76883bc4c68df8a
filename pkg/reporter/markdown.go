package reporter

import (
	"fmt"
	"io"
	"sort"
)

// GenerateMarkdown writes a markdown report
func GenerateMarkdown(report *Report, w io.Writer) error {
	res := report.Result

	name := report.ZoneName
	if name == "" {
		name = report.ZoneID
	}
	fmt.Fprintf(w, "# Drought Cost Projection: %s\n\n", name)
	fmt.Fprintf(w, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	if report.Risk != nil {
		fmt.Fprintf(w, "**Risk:** %s (SPI %.2f, trend %s)\n\n", report.Risk.RiskLevel, report.Risk.SPI6M, report.Risk.Trend)
	}

	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Metric | No Action | With Action |")
	fmt.Fprintln(w, "|---|---:|---:|")
	fmt.Fprintf(w, "| Total cost | $%.2f | $%.2f |\n", res.NoAction.TotalCostUSD, res.WithAction.TotalCostUSD)
	fmt.Fprintf(w, "| Daily cost | $%.2f | $%.2f |\n", report.DailyCostNoActionUSD, report.DailyCostWithActionUSD)
	fmt.Fprintf(w, "| Capacity loss | %.1f%% | %.1f%% |\n", res.NoAction.CapacityLossPct, res.WithAction.CapacityLossPct)
	fmt.Fprintf(w, "| Lost generation | %.1f MWh | %.1f MWh |\n", res.NoAction.LostGenerationMWh, res.WithAction.LostGenerationMWh)
	fmt.Fprintf(w, "| Emergency fuel | $%.2f | $%.2f |\n", res.NoAction.EmergencyFuelCostUSD, res.WithAction.EmergencyFuelCostUSD)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "**Savings: $%.2f (%.1f%%)** over %d days across %d plant(s)\n\n",
		res.SavingsUSD, res.SavingsPct, res.ProjectionDays, res.PlantsAnalyzed)

	fmt.Fprintf(w, "Prices: %.2f $/MWh energy, %.2f $/MMBtu fuel, source `%s`",
		res.PriceQuoteUsed.MarginalPriceUSDMWh, res.PriceQuoteUsed.FuelPriceUSDMMBtu, res.PriceQuoteUsed.Source)
	if report.FallbackPricing {
		fmt.Fprint(w, " (fallback, figures are indicative only)")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	if len(res.Actions) > 0 {
		fmt.Fprintf(w, "## Actions (%s)\n\n", res.SelectionMode)
		fmt.Fprintln(w, "| Action | Reduction | Duration | Priority | Source |")
		fmt.Fprintln(w, "|---|---:|---:|---:|---|")
		for _, action := range res.Actions {
			source := action.SourceHeuristic
			if source == "" {
				source = "operator"
			}
			fmt.Fprintf(w, "| %s (%s) | %.1f%% | %d days | %d | %s |\n",
				action.Name, action.Code, action.ReductionPercentage, action.DurationDays, action.PriorityLevel, source)
		}
		fmt.Fprintln(w)
	}

	if len(res.PerPlantBreakdown) > 0 {
		fmt.Fprintln(w, "## Plants")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Plant | Type | Capacity | No Action | With Action | Savings |")
		fmt.Fprintln(w, "|---|---|---:|---:|---:|---:|")
		for _, plant := range res.PerPlantBreakdown {
			fmt.Fprintf(w, "| %s | %s | %.1f MW | $%.2f | $%.2f | $%.2f |\n",
				plant.Name, plant.PlantType, plant.CapacityMW,
				plant.NoAction.TotalCostUSD, plant.WithAction.TotalCostUSD, plant.SavingsUSD)
		}
		fmt.Fprintln(w)
	}

	if len(report.PlantTypeStats) > 0 {
		fmt.Fprintln(w, "## By Plant Type")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Type | Plants | Capacity | Savings |")
		fmt.Fprintln(w, "|---|---:|---:|---:|")
		types := make([]string, 0, len(report.PlantTypeStats))
		for pt := range report.PlantTypeStats {
			types = append(types, pt)
		}
		sort.Strings(types)
		for _, pt := range types {
			stat := report.PlantTypeStats[pt]
			fmt.Fprintf(w, "| %s | %d | %.1f MW | $%.2f |\n", stat.PlantType, stat.Count, stat.CapacityMW, stat.SavingsUSD)
		}
		fmt.Fprintln(w)
	}

	if res.Brief != "" {
		fmt.Fprintln(w, "## Brief")
		fmt.Fprintln(w)
		fmt.Fprintln(w, res.Brief)
	}

	return nil
}
