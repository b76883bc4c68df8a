package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
)

// GenerateCSV creates a CSV report
func GenerateCSV(report *Report, writer io.Writer) error {
	w := csv.NewWriter(writer)

	// Write header
	header := []string{
		"Plant ID",
		"Plant",
		"Type",
		"Capacity (MW)",
		"No-Action Cost ($)",
		"With-Action Cost ($)",
		"Savings ($)",
		"No-Action Lost Generation (MWh)",
		"Emergency Fuel Cost ($)",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write per-plant rows
	for _, plant := range report.Result.PerPlantBreakdown {
		row := []string{
			plant.PlantID,
			plant.Name,
			string(plant.PlantType),
			fmt.Sprintf("%.1f", plant.CapacityMW),
			fmt.Sprintf("%.2f", plant.NoAction.TotalCostUSD),
			fmt.Sprintf("%.2f", plant.WithAction.TotalCostUSD),
			fmt.Sprintf("%.2f", plant.SavingsUSD),
			fmt.Sprintf("%.2f", plant.NoAction.LostGenerationMWh),
			fmt.Sprintf("%.2f", plant.NoAction.EmergencyFuelCostUSD),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	res := report.Result

	// Write summary rows
	w.Write([]string{}) // Empty row
	w.Write([]string{"SUMMARY"})
	w.Write([]string{"Zone", report.ZoneID})
	w.Write([]string{"Plants Analyzed", fmt.Sprintf("%d", res.PlantsAnalyzed)})
	w.Write([]string{"Projection Days", fmt.Sprintf("%d", res.ProjectionDays)})
	w.Write([]string{"No-Action Cost", fmt.Sprintf("$%.2f", res.NoAction.TotalCostUSD)})
	w.Write([]string{"With-Action Cost", fmt.Sprintf("$%.2f", res.WithAction.TotalCostUSD)})
	w.Write([]string{"Savings", fmt.Sprintf("$%.2f (%.1f%%)", res.SavingsUSD, res.SavingsPct)})
	w.Write([]string{"Price Source", res.PriceQuoteUsed.Source})

	// Plant type breakdown
	w.Write([]string{}) // Empty row
	w.Write([]string{"PLANT TYPE BREAKDOWN"})
	w.Write([]string{"Type", "Plants", "Capacity (MW)", "Savings"})
	types := make([]string, 0, len(report.PlantTypeStats))
	for pt := range report.PlantTypeStats {
		types = append(types, pt)
	}
	sort.Strings(types)
	for _, pt := range types {
		stat := report.PlantTypeStats[pt]
		w.Write([]string{
			stat.PlantType,
			fmt.Sprintf("%d", stat.Count),
			fmt.Sprintf("%.1f", stat.CapacityMW),
			fmt.Sprintf("$%.2f", stat.SavingsUSD),
		})
	}

	w.Flush()
	return w.Error()
}
