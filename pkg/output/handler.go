// Package output renders simulation outcomes for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// Handler defines the interface for CLI output formatting
type Handler interface {
	DisplayResult(result *models.SimulationResult) error
	DisplaySummary(totalSavingsUSD float64, zones int) error
	Format() string
}

// New returns the handler for a format name
func New(format string, w io.Writer) (Handler, error) {
	switch format {
	case "json":
		return &JSONHandler{w: w}, nil
	case "text", "":
		return &TextHandler{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// TextHandler writes a compact human-readable summary
type TextHandler struct {
	w io.Writer
}

func (h *TextHandler) Format() string { return "text" }

func (h *TextHandler) DisplayResult(result *models.SimulationResult) error {
	fmt.Fprintf(h.w, "Zone %s: %d plant(s), %.1f MW, %d day horizon\n",
		result.ZoneID, result.PlantsAnalyzed, result.TotalCapacityMW, result.ProjectionDays)
	fmt.Fprintf(h.w, "  No action:   $%.2f (%.1f%% effective loss)\n",
		result.NoAction.TotalCostUSD, result.NoAction.CapacityLossPct)
	fmt.Fprintf(h.w, "  With action: $%.2f (%.1f%% effective loss)\n",
		result.WithAction.TotalCostUSD, result.WithAction.CapacityLossPct)
	fmt.Fprintf(h.w, "  Savings:     $%.2f (%.1f%%), selection %s\n",
		result.SavingsUSD, result.SavingsPct, result.SelectionMode)
	fmt.Fprintf(h.w, "  Prices:      %.2f $/MWh, %.2f $/MMBtu (%s)\n",
		result.PriceQuoteUsed.MarginalPriceUSDMWh, result.PriceQuoteUsed.FuelPriceUSDMMBtu,
		result.PriceQuoteUsed.Source)
	for _, action := range result.Actions {
		fmt.Fprintf(h.w, "  Action %s: %.1f%% for %d day(s), priority %d\n",
			action.Code, action.ReductionPercentage, action.DurationDays, action.PriorityLevel)
	}
	if result.Brief != "" {
		fmt.Fprintf(h.w, "  Brief: %s\n", result.Brief)
	}
	return nil
}

func (h *TextHandler) DisplaySummary(totalSavingsUSD float64, zones int) error {
	fmt.Fprintf(h.w, "Total potential savings: $%.2f across %d zone(s)\n", totalSavingsUSD, zones)
	return nil
}

// JSONHandler writes results as indented JSON for scripting
type JSONHandler struct {
	w io.Writer
}

func (h *JSONHandler) Format() string { return "json" }

func (h *JSONHandler) DisplayResult(result *models.SimulationResult) error {
	enc := json.NewEncoder(h.w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (h *JSONHandler) DisplaySummary(totalSavingsUSD float64, zones int) error {
	enc := json.NewEncoder(h.w)
	return enc.Encode(map[string]any{
		"total_savings_usd": totalSavingsUSD,
		"zones":             zones,
	})
}
