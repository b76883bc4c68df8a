package reporter

import (
	"fmt"
	"io"
	"time"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// Format represents the output format
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// Report contains all data for rendering one simulation run
type Report struct {
	ZoneID      string
	ZoneName    string
	GeneratedAt time.Time
	Risk        *models.RiskSnapshot
	Result      *models.SimulationResult

	// Derived
	DailyCostNoActionUSD   float64
	DailyCostWithActionUSD float64
	FallbackPricing        bool
	PlantTypeStats         map[string]*PlantTypeStats
	CoolingTypeStats       map[string]*CoolingTypeStats
}

// PlantTypeStats holds per-technology aggregates
type PlantTypeStats struct {
	PlantType  string
	Count      int
	CapacityMW float64
	SavingsUSD float64
}

// CoolingTypeStats holds per-cooling-technology aggregates
type CoolingTypeStats struct {
	CoolingType string
	Count       int
	CapacityMW  float64
	SavingsUSD  float64
}

// Reporter renders simulation results
type Reporter struct {
	format Format
}

// New creates a new reporter
func New(format Format) *Reporter {
	return &Reporter{
		format: format,
	}
}

// Generate builds a report from a simulation result
func (r *Reporter) Generate(result *models.SimulationResult, risk *models.RiskSnapshot, zoneName string) (*Report, error) {
	if result == nil {
		return nil, fmt.Errorf("nil simulation result")
	}
	report := &Report{
		ZoneID:           result.ZoneID,
		ZoneName:         zoneName,
		GeneratedAt:      time.Now(),
		Risk:             risk,
		Result:           result,
		PlantTypeStats:   make(map[string]*PlantTypeStats),
		CoolingTypeStats: make(map[string]*CoolingTypeStats),
	}

	r.calculateStats(report)

	return report, nil
}

// Render writes the report in the reporter's format
func (r *Reporter) Render(report *Report, w io.Writer) error {
	switch r.format {
	case FormatCSV:
		return GenerateCSV(report, w)
	case FormatMarkdown:
		return GenerateMarkdown(report, w)
	case FormatText, "":
		return GenerateText(report, w)
	default:
		return fmt.Errorf("unknown report format %q", r.format)
	}
}

// calculateStats computes derived figures for the report
func (r *Reporter) calculateStats(report *Report) {
	res := report.Result

	if res.ProjectionDays > 0 {
		report.DailyCostNoActionUSD = res.NoAction.TotalCostUSD / float64(res.ProjectionDays)
		report.DailyCostWithActionUSD = res.WithAction.TotalCostUSD / float64(res.ProjectionDays)
	}
	report.FallbackPricing = res.PriceQuoteUsed.IsFallback()

	for _, plant := range res.PerPlantBreakdown {
		pt := string(plant.PlantType)
		if pt == "" {
			pt = "unknown"
		}
		if _, exists := report.PlantTypeStats[pt]; !exists {
			report.PlantTypeStats[pt] = &PlantTypeStats{
				PlantType: pt,
			}
		}
		ptStat := report.PlantTypeStats[pt]
		ptStat.Count++
		ptStat.CapacityMW += plant.CapacityMW
		ptStat.SavingsUSD += plant.SavingsUSD
	}
}

// AddCoolingStats folds cooling technology aggregates into the report.
// The per-plant breakdown does not carry cooling types, so the caller
// passes the plant roster the run was simulated with.
func (report *Report) AddCoolingStats(plants []models.PowerPlant) {
	byID := make(map[string]models.PowerPlant, len(plants))
	for _, p := range plants {
		byID[p.ID] = p
	}
	for _, plant := range report.Result.PerPlantBreakdown {
		roster, ok := byID[plant.PlantID]
		if !ok {
			continue
		}
		ct := string(roster.CoolingType)
		if ct == "" {
			ct = "unknown"
		}
		if _, exists := report.CoolingTypeStats[ct]; !exists {
			report.CoolingTypeStats[ct] = &CoolingTypeStats{
				CoolingType: ct,
			}
		}
		ctStat := report.CoolingTypeStats[ct]
		ctStat.Count++
		ctStat.CapacityMW += plant.CapacityMW
		ctStat.SavingsUSD += plant.SavingsUSD
	}
}
