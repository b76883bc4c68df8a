package reporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

func sampleResult() *models.SimulationResult {
	return &models.SimulationResult{
		ZoneID:          "hidrica-norte",
		PlantsAnalyzed:  2,
		TotalCapacityMW: 800,
		ProjectionDays:  90,
		NoAction: models.ScenarioResult{
			CapacityLossPct:      60.0,
			TotalCostUSD:         48211200,
			EmergencyFuelCostUSD: 9331200,
			LostGenerationMWh:    388800,
		},
		WithAction: models.ScenarioResult{
			CapacityLossPct:   41.5,
			TotalCostUSD:      33340000,
			LostGenerationMWh: 268900,
		},
		SavingsUSD: 14871200,
		SavingsPct: 30.8,
		PerPlantBreakdown: []models.PlantBreakdown{
			{
				PlantID:    "P1",
				Name:       "Norte Thermo I",
				PlantType:  models.PlantThermoelectric,
				CapacityMW: 500,
				NoAction:   models.ScenarioResult{TotalCostUSD: 30132000},
				WithAction: models.ScenarioResult{TotalCostUSD: 20837500},
				SavingsUSD: 9294500,
			},
			{
				PlantID:    "P2",
				Name:       "Norte Nuclear",
				PlantType:  models.PlantNuclear,
				CapacityMW: 300,
				NoAction:   models.ScenarioResult{TotalCostUSD: 18079200},
				WithAction: models.ScenarioResult{TotalCostUSD: 12502500},
				SavingsUSD: 5576700,
			},
		},
		PriceQuoteUsed: models.PriceQuote{
			MarginalPriceUSDMWh: 128.3,
			FuelPriceUSDMMBtu:   4.15,
			Source:              models.PriceSourceLiveFeed,
		},
		SelectionMode: models.SelectionHeuristic,
		Actions: []models.ActionParameters{
			{
				InstanceID:          "A01-h1",
				BaseActionID:        "A01",
				Code:                "URBAN_RESTRICTION_L1",
				Name:                "Urban Restriction Level 1",
				ReductionPercentage: 5,
				DurationDays:        42,
				PriorityLevel:       3,
				Justification:       "sustained moderate drought",
				SourceHeuristic:     "H1",
			},
		},
	}
}

func TestGenerateComputesStats(t *testing.T) {
	r := New(FormatText)
	report, err := r.Generate(sampleResult(), nil, "Norte")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	wantDaily := 48211200.0 / 90.0
	if report.DailyCostNoActionUSD != wantDaily {
		t.Errorf("Expected daily no-action cost %.2f, got %.2f", wantDaily, report.DailyCostNoActionUSD)
	}
	if report.FallbackPricing {
		t.Error("Expected live feed quote not to count as fallback")
	}
	if len(report.PlantTypeStats) != 2 {
		t.Fatalf("Expected 2 plant type entries, got %d", len(report.PlantTypeStats))
	}
	thermo := report.PlantTypeStats["thermoelectric"]
	if thermo == nil || thermo.Count != 1 || thermo.CapacityMW != 500 {
		t.Errorf("Unexpected thermoelectric stats: %+v", thermo)
	}
}

func TestGenerateNilResult(t *testing.T) {
	r := New(FormatText)
	if _, err := r.Generate(nil, nil, ""); err == nil {
		t.Error("Expected error for nil result")
	}
}

func TestGenerateFallbackFlag(t *testing.T) {
	res := sampleResult()
	res.PriceQuoteUsed.Source = "fallback (reason: feed timeout)"

	r := New(FormatText)
	report, err := r.Generate(res, nil, "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !report.FallbackPricing {
		t.Error("Expected annotated fallback source to set FallbackPricing")
	}
}

func TestRenderText(t *testing.T) {
	r := New(FormatText)
	risk := &models.RiskSnapshot{
		ZoneID:       "hidrica-norte",
		SPI6M:        -1.72,
		RiskLevel:    models.RiskHigh,
		Trend:        models.TrendWorsening,
		CalculatedAt: time.Now(),
	}
	report, err := r.Generate(sampleResult(), risk, "Norte")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(report, &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Drought Cost Projection: Norte",
		"Risk: HIGH (SPI -1.72, trend WORSENING)",
		"Savings:     $14871200.00 (30.8%)",
		"Urban Restriction Level 1",
		"Norte Thermo I",
		"thermoelectric",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected text output to contain %q\n%s", want, out)
		}
	}
}

func TestRenderTextFallbackWarning(t *testing.T) {
	res := sampleResult()
	res.PriceQuoteUsed.Source = "fallback (reason: feed timeout)"

	r := New(FormatText)
	report, _ := r.Generate(res, nil, "")
	var buf bytes.Buffer
	if err := r.Render(report, &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "[WARN] Fallback pricing in effect") {
		t.Error("Expected fallback warning in text output")
	}
}

func TestRenderCSV(t *testing.T) {
	r := New(FormatCSV)
	report, err := r.Generate(sampleResult(), nil, "Norte")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(report, &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := buf.String()
	reader := csv.NewReader(strings.NewReader(out))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) < 3 {
		t.Fatalf("Expected header plus plant rows, got %d records", len(records))
	}
	if records[0][0] != "Plant ID" {
		t.Errorf("Expected header to start with Plant ID, got %s", records[0][0])
	}
	if records[1][0] != "P1" || records[2][0] != "P2" {
		t.Errorf("Expected plant rows P1 and P2, got %s and %s", records[1][0], records[2][0])
	}

	if !strings.Contains(out, "SUMMARY") {
		t.Error("Expected CSV summary section")
	}
	if !strings.Contains(out, "PLANT TYPE BREAKDOWN") {
		t.Error("Expected CSV plant type breakdown section")
	}
}

func TestRenderMarkdown(t *testing.T) {
	r := New(FormatMarkdown)
	report, err := r.Generate(sampleResult(), nil, "Norte")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(report, &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Drought Cost Projection: Norte",
		"## Summary",
		"| Total cost | $48211200.00 | $33340000.00 |",
		"## Actions (heuristic)",
		"| Norte Nuclear | nuclear | 300.0 MW |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected markdown output to contain %q\n%s", want, out)
		}
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	r := New(Format("xml"))
	report, _ := New(FormatText).Generate(sampleResult(), nil, "")
	var buf bytes.Buffer
	if err := r.Render(report, &buf); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestAddCoolingStats(t *testing.T) {
	r := New(FormatText)
	report, err := r.Generate(sampleResult(), nil, "Norte")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	plants := []models.PowerPlant{
		{ID: "P1", CoolingType: models.CoolingOnceThrough},
		{ID: "P2", CoolingType: models.CoolingRecirculating},
	}
	report.AddCoolingStats(plants)

	if len(report.CoolingTypeStats) != 2 {
		t.Fatalf("Expected 2 cooling type entries, got %d", len(report.CoolingTypeStats))
	}
	once := report.CoolingTypeStats["once_through"]
	if once == nil || once.Count != 1 || once.CapacityMW != 500 {
		t.Errorf("Unexpected once_through stats: %+v", once)
	}
}
