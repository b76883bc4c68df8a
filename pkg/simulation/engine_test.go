package simulation

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/hidrica/drought-cost-engine/pkg/actions"
	"github.com/hidrica/drought-cost-engine/pkg/models"
)

func testZone(spi float64, trend models.Trend) *models.Zone {
	return &models.Zone{
		ID:           "zone-1",
		Name:         "Cuenca Norte",
		CountryCode:  "US",
		StateCode:    "TX",
		CurrentSPI6M: spi,
		Trend:        trend,
		Active:       true,
	}
}

func testPlant(id string, capacityMW float64, water models.WaterDependency, cooling models.CoolingType) models.PowerPlant {
	return models.PowerPlant{
		ID:                id,
		ZoneID:            "zone-1",
		Name:              "Planta " + id,
		PlantType:         models.PlantThermoelectric,
		CapacityMW:        capacityMW,
		WaterDependency:   water,
		CoolingType:       cooling,
		OperationalStatus: models.StatusActive,
	}
}

func fixedQuote() *models.PriceQuote {
	return &models.PriceQuote{
		MarginalPriceUSDMWh: 100.0,
		FuelPriceUSDMMBtu:   3.0,
		Source:              models.PriceSourceFallback,
		FetchedAt:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func noSelection() actions.Selection {
	return actions.Selection{Mode: models.SelectionNone}
}

// A 500 MW once-through plant at SPI -1.72 loses 36% of capacity: 4320 MWh
// and 432000 USD per day, plus 103680 USD of replacement fuel since the
// loss clears the emergency threshold. Flat over 90 days: 48211200 USD.
func TestSimulateEscalatedBandScenario(t *testing.T) {
	zone := testZone(-1.72, models.TrendStable)
	plants := []models.PowerPlant{testPlant("p1", 500, models.WaterDependencyHigh, models.CoolingOnceThrough)}

	result, err := Simulate(zone, plants, noSelection(), fixedQuote(), 90)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.PlantsAnalyzed != 1 {
		t.Errorf("Expected 1 plant analyzed, got %d", result.PlantsAnalyzed)
	}
	if result.TotalCapacityMW != 500 {
		t.Errorf("Expected 500 MW, got %.1f", result.TotalCapacityMW)
	}
	if math.Abs(result.NoAction.TotalCostUSD-48211200) > 0.01 {
		t.Errorf("Expected no-action cost 48211200, got %.2f", result.NoAction.TotalCostUSD)
	}
	if math.Abs(result.NoAction.EmergencyFuelCostUSD-9331200) > 0.01 {
		t.Errorf("Expected fuel cost 9331200, got %.2f", result.NoAction.EmergencyFuelCostUSD)
	}
	if math.Abs(result.NoAction.LostGenerationMWh-388800) > 0.01 {
		t.Errorf("Expected 388800 MWh lost, got %.2f", result.NoAction.LostGenerationMWh)
	}

	// Cost-derived loss: 36% daily loss against the 60% worst case
	if math.Abs(result.NoAction.CapacityLossPct-60.0) > 1e-6 {
		t.Errorf("Expected 60%% of worst case, got %.4f", result.NoAction.CapacityLossPct)
	}

	// No selected actions and no assumption pins both scenarios together
	if result.SavingsUSD != 0 {
		t.Errorf("Expected zero savings with no mitigation, got %.2f", result.SavingsUSD)
	}
	if result.SavingsPct != 0 {
		t.Errorf("Expected zero savings pct, got %.4f", result.SavingsPct)
	}
	if result.SelectionMode != models.SelectionNone {
		t.Errorf("Expected selection mode none, got %s", result.SelectionMode)
	}
}

func TestSimulateDefaultAssumptionSaves(t *testing.T) {
	zone := testZone(-1.72, models.TrendStable)
	plants := []models.PowerPlant{testPlant("p1", 500, models.WaterDependencyHigh, models.CoolingOnceThrough)}
	sel := actions.Selection{Mode: models.SelectionDefaultAssumption, AssumedImprovement: 0.3}

	result, err := Simulate(zone, plants, sel, fixedQuote(), 90)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.SavingsUSD <= 0 {
		t.Errorf("Expected positive savings from the assumed improvement, got %.2f", result.SavingsUSD)
	}
	if result.WithAction.TotalCostUSD >= result.NoAction.TotalCostUSD {
		t.Errorf("Expected with-action cost below no-action, got %.2f >= %.2f",
			result.WithAction.TotalCostUSD, result.NoAction.TotalCostUSD)
	}
	if result.SavingsPct <= 0 || result.SavingsPct >= 100 {
		t.Errorf("Expected savings pct in (0, 100), got %.4f", result.SavingsPct)
	}
	if result.SelectionMode != models.SelectionDefaultAssumption {
		t.Errorf("Expected default_assumption mode, got %s", result.SelectionMode)
	}
}

func TestSimulateSavingsScaleWithEffectDays(t *testing.T) {
	zone := testZone(-1.72, models.TrendWorsening)
	plants := []models.PowerPlant{testPlant("p1", 500, models.WaterDependencyHigh, models.CoolingOnceThrough)}

	small := actions.Selection{Mode: models.SelectionHeuristic, TotalEffectDays: 2}
	large := actions.Selection{Mode: models.SelectionHeuristic, TotalEffectDays: 6}

	resultSmall, err := Simulate(zone, plants, small, fixedQuote(), 120)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	resultLarge, err := Simulate(zone, plants, large, fixedQuote(), 120)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if resultLarge.SavingsUSD < resultSmall.SavingsUSD {
		t.Errorf("Stronger plan should never save less: %.2f < %.2f",
			resultLarge.SavingsUSD, resultSmall.SavingsUSD)
	}
}

func TestSimulateWorseningCostsMore(t *testing.T) {
	plants := []models.PowerPlant{testPlant("p1", 500, models.WaterDependencyHigh, models.CoolingOnceThrough)}

	stable, err := Simulate(testZone(-1.3, models.TrendStable), plants, noSelection(), fixedQuote(), 120)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	worsening, err := Simulate(testZone(-1.3, models.TrendWorsening), plants, noSelection(), fixedQuote(), 120)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if worsening.NoAction.TotalCostUSD <= stable.NoAction.TotalCostUSD {
		t.Errorf("Worsening trend should cost more: %.2f <= %.2f",
			worsening.NoAction.TotalCostUSD, stable.NoAction.TotalCostUSD)
	}
}

func TestSimulateFuelOnlyAboveThreshold(t *testing.T) {
	zone := testZone(-1.72, models.TrendStable)
	// 30% base loss at 0.6 sensitivity stays at 18%, under the threshold
	plants := []models.PowerPlant{testPlant("p1", 500, models.WaterDependencyMedium, models.CoolingRecirculating)}

	result, err := Simulate(zone, plants, noSelection(), fixedQuote(), 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.NoAction.EmergencyFuelCostUSD != 0 {
		t.Errorf("Expected no fuel cost below the threshold, got %.2f", result.NoAction.EmergencyFuelCostUSD)
	}
	if result.NoAction.TotalCostUSD <= 0 {
		t.Error("Expected positive energy cost")
	}
}

func TestSimulateExcludesInactivePlants(t *testing.T) {
	zone := testZone(-1.3, models.TrendStable)
	offline := testPlant("p0", 900, models.WaterDependencyHigh, models.CoolingOnceThrough)
	offline.OperationalStatus = models.StatusOffline
	maintenance := testPlant("p2", 300, models.WaterDependencyHigh, models.CoolingOnceThrough)
	maintenance.OperationalStatus = models.StatusMaintenance
	plants := []models.PowerPlant{offline, testPlant("p1", 500, models.WaterDependencyHigh, models.CoolingRecirculating), maintenance}

	result, err := Simulate(zone, plants, noSelection(), fixedQuote(), 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.PlantsAnalyzed != 1 {
		t.Errorf("Expected only the active plant analyzed, got %d", result.PlantsAnalyzed)
	}
	if result.TotalCapacityMW != 500 {
		t.Errorf("Inactive capacity must not count, got %.1f MW", result.TotalCapacityMW)
	}
	if len(result.PerPlantBreakdown) != 1 || result.PerPlantBreakdown[0].PlantID != "p1" {
		t.Errorf("Expected breakdown for p1 only, got %+v", result.PerPlantBreakdown)
	}
}

func TestSimulateNoActivePlants(t *testing.T) {
	zone := testZone(-1.3, models.TrendStable)
	offline := testPlant("p1", 500, models.WaterDependencyHigh, models.CoolingOnceThrough)
	offline.OperationalStatus = models.StatusOffline

	_, err := Simulate(zone, []models.PowerPlant{offline}, noSelection(), fixedQuote(), 30)
	if !errors.Is(err, models.ErrNoPlantsAvailable) {
		t.Errorf("Expected ErrNoPlantsAvailable, got %v", err)
	}

	_, err = Simulate(zone, nil, noSelection(), fixedQuote(), 30)
	if !errors.Is(err, models.ErrNoPlantsAvailable) {
		t.Errorf("Expected ErrNoPlantsAvailable for empty list, got %v", err)
	}
}

func TestSimulateWindowBounds(t *testing.T) {
	zone := testZone(-1.3, models.TrendStable)
	plants := []models.PowerPlant{testPlant("p1", 500, models.WaterDependencyHigh, models.CoolingOnceThrough)}

	for _, days := range []int{0, -5, 366, 400} {
		_, err := Simulate(zone, plants, noSelection(), fixedQuote(), days)
		if !errors.Is(err, models.ErrInvalidProjectionWindow) {
			t.Errorf("Days %d: expected ErrInvalidProjectionWindow, got %v", days, err)
		}
	}

	for _, days := range []int{1, 365} {
		if _, err := Simulate(zone, plants, noSelection(), fixedQuote(), days); err != nil {
			t.Errorf("Days %d: expected success, got %v", days, err)
		}
	}
}

func TestSimulateInvalidInputs(t *testing.T) {
	plants := []models.PowerPlant{testPlant("p1", 500, models.WaterDependencyHigh, models.CoolingOnceThrough)}

	_, err := Simulate(nil, plants, noSelection(), fixedQuote(), 30)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil zone, got %v", err)
	}

	_, err = Simulate(testZone(math.NaN(), models.TrendStable), plants, noSelection(), fixedQuote(), 30)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for NaN SPI, got %v", err)
	}

	_, err = Simulate(testZone(-1.3, models.TrendStable), plants, noSelection(), nil, 30)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil quote, got %v", err)
	}

	badQuote := fixedQuote()
	badQuote.MarginalPriceUSDMWh = 0
	_, err = Simulate(testZone(-1.3, models.TrendStable), plants, noSelection(), badQuote, 30)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero price, got %v", err)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	zone := testZone(-1.72, models.TrendWorsening)
	plants := []models.PowerPlant{
		testPlant("p2", 300, models.WaterDependencyMedium, models.CoolingRecirculating),
		testPlant("p1", 500, models.WaterDependencyHigh, models.CoolingOnceThrough),
	}
	sel := actions.Selection{Mode: models.SelectionDefaultAssumption, AssumedImprovement: 0.3}

	first, err := Simulate(zone, plants, sel, fixedQuote(), 90)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := Simulate(zone, plants, sel, fixedQuote(), 90)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(firstJSON) != string(secondJSON) {
		t.Error("Identical inputs must produce byte-identical results")
	}

	if first.PerPlantBreakdown[0].PlantID != "p1" || first.PerPlantBreakdown[1].PlantID != "p2" {
		t.Errorf("Expected breakdown ordered by plant id, got %s then %s",
			first.PerPlantBreakdown[0].PlantID, first.PerPlantBreakdown[1].PlantID)
	}
}

func TestSimulateTrajectoryClamped(t *testing.T) {
	zone := testZone(-3.4, models.TrendWorsening)
	plants := []models.PowerPlant{testPlant("p1", 500, models.WaterDependencyHigh, models.CoolingOnceThrough)}

	result, err := Simulate(zone, plants, noSelection(), fixedQuote(), 365)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.NoAction.CapacityLossPct > 100 {
		t.Errorf("Loss pct must stay within 100, got %.4f", result.NoAction.CapacityLossPct)
	}
	if math.IsNaN(result.NoAction.TotalCostUSD) || math.IsInf(result.NoAction.TotalCostUSD, 0) {
		t.Errorf("Cost must stay finite, got %v", result.NoAction.TotalCostUSD)
	}
}

func TestSimulatePerPlantSavingsSum(t *testing.T) {
	zone := testZone(-1.72, models.TrendStable)
	plants := []models.PowerPlant{
		testPlant("p1", 500, models.WaterDependencyHigh, models.CoolingOnceThrough),
		testPlant("p2", 300, models.WaterDependencyMedium, models.CoolingDry),
	}
	sel := actions.Selection{Mode: models.SelectionDefaultAssumption, AssumedImprovement: 0.3}

	result, err := Simulate(zone, plants, sel, fixedQuote(), 90)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var perPlant float64
	for _, b := range result.PerPlantBreakdown {
		perPlant += b.SavingsUSD
	}
	if math.Abs(perPlant-result.SavingsUSD) > 1e-3 {
		t.Errorf("Per-plant savings %.6f should sum to the zone total %.6f", perPlant, result.SavingsUSD)
	}
}
