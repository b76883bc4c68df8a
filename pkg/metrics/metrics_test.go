package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilSafety(t *testing.T) {
	var m *Metrics
	m.SimulationCompleted("zone-1", "ok", time.Second)
	m.PriceFallback("TX")
	m.HeuristicFired("H1")
	m.SetZoneRisk("zone-1", 2)
}

func TestCounters(t *testing.T) {
	m := NewMetrics()

	m.SimulationCompleted("zone-1", "ok", 50*time.Millisecond)
	m.SimulationCompleted("zone-1", "ok", 70*time.Millisecond)
	m.SimulationCompleted("zone-1", "error", time.Millisecond)

	if got := testutil.ToFloat64(m.simulationsTotal.WithLabelValues("zone-1", "ok")); got != 2 {
		t.Errorf("Expected 2 ok runs, got %.0f", got)
	}
	if got := testutil.ToFloat64(m.simulationsTotal.WithLabelValues("zone-1", "error")); got != 1 {
		t.Errorf("Expected 1 error run, got %.0f", got)
	}

	m.PriceFallback("")
	if got := testutil.ToFloat64(m.priceFallbacks.WithLabelValues("unknown")); got != 1 {
		t.Errorf("Expected empty region recorded as unknown, got %.0f", got)
	}

	m.HeuristicFired("H2")
	if got := testutil.ToFloat64(m.heuristicsFired.WithLabelValues("H2")); got != 1 {
		t.Errorf("Expected 1 firing for H2, got %.0f", got)
	}

	m.SetZoneRisk("zone-1", 3)
	if got := testutil.ToFloat64(m.zoneRiskLevel.WithLabelValues("zone-1")); got != 3 {
		t.Errorf("Expected severity 3, got %.0f", got)
	}
}

func TestIndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration
	first := NewMetrics()
	second := NewMetrics()

	first.PriceFallback("TX")
	if got := testutil.ToFloat64(second.priceFallbacks.WithLabelValues("TX")); got != 0 {
		t.Errorf("Expected isolated registries, got %.0f", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	m := NewMetrics()
	m.SimulationCompleted("zone-1", "ok", time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "drought_simulations_total") {
		t.Error("Expected the simulations counter in the exposition")
	}
}
