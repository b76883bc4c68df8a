package risk

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

func dailySeries(t *testing.T, n int, startVal, perDay float64) []models.SPIObservation {
	t.Helper()
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	series := make([]models.SPIObservation, n)
	for i := 0; i < n; i++ {
		series[i] = models.SPIObservation{
			Timestamp: start.AddDate(0, 0, i),
			Value:     startVal + perDay*float64(i),
		}
	}
	return series
}

func TestTrendFromSeries(t *testing.T) {
	trend, slope, r2, err := TrendFromSeries(dailySeries(t, 30, -0.865, -0.015))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if trend != models.TrendWorsening {
		t.Errorf("Expected WORSENING, got %s", trend)
	}
	if math.Abs(slope-(-0.015)) > 1e-9 {
		t.Errorf("Expected slope -0.015 per day, got %.6f", slope)
	}
	if r2 < 0.999 {
		t.Errorf("Expected tight fit, got R² %.4f", r2)
	}

	trend, _, _, err = TrendFromSeries(dailySeries(t, 30, -1.5, 0.005))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if trend != models.TrendImproving {
		t.Errorf("Expected IMPROVING, got %s", trend)
	}

	trend, _, _, err = TrendFromSeries(dailySeries(t, 30, -1.2, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if trend != models.TrendStable {
		t.Errorf("Expected STABLE for a flat series, got %s", trend)
	}
}

func TestTrendFromSeriesNoiseBand(t *testing.T) {
	// Slope inside ±0.002 reads as stable
	trend, _, _, err := TrendFromSeries(dailySeries(t, 30, -1.0, -0.001))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if trend != models.TrendStable {
		t.Errorf("Expected STABLE inside the noise band, got %s", trend)
	}
}

func TestTrendFromSeriesTooShort(t *testing.T) {
	_, _, _, err := TrendFromSeries(dailySeries(t, 5, -1.0, -0.01))
	if err == nil {
		t.Fatal("Expected error for short series")
	}
}

func TestDaysToCritical(t *testing.T) {
	tests := []struct {
		name  string
		spi   float64
		slope float64
		want  int
	}{
		{"already critical", -2.0, -0.01, 0},
		{"below critical", -2.4, -0.01, 0},
		{"declining", -1.72, -0.015, 19},
		{"declining from escalated band", -1.5, -0.012, 42},
		{"improving", -1.0, 0.005, MaxDaysToCritical},
		{"flat", -1.0, 0, MaxDaysToCritical},
		{"barely declining capped", -1.0, -0.00001, MaxDaysToCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysToCritical(tt.spi, tt.slope); got != tt.want {
				t.Errorf("Expected %d days, got %d", tt.want, got)
			}
		})
	}
}

func TestBuildSnapshotWithSeries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	series := dailySeries(t, 30, -0.865, -0.015)

	snap, err := BuildSnapshot("zone-1", -1.3, series, models.TrendStable, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if snap.RiskLevel != models.RiskHigh {
		t.Errorf("Expected HIGH at SPI -1.3, got %s", snap.RiskLevel)
	}
	if snap.Trend != models.TrendWorsening {
		t.Errorf("Expected regression trend WORSENING, got %s", snap.Trend)
	}
	if snap.DaysToCritical != 47 {
		t.Errorf("Expected 47 days to critical, got %d", snap.DaysToCritical)
	}
	if !snap.CalculatedAt.Equal(now) {
		t.Errorf("Expected injected timestamp %v, got %v", now, snap.CalculatedAt)
	}
}

func TestBuildSnapshotFallbackTrend(t *testing.T) {
	now := time.Now()

	snap, err := BuildSnapshot("zone-1", -1.5, nil, models.TrendWorsening, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if snap.Trend != models.TrendWorsening {
		t.Errorf("Expected stored trend to fill in, got %s", snap.Trend)
	}
	if snap.DaysToCritical != 42 {
		t.Errorf("Expected 42 days at the worsening drift, got %d", snap.DaysToCritical)
	}

	snap, err = BuildSnapshot("zone-1", -1.5, nil, "", now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if snap.Trend != models.TrendStable {
		t.Errorf("Expected STABLE when no trend is known, got %s", snap.Trend)
	}
	if snap.DaysToCritical != MaxDaysToCritical {
		t.Errorf("Expected capped horizon for a flat slope, got %d", snap.DaysToCritical)
	}
}

func TestBuildSnapshotRejectsNonFiniteSPI(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := BuildSnapshot("zone-1", v, nil, models.TrendStable, time.Now())
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("SPI %v: expected ErrInvalidInput, got %v", v, err)
		}
	}
}
