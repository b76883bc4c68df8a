// Package risk classifies a zone's drought state and estimates how far it
// sits from the critical SPI threshold.
package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/hidrica/drought-cost-engine/pkg/models"
	"github.com/hidrica/drought-cost-engine/pkg/spi"
)

const (
	// minTrendSamples is the shortest series the regression will accept,
	// two weeks of daily observations
	minTrendSamples = 14

	// MaxDaysToCritical caps the horizon for zones not heading toward
	// critical at all
	MaxDaysToCritical = 9999

	// criticalSPI is the threshold the days-to-critical estimate targets
	criticalSPI = -2.0

	// slopeNoise is the regression slope magnitude below which the trend
	// reads as stable, in SPI per day
	slopeNoise = 0.002
)

// TrendFromSeries fits a line through daily SPI observations and maps the
// slope to a trend. Returns the slope in SPI per day alongside the fit
// quality.
func TrendFromSeries(series []models.SPIObservation) (models.Trend, float64, float64, error) {
	if len(series) < minTrendSamples {
		return models.TrendStable, 0, 0, fmt.Errorf("insufficient data for trend analysis (need %d+ samples, got %d)",
			minTrendSamples, len(series))
	}

	start := series[0].Timestamp
	x := make([]float64, len(series))
	y := make([]float64, len(series))
	for i, obs := range series {
		x[i] = obs.Timestamp.Sub(start).Hours() / 24.0
		y[i] = obs.Value
	}

	slope, _, r2 := linearRegression(x, y)
	return trendFromSlope(slope), slope, r2, nil
}

func trendFromSlope(slopePerDay float64) models.Trend {
	if slopePerDay > slopeNoise {
		return models.TrendImproving
	}
	if slopePerDay < -slopeNoise {
		return models.TrendWorsening
	}
	return models.TrendStable
}

// DaysToCritical estimates whole days until the SPI reaches the critical
// threshold at the given slope. Already-critical zones report 0; zones not
// declining report MaxDaysToCritical.
func DaysToCritical(currentSPI, slopePerDay float64) int {
	if currentSPI <= criticalSPI {
		return 0
	}
	if slopePerDay >= 0 {
		return MaxDaysToCritical
	}

	days := int(math.Ceil((currentSPI - criticalSPI) / -slopePerDay))
	if days < 0 {
		days = 0
	}
	if days > MaxDaysToCritical {
		days = MaxDaysToCritical
	}
	return days
}

// BuildSnapshot assembles the risk view for a zone. When the observation
// series is too short for a regression the stored zone trend supplies the
// slope instead.
func BuildSnapshot(zoneID string, currentSPI float64, series []models.SPIObservation, fallbackTrend models.Trend, now time.Time) (*models.RiskSnapshot, error) {
	if math.IsNaN(currentSPI) || math.IsInf(currentSPI, 0) {
		return nil, fmt.Errorf("SPI %v is not a finite value: %w", currentSPI, models.ErrInvalidInput)
	}

	trend, slope, _, err := TrendFromSeries(series)
	if err != nil {
		trend = fallbackTrend
		if trend == "" {
			trend = models.TrendStable
		}
		slope = trend.DriftPerDay()
	}

	level, _ := spi.Classify(currentSPI)
	return &models.RiskSnapshot{
		ZoneID:         zoneID,
		SPI6M:          currentSPI,
		RiskLevel:      level,
		Trend:          trend,
		DaysToCritical: DaysToCritical(currentSPI, slope),
		CalculatedAt:   now,
	}, nil
}
