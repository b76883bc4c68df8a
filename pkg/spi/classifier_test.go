package spi

import (
	"math"
	"testing"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		name     string
		spi      float64
		level    models.RiskLevel
		baseLoss float64
	}{
		{name: "wet", spi: 1.2, level: models.RiskLow, baseLoss: 0.0},
		{name: "near normal", spi: -0.4, level: models.RiskLow, baseLoss: 0.0},
		{name: "medium", spi: -0.7, level: models.RiskMedium, baseLoss: 0.05},
		{name: "high", spi: -1.2, level: models.RiskHigh, baseLoss: 0.15},
		{name: "high escalated", spi: -1.72, level: models.RiskHigh, baseLoss: 0.30},
		{name: "critical", spi: -2.4, level: models.RiskCritical, baseLoss: 0.50},
		{name: "extreme", spi: -3.5, level: models.RiskCritical, baseLoss: 0.50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			level, loss := Classify(tc.spi)
			if level != tc.level {
				t.Errorf("Expected level %s for SPI %.2f, got %s", tc.level, tc.spi, level)
			}
			if loss != tc.baseLoss {
				t.Errorf("Expected base loss %.2f for SPI %.2f, got %.2f", tc.baseLoss, tc.spi, loss)
			}
		})
	}
}

func TestClassifyBoundariesResolveSevere(t *testing.T) {
	// A value sitting exactly on a band edge belongs to the drier tier.
	tests := []struct {
		spi      float64
		level    models.RiskLevel
		baseLoss float64
	}{
		{spi: -0.5, level: models.RiskMedium, baseLoss: 0.05},
		{spi: -1.0, level: models.RiskHigh, baseLoss: 0.15},
		{spi: -1.5, level: models.RiskHigh, baseLoss: 0.30},
		{spi: -2.0, level: models.RiskCritical, baseLoss: 0.50},
	}

	for _, tc := range tests {
		level, loss := Classify(tc.spi)
		if level != tc.level {
			t.Errorf("Expected level %s at boundary %.1f, got %s", tc.level, tc.spi, level)
		}
		if loss != tc.baseLoss {
			t.Errorf("Expected base loss %.2f at boundary %.1f, got %.2f", tc.baseLoss, tc.spi, loss)
		}
	}
}

func TestClassifyAllCriticalBelowMinusTwo(t *testing.T) {
	for spi := -2.0; spi > -6.0; spi -= 0.13 {
		level, loss := Classify(spi)
		if level != models.RiskCritical {
			t.Fatalf("Expected CRITICAL for SPI %.2f, got %s", spi, level)
		}
		if loss != 0.50 {
			t.Fatalf("Expected base loss 0.50 for SPI %.2f, got %.2f", spi, loss)
		}
	}
}

func TestBaseLossMonotonic(t *testing.T) {
	// Drier SPI never yields a smaller base loss.
	spis := []float64{2.0, -0.49, -0.5, -0.99, -1.0, -1.49, -1.5, -1.99, -2.0, -3.0}
	prevLoss := math.Inf(-1)
	for _, spi := range spis {
		loss := BaseLoss(spi)
		if loss < prevLoss {
			t.Errorf("Base loss fell from %.2f to %.2f moving to drier SPI %.2f", prevLoss, loss, spi)
		}
		prevLoss = loss
	}
}

func TestBandsCopyIsolated(t *testing.T) {
	b := Bands()
	if len(b) != 4 {
		t.Fatalf("Expected 4 bands, got %d", len(b))
	}
	b[0].BaseLoss = 0.99

	if _, loss := Classify(-2.5); loss != 0.50 {
		t.Error("mutating the returned band slice must not affect classification")
	}
}
