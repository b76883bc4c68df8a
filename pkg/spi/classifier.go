package spi

import (
	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// Band maps an SPI interval onto a risk level and a base capacity loss.
// Bands are ordered by severity; Ceiling is the inclusive upper SPI bound,
// so a value sitting exactly on a boundary resolves to the more severe tier.
type Band struct {
	Ceiling   float64
	Level     models.RiskLevel
	BaseLoss  float64
	Escalated bool
}

var bands = []Band{
	{Ceiling: -2.0, Level: models.RiskCritical, BaseLoss: 0.50},
	{Ceiling: -1.5, Level: models.RiskHigh, BaseLoss: 0.30, Escalated: true},
	{Ceiling: -1.0, Level: models.RiskHigh, BaseLoss: 0.15},
	{Ceiling: -0.5, Level: models.RiskMedium, BaseLoss: 0.05},
}

// Classify maps an SPI value to its risk level and base capacity-loss
// fraction. Total over all reals: anything above the driest band is LOW.
func Classify(spi float64) (models.RiskLevel, float64) {
	for _, b := range bands {
		if spi <= b.Ceiling {
			return b.Level, b.BaseLoss
		}
	}
	return models.RiskLow, 0.0
}

// BaseLoss returns only the capacity-loss fraction for an SPI value
func BaseLoss(spi float64) float64 {
	_, loss := Classify(spi)
	return loss
}

// Bands returns a copy of the severity band table
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}
