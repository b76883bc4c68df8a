package models

import "time"

// RiskLevel represents drought severity for a zone
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Severity returns an ordinal for level comparisons (higher = more severe)
func (r RiskLevel) Severity() int {
	switch r {
	case RiskCritical:
		return 3
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// Trend represents the direction the zone's SPI is moving
type Trend string

const (
	TrendImproving Trend = "IMPROVING"
	TrendStable    Trend = "STABLE"
	TrendWorsening Trend = "WORSENING"
)

// DriftPerDay returns the SPI change per day implied by the trend when no
// observation series is available. Worsening runs faster than recovery.
func (t Trend) DriftPerDay() float64 {
	switch t {
	case TrendImproving:
		return 0.008
	case TrendWorsening:
		return -0.012
	default:
		return 0
	}
}

// RiskSnapshot captures a zone's drought state at a point in time.
// Built fresh per request, never mutated afterwards.
type RiskSnapshot struct {
	ZoneID         string    `json:"zone_id"`
	SPI6M          float64   `json:"spi_6m"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Trend          Trend     `json:"trend"`
	DaysToCritical int       `json:"days_to_critical"`
	CalculatedAt   time.Time `json:"calculated_at"`
}

// SPIObservation is a single SPI reading from the observation store
type SPIObservation struct {
	Timestamp time.Time
	Value     float64
}
