// Package converter holds the unit conversions shared by the pricing and
// simulation layers so the factors live in exactly one place.
package converter

// HoursPerDay is the generation window assumed for daily cost math
const HoursPerDay = 24.0

// CentsPerKWhToUSDPerMWh converts retail feed prices to wholesale units.
// 1 cent/kWh is 10 USD/MWh.
func CentsPerKWhToUSDPerMWh(centsPerKWh float64) float64 {
	return centsPerKWh * 10
}

// MWToDailyMWh converts a sustained power level into energy over one day
func MWToDailyMWh(powerMW float64) float64 {
	return powerMW * HoursPerDay
}

// FuelCostUSD prices replacement fuel for lost generation. conversionRate
// is the MMBtu of fuel burned per replacement MWh.
func FuelCostUSD(lostMWh, fuelPriceUSDMMBtu, conversionRate float64) float64 {
	return lostMWh * fuelPriceUSDMMBtu * conversionRate
}
