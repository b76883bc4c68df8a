// Package capacity scales a zone-level drought loss into per-plant
// generation loss using water dependency and cooling technology.
package capacity

import (
	"fmt"
	"math"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// Multipliers by water dependency. Unknown values fall back to 1.0 so a
// misconfigured plant is never scored as less exposed than it may be.
var waterDependencyMultipliers = map[models.WaterDependency]float64{
	models.WaterDependencyHigh:   1.0,
	models.WaterDependencyMedium: 0.6,
	models.WaterDependencyLow:    0.3,
}

// Multipliers by cooling technology. Once-through cooling amplifies the
// base loss; dry cooling nearly removes water exposure.
var coolingMultipliers = map[models.CoolingType]float64{
	models.CoolingOnceThrough:   1.2,
	models.CoolingRecirculating: 1.0,
	models.CoolingDry:           0.2,
}

// Multiplier returns the combined plant sensitivity factor
func Multiplier(plant models.PowerPlant) float64 {
	water, ok := waterDependencyMultipliers[plant.WaterDependency]
	if !ok {
		water = 1.0
	}
	cooling, ok := coolingMultipliers[plant.CoolingType]
	if !ok {
		cooling = 1.0
	}
	return water * cooling
}

// LossFraction converts a zone base loss into this plant's effective
// generation loss fraction, clamped to [0, 1]
func LossFraction(baseLoss float64, plant models.PowerPlant) (float64, error) {
	if math.IsNaN(baseLoss) || math.IsInf(baseLoss, 0) {
		return 0, fmt.Errorf("base loss %v is not a finite fraction: %w", baseLoss, models.ErrInvariantViolation)
	}
	if baseLoss < 0 || baseLoss > 1 {
		return 0, fmt.Errorf("base loss %.4f outside [0, 1]: %w", baseLoss, models.ErrInvariantViolation)
	}

	loss := baseLoss * Multiplier(plant)
	if loss < 0 {
		loss = 0
	}
	if loss > 1 {
		loss = 1
	}
	return loss, nil
}
