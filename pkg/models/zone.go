package models

// Zone represents a geographic zone under drought monitoring
type Zone struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	StateCode   string `json:"state_code"`

	// Price overrides; both must be set for the override to apply
	EnergyPriceUSDMWh *float64 `json:"energy_price_usd_mwh,omitempty"`
	FuelPriceUSDMMBtu *float64 `json:"fuel_price_usd_mmbtu,omitempty"`

	// Last ingested drought state, used when no live observations are reachable
	CurrentSPI6M float64 `json:"current_spi_6m"`
	Trend        Trend   `json:"trend"`

	Active bool `json:"active"`
}

// HasPriceOverride reports whether both zone-level prices are configured
func (z *Zone) HasPriceOverride() bool {
	return z.EnergyPriceUSDMWh != nil && z.FuelPriceUSDMMBtu != nil
}

// PlantType represents the generation technology of a power plant
type PlantType string

const (
	PlantThermoelectric PlantType = "thermoelectric"
	PlantNuclear        PlantType = "nuclear"
	PlantHydroelectric  PlantType = "hydroelectric"
)

// WaterDependency represents how strongly a plant depends on water availability
type WaterDependency string

const (
	WaterDependencyHigh   WaterDependency = "high"
	WaterDependencyMedium WaterDependency = "medium"
	WaterDependencyLow    WaterDependency = "low"
)

// CoolingType represents the cooling technology of a plant
type CoolingType string

const (
	CoolingOnceThrough   CoolingType = "once_through"
	CoolingRecirculating CoolingType = "recirculating"
	CoolingDry           CoolingType = "dry"
)

// OperationalStatus represents whether a plant currently generates
type OperationalStatus string

const (
	StatusActive      OperationalStatus = "active"
	StatusMaintenance OperationalStatus = "maintenance"
	StatusOffline     OperationalStatus = "offline"
)

// PowerPlant represents a generation asset inside a zone
type PowerPlant struct {
	ID                string            `json:"id"`
	ZoneID            string            `json:"zone_id"`
	Name              string            `json:"name"`
	PlantType         PlantType         `json:"plant_type"`
	CapacityMW        float64           `json:"capacity_mw"`
	WaterDependency   WaterDependency   `json:"water_dependency"`
	CoolingType       CoolingType       `json:"cooling_type"`
	OperationalStatus OperationalStatus `json:"operational_status"`
}

// IsActive reports whether the plant participates in simulations
func (p *PowerPlant) IsActive() bool {
	return p.OperationalStatus == StatusActive
}
