package models

import "time"

// SimulationRequest carries the caller's parameters for one simulation run
type SimulationRequest struct {
	ZoneID                   string   `json:"zone_id"`
	PowerPlantIDs            []string `json:"power_plant_ids,omitempty"`
	ActionInstanceIDs        []string `json:"action_instance_ids,omitempty"`
	ProjectionDays           int      `json:"projection_days"`
	Profile                  Profile  `json:"profile,omitempty"`
	DisableDefaultAssumption bool     `json:"disable_default_assumption,omitempty"`
	IncludeBrief             bool     `json:"include_brief,omitempty"`
}

// ScenarioResult holds the aggregate economics of one cost trajectory
type ScenarioResult struct {
	// Cost-derived effective loss: scenario cost relative to the cost of
	// sitting at the worst severity band for the whole horizon, 0-100.
	CapacityLossPct      float64 `json:"capacity_loss_pct"`
	TotalCostUSD         float64 `json:"total_cost_usd"`
	EmergencyFuelCostUSD float64 `json:"emergency_fuel_cost_usd"`
	LostGenerationMWh    float64 `json:"lost_generation_mwh"`
}

// PlantBreakdown holds per-plant scenario results
type PlantBreakdown struct {
	PlantID    string         `json:"plant_id"`
	Name       string         `json:"name"`
	PlantType  PlantType      `json:"plant_type"`
	CapacityMW float64        `json:"capacity_mw"`
	NoAction   ScenarioResult `json:"no_action"`
	WithAction ScenarioResult `json:"with_action"`
	SavingsUSD float64        `json:"savings_usd"`
}

// SimulationResult is the complete outcome of one simulation run
type SimulationResult struct {
	ZoneID            string             `json:"zone_id"`
	PlantsAnalyzed    int                `json:"plants_analyzed"`
	TotalCapacityMW   float64            `json:"total_capacity_mw"`
	ProjectionDays    int                `json:"projection_days"`
	NoAction          ScenarioResult     `json:"no_action"`
	WithAction        ScenarioResult     `json:"with_action"`
	SavingsUSD        float64            `json:"savings_usd"`
	SavingsPct        float64            `json:"savings_pct"`
	PerPlantBreakdown []PlantBreakdown   `json:"per_plant_breakdown"`
	PriceQuoteUsed    PriceQuote         `json:"price_quote_used"`
	SelectionMode     SelectionMode      `json:"selection_mode"`
	Actions           []ActionParameters `json:"actions,omitempty"`
	Brief             string             `json:"brief,omitempty"`
}

// SimulationRecord is the persisted form of a completed run
type SimulationRecord struct {
	ID                string        `json:"id"`
	ZoneID            string        `json:"zone_id"`
	ProjectionDays    int           `json:"projection_days"`
	PlantsAnalyzed    int           `json:"plants_analyzed"`
	SelectionMode     SelectionMode `json:"selection_mode"`
	PriceSource       string        `json:"price_source"`
	NoActionCostUSD   float64       `json:"no_action_cost_usd"`
	WithActionCostUSD float64       `json:"with_action_cost_usd"`
	SavingsUSD        float64       `json:"savings_usd"`
	SavingsPct        float64       `json:"savings_pct"`
	Result            []byte        `json:"-"`
	CreatedAt         time.Time     `json:"created_at"`
}

// AuditEntry records one notable event of a simulation run
type AuditEntry struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	ZoneID    string    `json:"zone_id"`
	Event     string    `json:"event"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
