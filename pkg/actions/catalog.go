package actions

import "github.com/hidrica/drought-cost-engine/pkg/models"

// Audience values control which profile an action is surfaced to
const (
	AudienceGovernment = "government"
	AudienceIndustry   = "industry"
	AudienceBoth       = "both"
)

// Action is one template from the fixed mitigation catalog. The catalog is
// closed: the parameterizer fills in numbers within the declared bounds but
// never invents an id outside this table.
type Action struct {
	ID              string
	Code            string
	Name            string
	Description     string
	MinReductionPct float64
	MaxReductionPct float64
	MinDurationDays int
	MaxDurationDays int
	PriorityLevel   int
	EffectDays      float64
	Audience        string
}

// AppliesTo reports whether the action is surfaced to the given profile.
// An empty profile sees the whole catalog.
func (a Action) AppliesTo(profile models.Profile) bool {
	switch profile {
	case models.ProfileGovernment:
		return a.Audience == AudienceGovernment || a.Audience == AudienceBoth
	case models.ProfileIndustry:
		return a.Audience == AudienceIndustry || a.Audience == AudienceBoth
	default:
		return true
	}
}

var catalog = []Action{
	{
		ID: "A01", Code: "URBAN_RESTRICTION_L1", Name: "Stage 1 urban watering restrictions",
		Description:     "Restrict municipal outdoor watering to assigned days",
		MinReductionPct: 5, MaxReductionPct: 15,
		MinDurationDays: 14, MaxDurationDays: 60,
		PriorityLevel: 3, EffectDays: 2.0, Audience: AudienceGovernment,
	},
	{
		ID: "A02", Code: "URBAN_RESTRICTION_L2", Name: "Stage 2 urban watering restrictions",
		Description:     "Ban non-essential municipal water use",
		MinReductionPct: 10, MaxReductionPct: 25,
		MinDurationDays: 14, MaxDurationDays: 90,
		PriorityLevel: 2, EffectDays: 3.5, Audience: AudienceGovernment,
	},
	{
		ID: "A03", Code: "AGRI_IRRIGATION_SHIFT", Name: "Night-window irrigation scheduling",
		Description:     "Move irrigation to low-evaporation night hours",
		MinReductionPct: 3, MaxReductionPct: 10,
		MinDurationDays: 30, MaxDurationDays: 120,
		PriorityLevel: 3, EffectDays: 1.5, Audience: AudienceBoth,
	},
	{
		ID: "A04", Code: "AGRI_QUOTA_CUT", Name: "Agricultural allocation cut",
		Description:     "Reduce seasonal irrigation quotas per district",
		MinReductionPct: 5, MaxReductionPct: 30,
		MinDurationDays: 30, MaxDurationDays: 180,
		PriorityLevel: 2, EffectDays: 4.0, Audience: AudienceGovernment,
	},
	{
		ID: "A05", Code: "INDUSTRIAL_RECYCLING", Name: "Mandatory process-water recycling",
		Description:     "Require closed-loop reuse for industrial process water",
		MinReductionPct: 5, MaxReductionPct: 20,
		MinDurationDays: 60, MaxDurationDays: 365,
		PriorityLevel: 3, EffectDays: 3.0, Audience: AudienceIndustry,
	},
	{
		ID: "A06", Code: "INDUSTRIAL_CURTAILMENT", Name: "Industrial intake curtailment",
		Description:     "Curtail surface-water intake for heavy industry",
		MinReductionPct: 10, MaxReductionPct: 40,
		MinDurationDays: 7, MaxDurationDays: 90,
		PriorityLevel: 1, EffectDays: 5.0, Audience: AudienceIndustry,
	},
	{
		ID: "A07", Code: "RESERVOIR_REALLOCATION", Name: "Inter-basin reservoir reallocation",
		Description:     "Reallocate stored volume between basin reservoirs",
		MinReductionPct: 5, MaxReductionPct: 25,
		MinDurationDays: 30, MaxDurationDays: 180,
		PriorityLevel: 2, EffectDays: 4.5, Audience: AudienceGovernment,
	},
	{
		ID: "A08", Code: "GROUNDWATER_EMERGENCY", Name: "Emergency groundwater drafting",
		Description:     "Activate emergency wells beyond normal draft limits",
		MinReductionPct: 5, MaxReductionPct: 15,
		MinDurationDays: 14, MaxDurationDays: 120,
		PriorityLevel: 2, EffectDays: 3.0, Audience: AudienceGovernment,
	},
	{
		ID: "A09", Code: "LEAK_AUDIT_BLITZ", Name: "Distribution leak audit blitz",
		Description:     "Accelerated detection and repair of network leaks",
		MinReductionPct: 2, MaxReductionPct: 8,
		MinDurationDays: 30, MaxDurationDays: 90,
		PriorityLevel: 4, EffectDays: 1.0, Audience: AudienceBoth,
	},
	{
		ID: "A10", Code: "PRESSURE_REDUCTION", Name: "Network pressure management",
		Description:     "Lower distribution pressure during off-peak hours",
		MinReductionPct: 2, MaxReductionPct: 6,
		MinDurationDays: 14, MaxDurationDays: 180,
		PriorityLevel: 4, EffectDays: 1.0, Audience: AudienceBoth,
	},
	{
		ID: "A11", Code: "TARIFF_SURCHARGE", Name: "Drought tariff surcharge",
		Description:     "Progressive surcharge on above-baseline consumption",
		MinReductionPct: 3, MaxReductionPct: 12,
		MinDurationDays: 30, MaxDurationDays: 180,
		PriorityLevel: 3, EffectDays: 2.0, Audience: AudienceGovernment,
	},
	{
		ID: "A12", Code: "PUBLIC_CAMPAIGN", Name: "Public conservation campaign",
		Description:     "Coordinated media push for voluntary conservation",
		MinReductionPct: 1, MaxReductionPct: 5,
		MinDurationDays: 14, MaxDurationDays: 120,
		PriorityLevel: 5, EffectDays: 0.5, Audience: AudienceGovernment,
	},
	{
		ID: "A13", Code: "THERMAL_LOAD_SHIFT", Name: "Generation shift to low-water plants",
		Description:     "Shift dispatch toward dry-cooled and hydro-independent units",
		MinReductionPct: 5, MaxReductionPct: 20,
		MinDurationDays: 7, MaxDurationDays: 60,
		PriorityLevel: 2, EffectDays: 3.5, Audience: AudienceIndustry,
	},
	{
		ID: "A14", Code: "COOLING_RETROFIT_ACCEL", Name: "Accelerated dry-cooling retrofit",
		Description:     "Pull forward dry-cooling conversion for exposed plants",
		MinReductionPct: 2, MaxReductionPct: 10,
		MinDurationDays: 90, MaxDurationDays: 365,
		PriorityLevel: 4, EffectDays: 2.5, Audience: AudienceIndustry,
	},
	{
		ID: "A15", Code: "EMERGENCY_CURTAILMENT", Name: "Emergency water curtailment order",
		Description:     "Mandatory across-the-board curtailment by executive order",
		MinReductionPct: 20, MaxReductionPct: 50,
		MinDurationDays: 3, MaxDurationDays: 30,
		PriorityLevel: 1, EffectDays: 5.0, Audience: AudienceBoth,
	},
}

// heuristicActions maps a fired rule to its eligible catalog templates.
// H6 is a combination step, not an action driver, so it has no row here.
var heuristicActions = map[string][]string{
	"H1": {"A01", "A03", "A12"},
	"H2": {"A02", "A04", "A10"},
	"H3": {"A01", "A09", "A10"},
	"H4": {"A15", "A06"},
	"H5": {"A07", "A08", "A13"},
}

// Catalog returns a copy of the fixed action catalog
func Catalog() []Action {
	out := make([]Action, len(catalog))
	copy(out, catalog)
	return out
}

// ActionByID returns the catalog entry with the given id, if it exists
func ActionByID(id string) (Action, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// EligibleActions returns the catalog ids a fired heuristic may surface
func EligibleActions(ruleID string) []string {
	ids, ok := heuristicActions[ruleID]
	if !ok {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
