package models

// Profile represents the audience a recommendation is surfaced to.
// It filters which catalog actions appear, never the heuristic math.
type Profile string

const (
	ProfileGovernment Profile = "government"
	ProfileIndustry   Profile = "industry"
)

// SelectionMode records how the actions of a simulation were chosen
type SelectionMode string

const (
	// SelectionExplicit means the caller named catalog actions directly
	SelectionExplicit SelectionMode = "explicit"
	// SelectionHeuristic means fired heuristics picked the actions
	SelectionHeuristic SelectionMode = "heuristic"
	// SelectionDefaultAssumption means no actions applied and the what-if
	// improvement assumption was used instead
	SelectionDefaultAssumption SelectionMode = "default_assumption"
	// SelectionNone means no actions and the default assumption is disabled
	SelectionNone SelectionMode = "none"
)

// ActionParameters is a concrete, bounded instance of a catalog action
type ActionParameters struct {
	InstanceID          string  `json:"instance_id"`
	BaseActionID        string  `json:"base_action_id"`
	Code                string  `json:"code"`
	Name                string  `json:"name"`
	ReductionPercentage float64 `json:"reduction_percentage"`
	DurationDays        int     `json:"duration_days"`
	PriorityLevel       int     `json:"priority_level"`
	Justification       string  `json:"justification_text"`
	ExpectedEffectDays  float64 `json:"expected_effect_days"`
	SourceHeuristic     string  `json:"source_heuristic,omitempty"`
}
