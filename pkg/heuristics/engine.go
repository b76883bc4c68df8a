package heuristics

import (
	"fmt"
	"sort"
)

// Trigger is one fired heuristic with its concrete effect and the
// justification downstream consumers render verbatim.
type Trigger struct {
	ID               string  `json:"id"`
	PercentageEffect float64 `json:"percentage_effect"`
	DayExtension     float64 `json:"day_extension"`
	Justification    string  `json:"justification"`
}

// Evaluation is the outcome of one rule pass. Fired lists the matched
// rules (plus H6 when escalated) ordered by descending percentage effect,
// ties broken by ascending id. Combined carries the post-H6 aggregate
// effect that downstream consumers apply.
type Evaluation struct {
	Fired                []Trigger `json:"fired"`
	CombinedPercentage   float64   `json:"combined_percentage"`
	CombinedDayExtension float64   `json:"combined_day_extension"`
	Escalated            bool      `json:"escalated"`
}

// Engine evaluates the fixed rule set. Stateless apart from the configured
// escalation threshold; safe for concurrent use.
type Engine struct {
	escalationThreshold float64
}

// NewEngine creates an engine. A non-positive threshold selects the default.
func NewEngine(escalationThreshold float64) *Engine {
	if escalationThreshold <= 0 {
		escalationThreshold = DefaultEscalationThreshold
	}
	return &Engine{escalationThreshold: escalationThreshold}
}

// EscalationThreshold returns the configured H6 threshold
func (e *Engine) EscalationThreshold() float64 {
	return e.escalationThreshold
}

// Evaluate runs every rule against the inputs. All matching rules fire
// independently; H6 is applied afterwards as a combination step. Pure.
func (e *Engine) Evaluate(spi float64, daysToCritical int) Evaluation {
	var fired []Trigger
	for _, r := range ruleTable {
		if !r.matches(spi, daysToCritical) {
			continue
		}
		fired = append(fired, Trigger{
			ID:               r.ID,
			PercentageEffect: r.PercentageEffect,
			DayExtension:     r.DayExtension,
			Justification: fmt.Sprintf("%s: %s (observed SPI %.2f, %d days to critical)",
				r.ID, r.Conditions, spi, daysToCritical),
		})
	}
	return Combine(fired, e.escalationThreshold)
}

// Combine applies the H6 combinator to a set of fired triggers. When the
// summed percentage effect reaches the threshold, the combined percentage
// and day effects are damped by DampingFactor once, as an aggregate, and an
// H6 trigger carrying the damped numbers joins the fired list. Exposed
// separately from Evaluate so the combination contract is testable with an
// arbitrary fired set.
func Combine(fired []Trigger, escalationThreshold float64) Evaluation {
	eval := Evaluation{Fired: append([]Trigger(nil), fired...)}

	var sumPct, sumDays float64
	for _, t := range fired {
		sumPct += t.PercentageEffect
		sumDays += t.DayExtension
	}

	if len(fired) > 0 && sumPct >= escalationThreshold {
		eval.Escalated = true
		eval.CombinedPercentage = DampingFactor * sumPct
		eval.CombinedDayExtension = DampingFactor * sumDays
		eval.Fired = append(eval.Fired, Trigger{
			ID:               "H6",
			PercentageEffect: eval.CombinedPercentage,
			DayExtension:     eval.CombinedDayExtension,
			Justification: fmt.Sprintf("H6: combined mitigation effect %.1f%% crossed escalation threshold %.1f%%; stacked effects damped by %.1f",
				sumPct, escalationThreshold, DampingFactor),
		})
	} else {
		eval.CombinedPercentage = sumPct
		eval.CombinedDayExtension = sumDays
	}

	sortTriggers(eval.Fired)
	return eval
}

// sortTriggers orders by descending percentage effect, ties by ascending id
func sortTriggers(triggers []Trigger) {
	sort.Slice(triggers, func(i, j int) bool {
		if triggers[i].PercentageEffect != triggers[j].PercentageEffect {
			return triggers[i].PercentageEffect > triggers[j].PercentageEffect
		}
		return triggers[i].ID < triggers[j].ID
	})
}
