package actions

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hidrica/drought-cost-engine/pkg/heuristics"
	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// DefaultAssumedImprovement is the flat SPI improvement assumed when a
// simulation runs without explicit or heuristic action selection.
const DefaultAssumedImprovement = 0.3

// Selection is the resolved action plan a simulation runs against
type Selection struct {
	Mode               models.SelectionMode
	Actions            []models.ActionParameters
	TotalEffectDays    float64
	AssumedImprovement float64
}

// Parameterizer turns fired heuristics or operator-chosen ids into
// concrete action parameters within catalog bounds
type Parameterizer struct {
	defaultImprovement float64
}

// NewParameterizer creates a parameterizer. A non-positive improvement
// falls back to DefaultAssumedImprovement.
func NewParameterizer(defaultImprovement float64) *Parameterizer {
	if defaultImprovement <= 0 {
		defaultImprovement = DefaultAssumedImprovement
	}
	return &Parameterizer{defaultImprovement: defaultImprovement}
}

// FromEvaluation maps fired heuristics onto catalog templates. Damping from
// an escalated evaluation is applied here as a single scale factor so the
// emitted effect days sum to the evaluation's combined day extension.
func (p *Parameterizer) FromEvaluation(eval heuristics.Evaluation, profile models.Profile) (Selection, error) {
	sel := Selection{Mode: models.SelectionHeuristic}

	scale := 1.0
	if eval.Escalated {
		scale = heuristics.DampingFactor
	}

	byBase := make(map[string]*models.ActionParameters)
	var order []string

	for _, trig := range eval.Fired {
		if trig.ID == "H6" {
			continue
		}
		templates := eligibleTemplates(trig.ID, profile)
		if len(templates) == 0 {
			continue
		}
		share := trig.DayExtension * scale / float64(len(templates))
		for _, tmpl := range templates {
			reduction := clampFloat(trig.PercentageEffect*scale, tmpl.MinReductionPct, tmpl.MaxReductionPct)
			duration := clampInt(int(math.Round(trig.DayExtension*scale*14)), tmpl.MinDurationDays, tmpl.MaxDurationDays)

			if existing, ok := byBase[tmpl.ID]; ok {
				existing.ExpectedEffectDays += share
				if reduction > existing.ReductionPercentage {
					existing.ReductionPercentage = reduction
				}
				if duration > existing.DurationDays {
					existing.DurationDays = duration
				}
				existing.SourceHeuristic += "," + trig.ID
				existing.Justification += "; " + trig.Justification
				continue
			}
			byBase[tmpl.ID] = &models.ActionParameters{
				BaseActionID:        tmpl.ID,
				Code:                tmpl.Code,
				Name:                tmpl.Name,
				ReductionPercentage: reduction,
				DurationDays:        duration,
				PriorityLevel:       tmpl.PriorityLevel,
				Justification:       trig.Justification,
				ExpectedEffectDays:  share,
				SourceHeuristic:     trig.ID,
			}
			order = append(order, tmpl.ID)
		}
	}

	for _, id := range order {
		inst := byBase[id]
		inst.InstanceID = instanceID(inst.BaseActionID, inst.SourceHeuristic)
		sel.Actions = append(sel.Actions, *inst)
		sel.TotalEffectDays += inst.ExpectedEffectDays
	}
	sortActions(sel.Actions)

	if err := checkBounds(sel.Actions); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// FromExplicit builds a selection from operator-chosen catalog ids.
// Any unknown id rejects the whole request; no partial plan is returned.
func (p *Parameterizer) FromExplicit(ids []string) (Selection, error) {
	sel := Selection{Mode: models.SelectionExplicit}

	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		tmpl, ok := ActionByID(id)
		if !ok {
			return Selection{}, fmt.Errorf("action id %q not in catalog: %w", id, models.ErrUnknownActionID)
		}
		inst := models.ActionParameters{
			InstanceID:          instanceID(tmpl.ID, "explicit"),
			BaseActionID:        tmpl.ID,
			Code:                tmpl.Code,
			Name:                tmpl.Name,
			ReductionPercentage: (tmpl.MinReductionPct + tmpl.MaxReductionPct) / 2,
			DurationDays:        (tmpl.MinDurationDays + tmpl.MaxDurationDays) / 2,
			PriorityLevel:       tmpl.PriorityLevel,
			Justification:       fmt.Sprintf("operator-selected: %s", tmpl.Name),
			ExpectedEffectDays:  tmpl.EffectDays,
		}
		sel.Actions = append(sel.Actions, inst)
		sel.TotalEffectDays += inst.ExpectedEffectDays
	}
	sortActions(sel.Actions)

	if err := checkBounds(sel.Actions); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// DefaultAssumption returns the flat-improvement selection used when no
// actions are chosen and the assumption is not disabled
func (p *Parameterizer) DefaultAssumption() Selection {
	return Selection{
		Mode:               models.SelectionDefaultAssumption,
		AssumedImprovement: p.defaultImprovement,
	}
}

// NoSelection returns the empty selection, which pins both scenarios to
// the same trajectory
func (p *Parameterizer) NoSelection() Selection {
	return Selection{Mode: models.SelectionNone}
}

func eligibleTemplates(ruleID string, profile models.Profile) []Action {
	var out []Action
	for _, id := range EligibleActions(ruleID) {
		tmpl, ok := ActionByID(id)
		if !ok {
			continue
		}
		if tmpl.AppliesTo(profile) {
			out = append(out, tmpl)
		}
	}
	return out
}

func instanceID(baseID, source string) string {
	suffix := strings.ToLower(strings.ReplaceAll(source, ",", "-"))
	return baseID + "-" + suffix
}

// sortActions orders a plan by urgency: priority level ascending, then
// reduction descending, then id for stable output
func sortActions(list []models.ActionParameters) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].PriorityLevel != list[j].PriorityLevel {
			return list[i].PriorityLevel < list[j].PriorityLevel
		}
		if list[i].ReductionPercentage != list[j].ReductionPercentage {
			return list[i].ReductionPercentage > list[j].ReductionPercentage
		}
		return list[i].BaseActionID < list[j].BaseActionID
	})
}

func checkBounds(list []models.ActionParameters) error {
	for _, inst := range list {
		tmpl, ok := ActionByID(inst.BaseActionID)
		if !ok {
			return fmt.Errorf("parameterized instance %s has no catalog entry: %w", inst.InstanceID, models.ErrInvariantViolation)
		}
		if inst.ReductionPercentage < tmpl.MinReductionPct || inst.ReductionPercentage > tmpl.MaxReductionPct {
			return fmt.Errorf("reduction %.2f%% outside [%.2f, %.2f] for %s: %w",
				inst.ReductionPercentage, tmpl.MinReductionPct, tmpl.MaxReductionPct, inst.BaseActionID, models.ErrInvariantViolation)
		}
		if inst.DurationDays < tmpl.MinDurationDays || inst.DurationDays > tmpl.MaxDurationDays {
			return fmt.Errorf("duration %dd outside [%d, %d] for %s: %w",
				inst.DurationDays, tmpl.MinDurationDays, tmpl.MaxDurationDays, inst.BaseActionID, models.ErrInvariantViolation)
		}
	}
	return nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
