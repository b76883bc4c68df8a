package heuristics

import "math"

// Rule is one fixed mitigation heuristic. The set is closed: five range
// rules (H1-H5) plus the H6 combinator configured on the engine. SPI bounds
// are inclusive; a day bound of -1 means that side is unbounded.
type Rule struct {
	ID               string
	SPILow           float64
	SPIHigh          float64
	DaysMin          int
	DaysMax          int
	PercentageEffect float64
	DayExtension     float64
	Conditions       string
}

const (
	// DampingFactor is applied once to the combined effect when H6 fires
	DampingFactor = 0.8

	// DefaultEscalationThreshold is the combined percentage effect, in
	// points, at which H6 engages. 12.0 sits just under the strongest
	// attainable stack (H2+H3 = 13 points) so escalation is reachable
	// while single rules stay undamped.
	DefaultEscalationThreshold = 12.0
)

var negInf = math.Inf(-1)

var ruleTable = []Rule{
	{
		ID:               "H1",
		SPILow:           -1.5,
		SPIHigh:          -1.0,
		DaysMin:          46,
		DaysMax:          -1,
		PercentageEffect: 5.0,
		DayExtension:     3.0,
		Conditions:       "SPI in [-1.50, -1.00] and more than 45 days to critical",
	},
	{
		ID:               "H2",
		SPILow:           -1.8,
		SPIHigh:          -1.2,
		DaysMin:          30,
		DaysMax:          45,
		PercentageEffect: 10.0,
		DayExtension:     4.0,
		Conditions:       "SPI in [-1.80, -1.20] and 30 to 45 days to critical",
	},
	{
		ID:               "H3",
		SPILow:           -2.0,
		SPIHigh:          -1.0,
		DaysMin:          31,
		DaysMax:          -1,
		PercentageEffect: 3.0,
		DayExtension:     2.0,
		Conditions:       "SPI in [-2.00, -1.00] and more than 30 days to critical",
	},
	{
		ID:               "H4",
		SPILow:           negInf,
		SPIHigh:          -1.8,
		DaysMin:          -1,
		DaysMax:          29,
		PercentageEffect: 1.0,
		DayExtension:     1.3,
		Conditions:       "SPI at or below -1.80 and fewer than 30 days to critical",
	},
	{
		ID:               "H5",
		SPILow:           negInf,
		SPIHigh:          -2.0,
		DaysMin:          15,
		DaysMax:          30,
		PercentageEffect: 5.0,
		DayExtension:     5.0,
		Conditions:       "SPI at or below -2.00 and 15 to 30 days to critical",
	},
}

// matches reports whether the rule's SPI band and day window both hold
func (r Rule) matches(spi float64, days int) bool {
	if spi < r.SPILow || spi > r.SPIHigh {
		return false
	}
	if r.DaysMin >= 0 && days < r.DaysMin {
		return false
	}
	if r.DaysMax >= 0 && days > r.DaysMax {
		return false
	}
	return true
}

// Rules returns a copy of the fixed rule table
func Rules() []Rule {
	out := make([]Rule, len(ruleTable))
	copy(out, ruleTable)
	return out
}

// RuleByID returns the rule with the given id, if it exists
func RuleByID(id string) (Rule, bool) {
	for _, r := range ruleTable {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}
