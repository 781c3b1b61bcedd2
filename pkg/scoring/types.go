// Package scoring implements the Habiscope assessment engine.
// It turns sparse physical measurements into a habitability index and a
// mode-aware survivability score, each with a field-by-field breakdown.
// Every function in this package is pure and safe for concurrent use.
package scoring

// Habitability labels.
const (
	LabelUnknown              = "Unknown"
	LabelUninhabitable        = "Uninhabitable"
	LabelMarginal             = "Marginal"
	LabelPotentiallyHabitable = "Potentially Habitable"
)

// Survivability statuses.
const (
	StatusExtremelyHostile = "Extremely Hostile"
	StatusChallenging      = "Challenging but Possible"
	StatusSuitable         = "Suitable for Life"
)

// HabitabilityResult is the complete output of a habitability assessment.
// Immutable once computed.
type HabitabilityResult struct {
	Name      string                `json:"name,omitempty"`
	Score     int                   `json:"score"` // 0-100
	ESI       int                   `json:"esi"`   // 0-100
	Label     string                `json:"label"`
	Breakdown HabitabilityBreakdown `json:"breakdown"`
}

// HabitabilityBreakdown holds the sub-scores and diagnostics behind a result.
type HabitabilityBreakdown struct {
	Reason             string        `json:"reason,omitempty"` // set when a short-circuit path was taken
	Zone               *Zone         `json:"zone,omitempty"`
	Orbit              float64       `json:"orbit"`
	Factors            *FactorScores `json:"factors,omitempty"` // nil when the weighted combination never ran
	RawWeighted        float64       `json:"raw_weighted"`
	CoreMissingPenalty int           `json:"core_missing_penalty"` // percent, 0-30
	BaseScore          int           `json:"base_score"`
	ESIFloat           float64       `json:"esi_float"` // unpenalized product, 0-1
	ESIMissing         []string      `json:"esi_missing"`
	Noise              float64       `json:"noise"`
	CeilingPenalty     int           `json:"ceiling_penalty,omitempty"`
}

// FactorScores are the band scores of the individual physical factors.
type FactorScores struct {
	Temperature float64 `json:"temperature"`
	Radius      float64 `json:"radius"`
	Mass        float64 `json:"mass"`
	Insolation  float64 `json:"insolation"`
}

// Zone is the circumstellar habitable zone, in AU.
type Zone struct {
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

// Contains reports whether distance lies inside the zone, edges included.
func (z Zone) Contains(distance float64) bool {
	return distance >= z.Inner && distance <= z.Outer
}

// SimulationResult is the output of a survivability run.
// Immutable once computed.
type SimulationResult struct {
	Score          int                 `json:"score"` // 0-100
	Status         string              `json:"status"`
	Mode           Mode                `json:"mode"`
	Breakdown      SimulationBreakdown `json:"breakdown"`
	Recommendation string              `json:"recommendation"`
	TraceElements  []string            `json:"trace_elements,omitempty"` // echoed, not scored
}

// SimulationBreakdown holds the per-factor survivability scores (100 = ideal).
type SimulationBreakdown struct {
	Temperature float64 `json:"temperature"`
	Water       float64 `json:"water"`
	Atmosphere  float64 `json:"atmosphere"`
	Gravity     float64 `json:"gravity"`
	Radiation   float64 `json:"radiation"`
	Pressure    float64 `json:"pressure"`
}

// LabelForScore maps a combined habitability score to its label.
func LabelForScore(score int) string {
	switch {
	case score >= 70:
		return LabelPotentiallyHabitable
	case score >= 40:
		return LabelMarginal
	default:
		return LabelUninhabitable
	}
}

// StatusForScore maps a survivability score to its status tier.
func StatusForScore(score int) string {
	switch {
	case score >= 75:
		return StatusSuitable
	case score >= 40:
		return StatusChallenging
	default:
		return StatusExtremelyHostile
	}
}

// recommendationFor returns the fixed advice text for a status tier.
func recommendationFor(status string) string {
	switch status {
	case StatusSuitable:
		return "Conditions support life with minimal intervention. Prioritize long-term monitoring and resource mapping."
	case StatusChallenging:
		return "Survival is possible with protective habitats, life support and careful resource management."
	default:
		return "Environment is lethal without full isolation. Consider robotic exploration or large-scale terraforming first."
	}
}
