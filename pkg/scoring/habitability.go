package scoring

import (
	"math"

	"github.com/habiscope/habiscope/pkg/planet"
)

// HabitabilityModel combines the habitable zone, per-factor band scores and
// the ESI into a single habitability index.
type HabitabilityModel struct {
	w DefaultWeights
}

// NewHabitabilityModel creates a model with the given weights.
func NewHabitabilityModel(w DefaultWeights) *HabitabilityModel {
	return &HabitabilityModel{w: w}
}

// Calculate assesses a record. It never fails: unknown inputs degrade to
// documented defaults, and an unusable host star yields the Unknown label.
func (m *HabitabilityModel) Calculate(r planet.Record) HabitabilityResult {
	esi := ComputeESI(r)

	result := HabitabilityResult{
		Name: r.Name,
		ESI:  esi.ESI,
		Breakdown: HabitabilityBreakdown{
			ESIFloat:   esi.ESIFloat,
			ESIMissing: esi.Missing,
		},
	}

	luminosity := planet.FloatOr(r.StarLuminosity, planet.SolarLuminosity)
	starTemp := planet.FloatOr(r.StarTempK, planet.SolarTempK)
	zone, ok := HabitableZone(luminosity, starTemp)
	if !ok {
		result.Score = 10
		result.Label = LabelUnknown
		result.Breakdown.Reason = "habitable zone unavailable: host star luminosity or temperature unusable"
		return result
	}
	result.Breakdown.Zone = &zone
	result.Breakdown.Orbit = orbitScore(r.SemiMajorAxisAU, zone)

	if reason, excluded := m.hardExclusion(r); excluded {
		result.Score = 0
		result.Label = LabelUninhabitable
		result.Breakdown.Reason = reason
		return result
	}

	factors := FactorScores{
		Temperature: m.w.TemperatureBand.ScorePtr(known(r.EquilibriumTempK)),
		Radius:      m.w.RadiusBand.ScorePtr(known(r.Radius)),
		Mass:        m.w.MassBand.ScorePtr(known(r.Mass)),
		Insolation:  m.w.InsolationBand.ScorePtr(known(r.Insolation)),
	}
	result.Breakdown.Factors = &factors

	penalty := coreMissingPenalty(r)
	raw := m.w.TemperatureWeight*factors.Temperature +
		m.w.OrbitWeight*result.Breakdown.Orbit +
		m.w.RadiusWeight*factors.Radius +
		m.w.MassWeight*factors.Mass +
		m.w.InsolationWeight*factors.Insolation
	base := clampRound(raw * (1 - float64(penalty)/100))

	noise := NameJitter(r.Name, m.w.JitterAmplitude)
	combined := clampRound(float64(base)*m.w.BaseShare + float64(esi.ESI)*m.w.ESIShare + noise)

	result.Breakdown.RawWeighted = raw
	result.Breakdown.CoreMissingPenalty = penalty
	result.Breakdown.BaseScore = base
	result.Breakdown.Noise = noise

	// Ceiling rules are applied in this exact order; collapsing them changes
	// results at the edges.
	if !IsEarth(r.Name) {
		if result.ESI >= 100 {
			result.ESI = 99
		}
		if combined >= 100 {
			combined = 99
		}
		if len(esi.Missing) > 0 || penalty > 0 {
			cut := int(math.Ceil(float64(len(esi.Missing))*7 + float64(penalty)/3))
			if cut > 15 {
				cut = 15
			}
			combined -= cut
			if combined < 0 {
				combined = 0
			}
			if combined > 99 {
				combined = 99
			}
			result.Breakdown.CeilingPenalty = cut
		}
	}

	result.Score = combined
	result.Label = LabelForScore(combined)
	return result
}

// hardExclusion rejects bodies whose known temperature or radius rules out
// surface habitability, before any weighting happens.
func (m *HabitabilityModel) hardExclusion(r planet.Record) (string, bool) {
	if t, ok := planet.Float(r.EquilibriumTempK); ok && (t > m.w.MaxTempK || t < m.w.MinTempK) {
		return "equilibrium temperature outside survivable range", true
	}
	if rad, ok := planet.Float(r.Radius); ok && (rad > m.w.MaxRadius || rad < m.w.MinRadius) {
		return "radius outside rocky-planet range", true
	}
	return "", false
}

// orbitScore rates the orbital distance against the habitable zone.
func orbitScore(semiMajorAxis *float64, z Zone) float64 {
	d, ok := planet.Float(semiMajorAxis)
	if !ok {
		return 0
	}
	if d < 0.5*z.Inner || d > 1.5*z.Outer {
		return 0
	}
	if z.Contains(d) {
		return 100
	}
	edge := math.Min(math.Abs(d-z.Inner), math.Abs(d-z.Outer))
	return clamp(100-edge*200, 0, 100)
}

// coreMissingPenalty is 10 percentage points per unknown core field, max 30.
func coreMissingPenalty(r planet.Record) int {
	penalty := 0
	for _, p := range []*float64{r.Radius, r.Mass, r.EquilibriumTempK} {
		if _, ok := planet.Float(p); !ok {
			penalty += 10
		}
	}
	if penalty > 30 {
		penalty = 30
	}
	return penalty
}

// known filters NaN and ±Inf out of an optional value.
func known(p *float64) *float64 {
	if _, ok := planet.Float(p); !ok {
		return nil
	}
	return p
}
