package scoring

import (
	"math"
	"strings"
)

// Mode selects the tolerance table used by the survivability simulator.
type Mode string

const (
	ModeHuman        Mode = "human"
	ModeMicrobial    Mode = "microbial"
	ModeTerraforming Mode = "terraforming"
)

// ParseMode maps a free-form mode name to a Mode. Unrecognized names fall
// back to ModeHuman.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeMicrobial:
		return ModeMicrobial
	case ModeTerraforming:
		return ModeTerraforming
	default:
		return ModeHuman
	}
}

// Modes lists every supported mode.
func Modes() []Mode {
	return []Mode{ModeHuman, ModeMicrobial, ModeTerraforming}
}

// Radiation is the surface radiation level.
type Radiation string

const (
	RadiationLow     Radiation = "low"
	RadiationMedium  Radiation = "medium"
	RadiationHigh    Radiation = "high"
	RadiationUnknown Radiation = "unknown"
)

// ParseRadiation maps a free-form level to a Radiation. Unrecognized names
// become RadiationUnknown, which is scored like low.
func ParseRadiation(s string) Radiation {
	switch Radiation(strings.ToLower(strings.TrimSpace(s))) {
	case RadiationLow:
		return RadiationLow
	case RadiationMedium:
		return RadiationMedium
	case RadiationHigh:
		return RadiationHigh
	default:
		return RadiationUnknown
	}
}

// SurvivabilityParams is the environment a simulation runs against.
// Non-finite numbers are replaced before scoring: water by 0, everything
// else by the Earth baseline from DefaultSurvivabilityParams.
type SurvivabilityParams struct {
	TempC         float64   `json:"temp_c"`
	Water         float64   `json:"water"` // fraction 0..1
	O2            float64   `json:"o2"`    // %
	CO2           float64   `json:"co2"`   // %
	Nitrogen      float64   `json:"nitrogen"`
	ToxicGases    float64   `json:"toxic_gases"` // %
	Radiation     Radiation `json:"radiation"`
	Gravity       float64   `json:"gravity"`  // relative to Earth
	Pressure      float64   `json:"pressure"` // relative to Earth
	TraceElements []string  `json:"trace_elements,omitempty"`
}

// DefaultSurvivabilityParams is an Earth-like surface.
func DefaultSurvivabilityParams() SurvivabilityParams {
	return SurvivabilityParams{
		TempC:      15,
		Water:      0.7,
		O2:         21,
		CO2:        0.04,
		Nitrogen:   78,
		ToxicGases: 0,
		Radiation:  RadiationLow,
		Gravity:    1,
		Pressure:   1,
	}
}

// sanitized returns a copy with non-finite values replaced.
func (p SurvivabilityParams) sanitized() SurvivabilityParams {
	d := DefaultSurvivabilityParams()
	fix := func(v, def float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return v
	}
	p.TempC = fix(p.TempC, d.TempC)
	p.Water = fix(p.Water, 0)
	p.O2 = fix(p.O2, d.O2)
	p.CO2 = fix(p.CO2, d.CO2)
	p.Nitrogen = fix(p.Nitrogen, d.Nitrogen)
	p.ToxicGases = fix(p.ToxicGases, d.ToxicGases)
	p.Gravity = fix(p.Gravity, d.Gravity)
	p.Pressure = fix(p.Pressure, d.Pressure)
	p.Radiation = ParseRadiation(string(p.Radiation))
	return p
}

// Simulator scores how tolerable an environment is for a life mode.
type Simulator struct {
	w DefaultWeights
}

// NewSimulator creates a simulator with the given weights.
func NewSimulator(w DefaultWeights) *Simulator {
	return &Simulator{w: w}
}

// Run scores params for mode. Each factor deducts weight*(100-factor) from
// a starting score of 100.
func (s *Simulator) Run(params SurvivabilityParams, mode Mode) SimulationResult {
	mode = ParseMode(string(mode))
	p := params.sanitized()

	b := SimulationBreakdown{
		Temperature: temperatureFactor(p.TempC, mode),
		Water:       waterFactor(p.Water, mode),
		Atmosphere:  atmosphereFactor(p.O2, p.ToxicGases),
		Gravity:     gravityFactor(p.Gravity),
		Radiation:   radiationFactor(p.Radiation, mode),
		Pressure:    pressureFactor(p.Pressure),
	}

	deduction := s.w.SurvivalTemperatureWeight*(100-b.Temperature) +
		s.w.SurvivalWaterWeight*(100-b.Water) +
		s.w.SurvivalAtmosphereWeight*(100-b.Atmosphere) +
		s.w.SurvivalGravityWeight*(100-b.Gravity) +
		s.w.SurvivalRadiationWeight*(100-b.Radiation) +
		s.w.SurvivalPressureWeight*(100-b.Pressure)

	score := clampRound(100 - deduction)
	status := StatusForScore(score)

	return SimulationResult{
		Score:          score,
		Status:         status,
		Mode:           mode,
		Breakdown:      b,
		Recommendation: recommendationFor(status),
		TraceElements:  p.TraceElements,
	}
}

func temperatureFactor(t float64, mode Mode) float64 {
	switch mode {
	case ModeMicrobial:
		if t < -80 || t > 120 {
			return 0
		}
		return 80
	case ModeTerraforming:
		return math.Max(0, 100-math.Abs(t-22)*3)
	default:
		switch {
		case t < -50 || t > 60:
			return 0
		case t < -20 || t > 50:
			return 30
		case t < 0 || t > 40:
			return 70
		default:
			return 100
		}
	}
}

func waterFactor(water float64, mode Mode) float64 {
	score := math.Min(100, water*100)
	if score < 10 {
		return 0
	}
	if mode == ModeMicrobial {
		score = math.Min(100, score*1.2)
	}
	return score
}

func atmosphereFactor(o2, toxic float64) float64 {
	score := 100.0
	if o2 < 10 || o2 > 30 {
		score -= 50
	}
	if toxic > 2 {
		score -= toxic * 20
	}
	return math.Max(0, score)
}

func gravityFactor(g float64) float64 {
	switch {
	case g < 0.5 || g > 2:
		return 30
	case g < 0.8 || g > 1.2:
		return 70
	default:
		return 100
	}
}

// radiationFactor may exceed 100 in microbial mode; the total is clamped.
func radiationFactor(r Radiation, mode Mode) float64 {
	score := 100.0
	switch r {
	case RadiationMedium:
		score = 60
	case RadiationHigh:
		score = 20
	}
	if mode == ModeMicrobial {
		score += 10
	}
	return score
}

func pressureFactor(p float64) float64 {
	switch {
	case p < 0.2 || p > 5:
		return 20
	case p < 0.5 || p > 2:
		return 60
	default:
		return 100
	}
}
