package scoring

import "math"

// Band is a piecewise-linear scoring window: 100 inside [IdealMin, IdealMax],
// decaying to 0 at the falloff bounds. A nil falloff bound switches that side
// to ratio decay (value/IdealMin or IdealMax/value).
type Band struct {
	IdealMin   float64  `json:"ideal_min"`
	IdealMax   float64  `json:"ideal_max"`
	FalloffMin *float64 `json:"falloff_min,omitempty"`
	FalloffMax *float64 `json:"falloff_max,omitempty"`
}

// NewBand builds a band with both falloff bounds set.
func NewBand(idealMin, idealMax, falloffMin, falloffMax float64) Band {
	return Band{
		IdealMin:   idealMin,
		IdealMax:   idealMax,
		FalloffMin: &falloffMin,
		FalloffMax: &falloffMax,
	}
}

// RatioBand builds a band with no falloff bounds.
func RatioBand(idealMin, idealMax float64) Band {
	return Band{IdealMin: idealMin, IdealMax: idealMax}
}

// ScorePtr scores an optional value; unknown values score 0.
func (b Band) ScorePtr(value *float64) float64 {
	if value == nil {
		return 0
	}
	return b.Score(*value)
}

// Score returns the band score of value in [0, 100]. NaN and ±Inf score 0.
func (b Band) Score(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}

	var s float64
	switch {
	case value >= b.IdealMin && value <= b.IdealMax:
		return 100
	case value < b.IdealMin:
		if b.FalloffMin == nil {
			if b.IdealMin == 0 {
				return 0
			}
			s = value / b.IdealMin * 100
		} else if value <= *b.FalloffMin {
			return 0
		} else {
			s = (value - *b.FalloffMin) / (b.IdealMin - *b.FalloffMin) * 100
		}
	default:
		if b.FalloffMax == nil {
			s = b.IdealMax / value * 100
		} else if value >= *b.FalloffMax {
			return 0
		} else {
			s = (*b.FalloffMax - value) / (*b.FalloffMax - b.IdealMax) * 100
		}
	}

	return clamp(s, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampRound clamps v to [0, 100] and rounds half away from zero.
func clampRound(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(clamp(v, 0, 100)))
}
