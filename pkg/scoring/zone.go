package scoring

import (
	"math"

	"github.com/habiscope/habiscope/pkg/planet"
)

// Effective-flux fits for the habitable zone edges (Kopparapu et al. 2013).
// Each edge is seff = base + c[0]*T + c[1]*T^2 + c[2]*T^3 + c[3]*T^4 with
// T = Teff - 5780.
var (
	moistGreenhouseBase  = 1.014
	moistGreenhouseCoeff = [4]float64{8.177e-5, 1.706e-9, -1.814e-12, -1.975e-16}

	maxGreenhouseBase  = 0.343
	maxGreenhouseCoeff = [4]float64{5.447e-5, 1.527e-9, -2.170e-12, -3.828e-16}
)

// HabitableZone returns the inner (moist greenhouse) and outer (maximum
// greenhouse) edges for a star. ok is false when either input is zero or
// otherwise unusable, or when the fit yields a non-positive flux.
func HabitableZone(luminosity, starTempK float64) (zone Zone, ok bool) {
	if !(luminosity > 0) || !(starTempK > 0) || math.IsInf(luminosity, 0) || math.IsInf(starTempK, 0) {
		return Zone{}, false
	}

	t := starTempK - planet.SolarTempK
	inner := effectiveFlux(moistGreenhouseBase, moistGreenhouseCoeff, t)
	outer := effectiveFlux(maxGreenhouseBase, maxGreenhouseCoeff, t)
	if inner <= 0 || outer <= 0 {
		return Zone{}, false
	}

	return Zone{
		Inner: math.Sqrt(luminosity / inner),
		Outer: math.Sqrt(luminosity / outer),
	}, true
}

func effectiveFlux(base float64, c [4]float64, t float64) float64 {
	t2 := t * t
	return base + c[0]*t + c[1]*t2 + c[2]*t2*t + c[3]*t2*t2
}
