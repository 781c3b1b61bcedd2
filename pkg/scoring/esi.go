package scoring

import (
	"math"
	"strings"

	"github.com/habiscope/habiscope/pkg/planet"
)

// ESI weight exponents (Schulze-Makuch et al. 2011).
const (
	esiWeightRadius  = 0.57
	esiWeightDensity = 1.07
	esiWeightEscape  = 0.70
	esiWeightTemp    = 5.58
)

// ESI field names reported in ESIResult.Missing.
const (
	FieldRadius         = "radius"
	FieldDensity        = "density"
	FieldEscapeVelocity = "escape_velocity"
	FieldTemperature    = "temperature"
)

// ESIResult is the Earth Similarity Index of a record.
type ESIResult struct {
	ESI      int      `json:"esi"`       // 0-100 after penalties and caps
	ESIFloat float64  `json:"esi_float"` // raw weighted product, 0-1
	Missing  []string `json:"missing"`
}

// IsEarth reports whether name refers to Earth itself ("earth" or "sol",
// case-insensitive). Only Earth may reach a perfect score.
func IsEarth(name string) bool {
	n := strings.TrimSpace(name)
	return strings.EqualFold(n, "earth") || strings.EqualFold(n, "sol")
}

// ComputeESI scores how physically similar r is to Earth. Unknown inputs
// fall back to the Earth value but are listed in Missing and penalized.
func ComputeESI(r planet.Record) ESIResult {
	missing := []string{}

	value := func(p *float64, field string, ref float64) float64 {
		if v, ok := planet.Float(p); ok {
			return v
		}
		missing = append(missing, field)
		return ref
	}

	radius := value(r.Radius, FieldRadius, planet.EarthRadius)
	density := value(r.Density, FieldDensity, planet.EarthDensity)
	escape := value(r.EscapeVelocity, FieldEscapeVelocity, planet.EarthEscape)
	temp := value(r.EquilibriumTempK, FieldTemperature, planet.EarthTempK)

	product := esiTerm(radius, planet.EarthRadius, esiWeightRadius) *
		esiTerm(density, planet.EarthDensity, esiWeightDensity) *
		esiTerm(escape, planet.EarthEscape, esiWeightEscape) *
		esiTerm(temp/planet.EarthTempK, 1, esiWeightTemp)

	esi := clampRound(product * 100)

	penalty := 10 * len(missing)
	if penalty > 40 {
		penalty = 40
	}
	esi -= penalty
	if esi < 0 {
		esi = 0
	}

	if !IsEarth(r.Name) {
		if esi >= 100 {
			esi = 99
		}
		if len(missing) > 0 && esi > 95 {
			esi = 95
		}
	}

	return ESIResult{ESI: esi, ESIFloat: product, Missing: missing}
}

// esiTerm is one factor of the ESI product: (1 - |x-ref|/(x+ref))^w.
func esiTerm(x, ref, w float64) float64 {
	sum := x + ref
	if sum <= 0 {
		return 0
	}
	sim := 1 - math.Abs(x-ref)/sum
	if sim <= 0 {
		return 0
	}
	return math.Pow(sim, w)
}
