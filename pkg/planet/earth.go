package planet

// Solar and terrestrial reference values.
const (
	SolarTempK         = 5780.0
	SolarLuminosity    = 1.0
	EarthTempK         = 288.0
	EarthRadius        = 1.0
	EarthMass          = 1.0
	EarthDensity       = 1.0
	EarthEscape        = 1.0
	EarthInsolation    = 1.0
	EarthSemiMajorAxis = 1.0
)

// Earth returns the baseline record every other body is compared against.
func Earth() Record {
	return Record{
		Name:             "Earth",
		EquilibriumTempK: Ptr(EarthTempK),
		Radius:           Ptr(EarthRadius),
		Mass:             Ptr(EarthMass),
		Insolation:       Ptr(EarthInsolation),
		SemiMajorAxisAU:  Ptr(EarthSemiMajorAxis),
		StarTempK:        Ptr(SolarTempK),
		StarLuminosity:   Ptr(SolarLuminosity),
		Density:          Ptr(EarthDensity),
		EscapeVelocity:   Ptr(EarthEscape),
		WaterPresence:    Ptr(0.7),
		O2:               Ptr(21),
		CO2:              Ptr(0.04),
		Nitrogen:         Ptr(78),
		ToxicGases:       Ptr(0),
		Gravity:          Ptr(1),
		Pressure:         Ptr(1),
		Radiation:        "low",
	}
}
