package scoring

// DefaultWeights holds the windows, weights and thresholds used by both models.
type DefaultWeights struct {
	// Habitability factor windows
	TemperatureBand Band
	RadiusBand      Band
	MassBand        Band
	InsolationBand  Band

	// Habitability weighted combination (sums to 1)
	TemperatureWeight float64
	OrbitWeight       float64
	RadiusWeight      float64
	MassWeight        float64
	InsolationWeight  float64

	// Final blend of the base score and ESI
	BaseShare       float64
	ESIShare        float64
	JitterAmplitude float64 // noise lies in [-JitterAmplitude, +JitterAmplitude]

	// Hard exclusion limits
	MinTempK  float64
	MaxTempK  float64
	MinRadius float64
	MaxRadius float64

	// Survivability factor weights (sum to 1)
	SurvivalTemperatureWeight float64
	SurvivalWaterWeight       float64
	SurvivalAtmosphereWeight  float64
	SurvivalGravityWeight     float64
	SurvivalRadiationWeight   float64
	SurvivalPressureWeight    float64
}

// Defaults returns the default scoring weights.
func Defaults() DefaultWeights {
	return DefaultWeights{
		TemperatureBand: NewBand(250, 320, 180, 380),
		RadiusBand:      NewBand(0.8, 1.8, 0.5, 2.5),
		MassBand:        NewBand(0.8, 5, 0.5, 10),
		InsolationBand:  NewBand(0.35, 1.7, 0.2, 2.5),

		TemperatureWeight: 0.35,
		OrbitWeight:       0.25,
		RadiusWeight:      0.15,
		MassWeight:        0.15,
		InsolationWeight:  0.10,

		BaseShare:       0.6,
		ESIShare:        0.4,
		JitterAmplitude: 2.5,

		MinTempK:  150,
		MaxTempK:  500,
		MinRadius: 0.3,
		MaxRadius: 3,

		SurvivalTemperatureWeight: 0.25,
		SurvivalWaterWeight:       0.25,
		SurvivalAtmosphereWeight:  0.20,
		SurvivalGravityWeight:     0.10,
		SurvivalRadiationWeight:   0.10,
		SurvivalPressureWeight:    0.10,
	}
}
