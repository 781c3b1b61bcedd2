package scoring

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/habiscope/habiscope/pkg/planet"
)

const kelvinOffset = 273

// ParamsFromRecord derives a survivability environment from a corpus record.
// Equilibrium temperature is converted to Celsius (an unknown temperature
// counts as 0 K), unknown water counts as none, and the atmosphere, gravity
// and pressure default to Earth values.
func ParamsFromRecord(r planet.Record) SurvivabilityParams {
	d := DefaultSurvivabilityParams()
	return SurvivabilityParams{
		TempC:      planet.FloatOr(r.EquilibriumTempK, 0) - kelvinOffset,
		Water:      planet.FloatOr(r.WaterPresence, 0),
		O2:         planet.FloatOr(r.O2, d.O2),
		CO2:        planet.FloatOr(r.CO2, d.CO2),
		Nitrogen:   planet.FloatOr(r.Nitrogen, d.Nitrogen),
		ToxicGases: planet.FloatOr(r.ToxicGases, d.ToxicGases),
		Radiation:  ParseRadiation(r.Radiation),
		Gravity:    planet.FloatOr(r.Gravity, d.Gravity),
		Pressure:   planet.FloatOr(r.Pressure, d.Pressure),
	}
}

// Candidate is one corpus record that met the recommendation threshold.
type Candidate struct {
	Name   string           `json:"name"`
	Score  int              `json:"score"`
	Result SimulationResult `json:"result"`
}

// Recommender picks the most survivable body out of a corpus.
type Recommender struct {
	Simulator *Simulator
	Mode      Mode
	Workers   int // parallel scorers; <= 0 means GOMAXPROCS
}

// NewRecommender creates a recommender for mode with default weights.
func NewRecommender(mode Mode) *Recommender {
	return &Recommender{
		Simulator: NewSimulator(Defaults()),
		Mode:      ParseMode(string(mode)),
	}
}

// Rank scores every record and returns those with score >= minScore, best
// first. Ties keep corpus order. A NaN minScore admits no record.
func (r *Recommender) Rank(ctx context.Context, corpus []planet.Record, minScore float64) ([]Candidate, error) {
	sim := r.Simulator
	if sim == nil {
		sim = NewSimulator(Defaults())
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]SimulationResult, len(corpus))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range corpus {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = sim.Run(ParamsFromRecord(corpus[i]), r.Mode)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var candidates []Candidate
	for i, res := range results {
		if !(float64(res.Score) >= minScore) {
			continue
		}
		candidates = append(candidates, Candidate{
			Name:   corpus[i].Name,
			Score:  res.Score,
			Result: res,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates, nil
}

// Closest returns the name of the best candidate, or ok=false when no
// record reaches minScore.
func (r *Recommender) Closest(ctx context.Context, corpus []planet.Record, minScore float64) (name string, ok bool, err error) {
	candidates, err := r.Rank(ctx, corpus, minScore)
	if err != nil {
		return "", false, err
	}
	if len(candidates) == 0 {
		return "", false, nil
	}
	return candidates[0].Name, true, nil
}

// ClosestSurvivablePlanet scores corpus in human mode and returns the name
// of the highest-scoring record with score >= minScore. A NaN minScore
// never matches.
func ClosestSurvivablePlanet(minScore float64, corpus []planet.Record) (string, bool) {
	r := NewRecommender(ModeHuman)
	r.Workers = 1
	name, ok, _ := r.Closest(context.Background(), corpus, minScore)
	return name, ok
}
