package surface

import (
	"encoding/json"
	"io"

	"github.com/habiscope/habiscope/pkg/scoring"
)

// JSONRenderer marshals results to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) RenderHabitability(w io.Writer, result *scoring.HabitabilityResult) error {
	return writeIndented(w, result)
}

func (r *JSONRenderer) RenderSimulation(w io.Writer, result *scoring.SimulationResult) error {
	return writeIndented(w, result)
}

func (r *JSONRenderer) RenderRecommendation(w io.Writer, rec *Recommendation) error {
	return writeIndented(w, rec)
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
