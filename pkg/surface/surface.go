// Package surface defines output rendering for Habiscope results.
// Implementations handle different output targets: terminal, Markdown, JSON.
package surface

import (
	"io"

	"github.com/habiscope/habiscope/pkg/scoring"
)

// Renderer produces formatted output from assessment results.
type Renderer interface {
	RenderHabitability(w io.Writer, result *scoring.HabitabilityResult) error
	RenderSimulation(w io.Writer, result *scoring.SimulationResult) error
	RenderRecommendation(w io.Writer, rec *Recommendation) error
}

// Recommendation is the outcome of ranking a corpus.
type Recommendation struct {
	Planet     *string             `json:"planet"` // nil when nothing qualified
	Mode       scoring.Mode        `json:"mode"`
	MinScore   float64             `json:"min_score"`
	Candidates []scoring.Candidate `json:"candidates"`
}

// NewRecommendation builds a Recommendation from ranked candidates.
func NewRecommendation(mode scoring.Mode, minScore float64, candidates []scoring.Candidate) *Recommendation {
	rec := &Recommendation{Mode: mode, MinScore: minScore, Candidates: candidates}
	if len(candidates) > 0 {
		rec.Planet = &candidates[0].Name
	}
	if rec.Candidates == nil {
		rec.Candidates = []scoring.Candidate{}
	}
	return rec
}

// ForFormat returns the renderer for an output format name:
// "text" (default), "markdown" or "json".
func ForFormat(format string) Renderer {
	switch format {
	case "json":
		return &JSONRenderer{}
	case "markdown", "md":
		return &MarkdownRenderer{}
	default:
		return &TerminalRenderer{}
	}
}
