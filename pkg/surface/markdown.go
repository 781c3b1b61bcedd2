package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/habiscope/habiscope/pkg/scoring"
)

// MarkdownRenderer produces Markdown reports, e.g. for issue comments or
// mission notes.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) RenderHabitability(w io.Writer, result *scoring.HabitabilityResult) error {
	_, err := io.WriteString(w, buildHabitabilityMarkdown(result))
	return err
}

func (r *MarkdownRenderer) RenderSimulation(w io.Writer, result *scoring.SimulationResult) error {
	_, err := io.WriteString(w, buildSimulationMarkdown(result))
	return err
}

func (r *MarkdownRenderer) RenderRecommendation(w io.Writer, rec *Recommendation) error {
	var sb strings.Builder
	if rec.Planet == nil {
		sb.WriteString(fmt.Sprintf("## No %s candidate at or above %.0f\n", rec.Mode, rec.MinScore))
	} else {
		sb.WriteString(fmt.Sprintf("## Closest survivable planet: %s\n\n", *rec.Planet))
		sb.WriteString("| # | Planet | Score | Status |\n|---|--------|-------|--------|\n")
		for i, c := range rec.Candidates {
			sb.WriteString(fmt.Sprintf("| %d | %s | %d | %s |\n", i+1, c.Name, c.Score, c.Result.Status))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func buildHabitabilityMarkdown(result *scoring.HabitabilityResult) string {
	var sb strings.Builder

	name := result.Name
	if name == "" {
		name = "Unnamed body"
	}
	sb.WriteString(fmt.Sprintf("## %s %s: %s (score %d, ESI %d)\n\n",
		labelIcon(result.Label), name, result.Label, result.Score, result.ESI))

	b := result.Breakdown
	if b.Reason != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n\n", b.Reason))
	}

	sb.WriteString("| Component | Value |\n|-----------|-------|\n")
	if b.Zone != nil {
		sb.WriteString(fmt.Sprintf("| Habitable zone (AU) | %.3f to %.3f |\n", b.Zone.Inner, b.Zone.Outer))
		sb.WriteString(fmt.Sprintf("| Orbit | %.1f |\n", b.Orbit))
	}
	if b.Factors != nil {
		sb.WriteString(fmt.Sprintf("| Temperature | %.1f |\n", b.Factors.Temperature))
		sb.WriteString(fmt.Sprintf("| Radius | %.1f |\n", b.Factors.Radius))
		sb.WriteString(fmt.Sprintf("| Mass | %.1f |\n", b.Factors.Mass))
		sb.WriteString(fmt.Sprintf("| Insolation | %.1f |\n", b.Factors.Insolation))
		sb.WriteString(fmt.Sprintf("| Base score | %d |\n", b.BaseScore))
	}
	sb.WriteString(fmt.Sprintf("| ESI (raw) | %.3f |\n", b.ESIFloat))
	sb.WriteString("\n")

	if len(b.ESIMissing) > 0 {
		sb.WriteString(fmt.Sprintf("Missing ESI inputs: %s\n", strings.Join(b.ESIMissing, ", ")))
	}
	return sb.String()
}

func buildSimulationMarkdown(result *scoring.SimulationResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s %s survivability: %s (score %d)\n\n",
		statusIcon(result.Status), result.Mode, result.Status, result.Score))

	b := result.Breakdown
	sb.WriteString("| Factor | Score |\n|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Temperature | %.1f |\n", b.Temperature))
	sb.WriteString(fmt.Sprintf("| Water | %.1f |\n", b.Water))
	sb.WriteString(fmt.Sprintf("| Atmosphere | %.1f |\n", b.Atmosphere))
	sb.WriteString(fmt.Sprintf("| Gravity | %.1f |\n", b.Gravity))
	sb.WriteString(fmt.Sprintf("| Radiation | %.1f |\n", b.Radiation))
	sb.WriteString(fmt.Sprintf("| Pressure | %.1f |\n", b.Pressure))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("**Recommendation:** %s\n", result.Recommendation))
	return sb.String()
}

func labelIcon(label string) string {
	switch label {
	case scoring.LabelPotentiallyHabitable:
		return ":green_circle:"
	case scoring.LabelMarginal:
		return ":yellow_circle:"
	case scoring.LabelUninhabitable:
		return ":red_circle:"
	default:
		return ":white_circle:"
	}
}

func statusIcon(status string) string {
	switch status {
	case scoring.StatusSuitable:
		return ":green_circle:"
	case scoring.StatusChallenging:
		return ":orange_circle:"
	default:
		return ":red_circle:"
	}
}
