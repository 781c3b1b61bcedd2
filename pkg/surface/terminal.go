package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/habiscope/habiscope/pkg/scoring"
)

// TerminalRenderer renders results as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func scoreColor(score int) string {
	if noColor() {
		return ""
	}
	switch {
	case score >= 70:
		return colorGreen
	case score >= 40:
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) RenderHabitability(w io.Writer, result *scoring.HabitabilityResult) error {
	sc := scoreColor(result.Score)
	name := result.Name
	if name == "" {
		name = "(unnamed)"
	}

	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("Habiscope: %s: %s (score %s, ESI %d)",
		name, colored(result.Label, sc), colored(fmt.Sprint(result.Score), sc), result.ESI)))

	b := result.Breakdown
	if b.Reason != "" {
		fmt.Fprintf(w, "Note: %s\n\n", b.Reason)
	}

	if b.Zone != nil {
		fmt.Fprintf(w, "Habitable zone: %.3f to %.3f AU\n", b.Zone.Inner, b.Zone.Outer)
		fmt.Fprintf(w, "Orbit score:    %.1f\n\n", b.Orbit)
	}

	if b.Factors != nil {
		fmt.Fprintln(w, "Factors:")
		fmt.Fprintf(w, "  %-12s %6.1f\n", "temperature", b.Factors.Temperature)
		fmt.Fprintf(w, "  %-12s %6.1f\n", "radius", b.Factors.Radius)
		fmt.Fprintf(w, "  %-12s %6.1f\n", "mass", b.Factors.Mass)
		fmt.Fprintf(w, "  %-12s %6.1f\n", "insolation", b.Factors.Insolation)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Base score %d (weighted %.1f, core data penalty %d%%), noise %+.2f\n",
			b.BaseScore, b.RawWeighted, b.CoreMissingPenalty, b.Noise)
	}

	if len(b.ESIMissing) > 0 {
		fmt.Fprintf(w, "%s\n", dim("ESI inputs missing: "+strings.Join(b.ESIMissing, ", ")))
	}
	if b.CeilingPenalty > 0 {
		fmt.Fprintf(w, "%s\n", dim(fmt.Sprintf("Incomplete-data ceiling applied: -%d", b.CeilingPenalty)))
	}
	fmt.Fprintln(w)

	return nil
}

func (r *TerminalRenderer) RenderSimulation(w io.Writer, result *scoring.SimulationResult) error {
	sc := scoreColor(result.Score)

	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("Habiscope: %s survivability %s (score %s)",
		result.Mode, colored(result.Status, sc), colored(fmt.Sprint(result.Score), sc))))

	b := result.Breakdown
	fmt.Fprintln(w, "Factors:")
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"temperature", b.Temperature},
		{"water", b.Water},
		{"atmosphere", b.Atmosphere},
		{"gravity", b.Gravity},
		{"radiation", b.Radiation},
		{"pressure", b.Pressure},
	} {
		marker := " "
		if f.value < 50 {
			marker = colored("!", colorRed)
		}
		fmt.Fprintf(w, "  %s %-12s %6.1f\n", marker, f.name, f.value)
	}
	fmt.Fprintln(w)

	if len(result.TraceElements) > 0 {
		fmt.Fprintf(w, "Trace elements: %s\n\n", strings.Join(result.TraceElements, ", "))
	}

	fmt.Fprintln(w, "Recommendation:")
	for _, line := range wrapText(result.Recommendation, 70) {
		fmt.Fprintf(w, "  %s\n", dim(line))
	}
	fmt.Fprintln(w)

	return nil
}

func (r *TerminalRenderer) RenderRecommendation(w io.Writer, rec *Recommendation) error {
	if rec.Planet == nil {
		fmt.Fprintf(w, "No planet reaches a %s survivability score of %.0f.\n", rec.Mode, rec.MinScore)
		return nil
	}

	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("Closest survivable planet (%s, min %.0f): %s",
		rec.Mode, rec.MinScore, *rec.Planet)))

	fmt.Fprintln(w, "Candidates:")
	for i, c := range rec.Candidates {
		fmt.Fprintf(w, "  %3d. %-28s %s  %s\n", i+1, c.Name,
			colored(fmt.Sprintf("%3d", c.Score), scoreColor(c.Score)), dim(c.Result.Status))
	}
	fmt.Fprintln(w)

	return nil
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
