package surface_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/habiscope/habiscope/pkg/planet"
	"github.com/habiscope/habiscope/pkg/scoring"
	"github.com/habiscope/habiscope/pkg/surface"
)

func sampleHabitability() *scoring.HabitabilityResult {
	r := scoring.NewHabitabilityModel(scoring.Defaults()).Calculate(planet.Record{
		Name:             "Kepler-442 b",
		EquilibriumTempK: planet.Ptr(233),
		Radius:           planet.Ptr(1.34),
		Mass:             planet.Ptr(2.3),
		Insolation:       planet.Ptr(0.7),
		SemiMajorAxisAU:  planet.Ptr(0.409),
		StarTempK:        planet.Ptr(4402),
		StarLuminosity:   planet.Ptr(0.112),
	})
	return &r
}

func sampleSimulation() *scoring.SimulationResult {
	p := scoring.DefaultSurvivabilityParams()
	p.TempC = -60
	p.TraceElements = []string{"Fe", "Mg"}
	r := scoring.NewSimulator(scoring.Defaults()).Run(p, scoring.ModeHuman)
	return &r
}

func TestTerminalRenderer_Habitability(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	res := sampleHabitability()
	if err := r.RenderHabitability(&buf, res); err != nil {
		t.Fatalf("RenderHabitability() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Kepler-442 b") {
		t.Error("expected planet name in output")
	}
	if !strings.Contains(output, res.Label) {
		t.Errorf("expected label %q in output", res.Label)
	}
	if !strings.Contains(output, "Habitable zone:") {
		t.Error("expected habitable zone line")
	}
	if !strings.Contains(output, "temperature") {
		t.Error("expected factor table")
	}
	if !strings.Contains(output, "ESI inputs missing: density, escape_velocity") {
		t.Errorf("expected missing ESI inputs, got:\n%s", output)
	}
}

func TestTerminalRenderer_UnknownZone(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	res := scoring.NewHabitabilityModel(scoring.Defaults()).Calculate(planet.Record{
		Name:           "Rogue",
		StarLuminosity: planet.Ptr(0),
	})

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).RenderHabitability(&buf, &res); err != nil {
		t.Fatal(err)
	}
	output := buf.String()
	if !strings.Contains(output, "Note:") {
		t.Error("expected the short-circuit reason")
	}
	if strings.Contains(output, "Factors:") {
		t.Error("expected no factor table without a zone")
	}
}

func TestTerminalRenderer_Simulation(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).RenderSimulation(&buf, sampleSimulation()); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	for _, want := range []string{"human survivability", scoring.StatusChallenging, "score 68", "! temperature", "Trace elements: Fe, Mg", "Recommendation:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestTerminalRenderer_Recommendation(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	sim := sampleSimulation()
	rec := surface.NewRecommendation(scoring.ModeHuman, 50, []scoring.Candidate{
		{Name: "Alpha", Score: sim.Score, Result: *sim},
	})

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).RenderRecommendation(&buf, rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Closest survivable planet (human, min 50): Alpha") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	empty := surface.NewRecommendation(scoring.ModeHuman, 90, nil)
	if err := (&surface.TerminalRenderer{}).RenderRecommendation(&buf, empty); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No planet reaches") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).RenderHabitability(&buf, sampleHabitability()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&surface.JSONRenderer{}).RenderSimulation(&buf, sampleSimulation()); err != nil {
		t.Fatal(err)
	}

	var got scoring.SimulationResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.Score != 68 {
		t.Errorf("Score = %d, want 68", got.Score)
	}

	buf.Reset()
	if err := (&surface.JSONRenderer{}).RenderRecommendation(&buf, surface.NewRecommendation(scoring.ModeHuman, 90, nil)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"planet": null`) {
		t.Errorf("expected a null planet, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `"candidates": []`) {
		t.Errorf("expected an empty candidate list, got:\n%s", buf.String())
	}
}

func TestMarkdownRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&surface.MarkdownRenderer{}).RenderHabitability(&buf, sampleHabitability()); err != nil {
		t.Fatal(err)
	}
	output := buf.String()
	if !strings.HasPrefix(output, "## ") {
		t.Errorf("expected a Markdown heading, got:\n%s", output)
	}
	if !strings.Contains(output, "| Habitable zone (AU) |") {
		t.Error("expected the zone row")
	}

	buf.Reset()
	if err := (&surface.MarkdownRenderer{}).RenderSimulation(&buf, sampleSimulation()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "| Temperature | 0.0 |") {
		t.Errorf("expected the temperature row, got:\n%s", buf.String())
	}
}

func TestForFormat(t *testing.T) {
	if _, ok := surface.ForFormat("json").(*surface.JSONRenderer); !ok {
		t.Error("json should select JSONRenderer")
	}
	if _, ok := surface.ForFormat("markdown").(*surface.MarkdownRenderer); !ok {
		t.Error("markdown should select MarkdownRenderer")
	}
	if _, ok := surface.ForFormat("").(*surface.TerminalRenderer); !ok {
		t.Error("default should be TerminalRenderer")
	}
}
