package scoring_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/habiscope/habiscope/pkg/planet"
	"github.com/habiscope/habiscope/pkg/scoring"
)

func testCorpus() []planet.Record {
	return []planet.Record{
		{
			Name:             "C",
			EquilibriumTempK: planet.Ptr(173),
			WaterPresence:    planet.Ptr(0.2),
			O2:               planet.Ptr(5),
			Radiation:        "high",
			Gravity:          planet.Ptr(3),
		},
		{
			Name:             "A",
			EquilibriumTempK: planet.Ptr(293),
			WaterPresence:    planet.Ptr(0.2),
		},
		{
			Name:             "B",
			EquilibriumTempK: planet.Ptr(243),
			WaterPresence:    planet.Ptr(0.5),
			Radiation:        "high",
			Pressure:         planet.Ptr(0.3),
			Gravity:          planet.Ptr(0.6),
		},
	}
}

func TestClosestSurvivablePlanet(t *testing.T) {
	name, ok := scoring.ClosestSurvivablePlanet(50, testCorpus())
	if !ok {
		t.Fatal("expected a match")
	}
	if name != "A" {
		t.Errorf("name = %q, want A", name)
	}

	if _, ok := scoring.ClosestSurvivablePlanet(90, testCorpus()); ok {
		t.Error("expected no match above every score")
	}
	if _, ok := scoring.ClosestSurvivablePlanet(0, nil); ok {
		t.Error("expected no match for an empty corpus")
	}
}

func TestRankNaNThresholdMatchesNothing(t *testing.T) {
	if name, ok := scoring.ClosestSurvivablePlanet(math.NaN(), testCorpus()); ok {
		t.Errorf("got %q, want no match for a NaN threshold", name)
	}

	got, err := scoring.NewRecommender(scoring.ModeMicrobial).Rank(context.Background(), testCorpus(), math.NaN())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d candidates, want 0", len(got))
	}

	// -Inf is a real threshold every score clears.
	if _, ok := scoring.ClosestSurvivablePlanet(math.Inf(-1), testCorpus()); !ok {
		t.Error("expected a match for a -Inf threshold")
	}
}

func TestRankOrderAndScores(t *testing.T) {
	r := scoring.NewRecommender(scoring.ModeHuman)
	r.Workers = 2

	got, err := r.Rank(context.Background(), testCorpus(), 0)
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		name  string
		score int
	}{
		{"A", 80},
		{"B", 55},
		{"C", 30},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Score != w.score {
			t.Errorf("candidate %d = %s/%d, want %s/%d", i, got[i].Name, got[i].Score, w.name, w.score)
		}
	}
}

func TestRankThresholdIsInclusive(t *testing.T) {
	r := scoring.NewRecommender(scoring.ModeHuman)
	got, err := r.Rank(context.Background(), testCorpus(), 55)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2 (score == threshold qualifies)", len(got))
	}
}

func TestRankTiesKeepCorpusOrder(t *testing.T) {
	var corpus []planet.Record
	for _, name := range []string{"First", "Second", "Third"} {
		corpus = append(corpus, planet.Record{
			Name:             name,
			EquilibriumTempK: planet.Ptr(290),
			WaterPresence:    planet.Ptr(0.6),
		})
	}

	for i := 0; i < 20; i++ {
		name, ok := scoring.ClosestSurvivablePlanet(0, corpus)
		if !ok || name != "First" {
			t.Fatalf("got %q (ok=%v), want First", name, ok)
		}

		r := scoring.NewRecommender(scoring.ModeHuman)
		r.Workers = 8
		got, err := r.Rank(context.Background(), corpus, 0)
		if err != nil {
			t.Fatal(err)
		}
		for j, c := range got {
			if c.Name != corpus[j].Name {
				t.Fatalf("position %d = %s, want %s", j, c.Name, corpus[j].Name)
			}
		}
	}
}

func TestRankLargeCorpus(t *testing.T) {
	var corpus []planet.Record
	for i := 0; i < 1000; i++ {
		corpus = append(corpus, planet.Record{
			Name:             fmt.Sprintf("P-%04d", i),
			EquilibriumTempK: planet.Ptr(float64(150 + i%200)),
			WaterPresence:    planet.Ptr(float64(i%10) / 10),
		})
	}

	r := scoring.NewRecommender(scoring.ModeMicrobial)
	got, err := r.Rank(context.Background(), corpus, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(corpus) {
		t.Fatalf("got %d candidates, want %d", len(got), len(corpus))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("candidates not sorted at %d: %d > %d", i, got[i].Score, got[i-1].Score)
		}
	}
}

func TestRankCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := scoring.NewRecommender(scoring.ModeHuman)
	_, err := r.Rank(ctx, testCorpus(), 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestParamsFromRecord(t *testing.T) {
	p := scoring.ParamsFromRecord(planet.Record{Name: "Hot", EquilibriumTempK: planet.Ptr(300)})
	if p.TempC != 27 {
		t.Errorf("TempC = %v, want 27", p.TempC)
	}
	if p.Water != 0 {
		t.Errorf("Water = %v, want 0", p.Water)
	}
	if p.O2 != 21 {
		t.Errorf("O2 = %v, want Earth default 21", p.O2)
	}
	if p.Radiation != scoring.RadiationUnknown {
		t.Errorf("Radiation = %q, want unknown", p.Radiation)
	}

	p = scoring.ParamsFromRecord(planet.Record{Name: "Blank"})
	if p.TempC != -273 {
		t.Errorf("TempC = %v, want -273 for an unknown temperature", p.TempC)
	}
}
