// Package assessment runs the scoring engine against the stored corpus and
// keeps an archive of every result.
package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/habiscope/habiscope/internal/catalog"
	"github.com/habiscope/habiscope/pkg/planet"
	"github.com/habiscope/habiscope/pkg/scoring"
)

// ErrInvalidCatalog is returned by ImportCatalog for a catalog that fails
// validation before anything is written.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Service orchestrates the corpus store, the blob archive and the engine.
type Service struct {
	store   *catalog.Store
	blobs   catalog.BlobStore
	model   *scoring.HabitabilityModel
	sim     *scoring.Simulator
	workers int
}

// NewService creates a new assessment Service. blobs may be nil, in which
// case results are recorded in the store only.
func NewService(store *catalog.Store, blobs catalog.BlobStore, weights scoring.DefaultWeights, workers int) *Service {
	return &Service{
		store:   store,
		blobs:   blobs,
		model:   scoring.NewHabitabilityModel(weights),
		sim:     scoring.NewSimulator(weights),
		workers: workers,
	}
}

// Store returns the underlying corpus store.
func (s *Service) Store() *catalog.Store {
	return s.store
}

// AssessHabitability scores a stored planet and records the result.
func (s *Service) AssessHabitability(ctx context.Context, name string) (scoring.HabitabilityResult, error) {
	r, err := s.store.GetPlanet(ctx, name)
	if err != nil {
		return scoring.HabitabilityResult{}, err
	}

	res := s.model.Calculate(r)
	if err := s.record(ctx, r.Name, catalog.KindHabitability, "", res.Score, res.Label, res); err != nil {
		return scoring.HabitabilityResult{}, err
	}
	return res, nil
}

// AssessSurvivability simulates a stored planet's environment for mode and
// records the result.
func (s *Service) AssessSurvivability(ctx context.Context, name string, mode scoring.Mode) (scoring.SimulationResult, error) {
	r, err := s.store.GetPlanet(ctx, name)
	if err != nil {
		return scoring.SimulationResult{}, err
	}

	res := s.sim.Run(scoring.ParamsFromRecord(r), mode)
	if err := s.record(ctx, r.Name, catalog.KindSurvivability, string(res.Mode), res.Score, res.Status, res); err != nil {
		return scoring.SimulationResult{}, err
	}
	return res, nil
}

// record archives result in blob storage and inserts an assessment row.
func (s *Service) record(ctx context.Context, name, kind, mode string, score int, label string, result any) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal %s result: %w", kind, err)
	}

	row := &catalog.AssessmentRow{
		ID:         uuid.New().String(),
		PlanetName: name,
		Kind:       kind,
		Mode:       mode,
		Score:      score,
		Label:      label,
		Result:     data,
	}

	if s.blobs != nil {
		if err := s.blobs.PutAssessment(ctx, row.ID, data); err != nil {
			return fmt.Errorf("archive %s result: %w", kind, err)
		}
		ref, err := catalog.AssessmentRef(row.ID)
		if err != nil {
			return err
		}
		row.StorageRef = ref
	}

	return s.store.InsertAssessment(ctx, row)
}

// Recommend ranks the stored corpus for mode and returns every planet
// scoring at least minScore, best first.
func (s *Service) Recommend(ctx context.Context, minScore float64, mode scoring.Mode) ([]scoring.Candidate, error) {
	corpus, err := s.store.ListPlanets(ctx)
	if err != nil {
		return nil, err
	}

	rec := &scoring.Recommender{
		Simulator: s.sim,
		Mode:      scoring.ParseMode(string(mode)),
		Workers:   s.workers,
	}
	candidates, err := rec.Rank(ctx, corpus, minScore)
	if err != nil {
		return nil, fmt.Errorf("rank corpus: %w", err)
	}
	return candidates, nil
}

// ImportCatalog archives c and upserts each of its records. It returns the
// number of records imported.
func (s *Service) ImportCatalog(ctx context.Context, c *planet.Catalog) (int, error) {
	for i, r := range c.Records {
		if strings.TrimSpace(r.Name) == "" {
			return 0, fmt.Errorf("%w: record %d: name is required", ErrInvalidCatalog, i)
		}
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if err := planet.ValidateID(c.ID); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	if s.blobs != nil {
		data, err := json.Marshal(c)
		if err != nil {
			return 0, fmt.Errorf("marshal catalog: %w", err)
		}
		if err := s.blobs.PutCatalog(ctx, c.ID, data); err != nil {
			return 0, fmt.Errorf("archive catalog: %w", err)
		}
	}

	for i, r := range c.Records {
		if err := s.store.UpsertPlanet(ctx, c.ID, r); err != nil {
			return i, err
		}
	}

	log.Printf("assessment: imported catalog %s (%s): %d records", c.ID, c.Source, len(c.Records))
	return len(c.Records), nil
}

// RescoreResult summarizes a Rescore run.
type RescoreResult struct {
	Rescored int `json:"rescored"`
	Errors   int `json:"errors"`
}

// Rescore re-runs the habitability assessment for every stored planet.
// Individual failures are logged and counted; they do not stop the run.
func (s *Service) Rescore(ctx context.Context) (RescoreResult, error) {
	corpus, err := s.store.ListPlanets(ctx)
	if err != nil {
		return RescoreResult{}, err
	}

	var resp RescoreResult
	for _, r := range corpus {
		if err := ctx.Err(); err != nil {
			return resp, err
		}
		if _, err := s.AssessHabitability(ctx, r.Name); err != nil {
			log.Printf("rescore %s: %v", r.Name, err)
			resp.Errors++
			continue
		}
		resp.Rescored++
	}
	return resp, nil
}
