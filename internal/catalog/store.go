// Package catalog is the corpus repository: planet records and assessment
// history in SQL, archived catalogs and assessment documents in blob storage.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/habiscope/habiscope/pkg/planet"
)

// ErrNotFound is returned when a planet, assessment or blob does not exist.
var ErrNotFound = errors.New("not found")

// Assessment kinds.
const (
	KindHabitability  = "habitability"
	KindSurvivability = "survivability"
)

// Store provides planet and assessment persistence over database/sql.
// Queries are written with $N placeholders and rebound for SQLite.
type Store struct {
	db     *sql.DB
	driver string
}

// AssessmentRow is one persisted assessment.
type AssessmentRow struct {
	ID         string          `json:"id"`
	PlanetName string          `json:"planet_name"`
	Kind       string          `json:"kind"`
	Mode       string          `json:"mode,omitempty"`
	Score      int             `json:"score"`
	Label      string          `json:"label"`
	Result     json.RawMessage `json:"result"`
	StorageRef string          `json:"storage_ref,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewStore creates a Store. driver is "postgres" or "sqlite".
func NewStore(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// timeLayout is fixed-width so TEXT timestamps sort chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// q rebinds $N placeholders to ?N for SQLite.
func (s *Store) q(query string) string {
	if s.driver != "sqlite" {
		return query
	}
	return placeholderRe.ReplaceAllString(query, "?$1")
}

const planetColumns = `name, teq_k, radius, mass, insolation, semi_major_axis_au,
	star_temp_k, star_luminosity, density, escape_velocity,
	water_presence, o2, co2, nitrogen, toxic_gases, gravity, pressure, radiation`

type scanner interface {
	Scan(dest ...any) error
}

func scanPlanet(row scanner) (planet.Record, error) {
	var r planet.Record
	err := row.Scan(
		&r.Name, &r.EquilibriumTempK, &r.Radius, &r.Mass, &r.Insolation, &r.SemiMajorAxisAU,
		&r.StarTempK, &r.StarLuminosity, &r.Density, &r.EscapeVelocity,
		&r.WaterPresence, &r.O2, &r.CO2, &r.Nitrogen, &r.ToxicGases, &r.Gravity, &r.Pressure, &r.Radiation,
	)
	return r, err
}

// finite drops NaN and Inf, which neither driver stores portably.
func finite(p *float64) *float64 {
	if v, ok := planet.Float(p); ok {
		return &v
	}
	return nil
}

// UpsertPlanet creates or replaces a planet record by name.
func (s *Store) UpsertPlanet(ctx context.Context, catalogID string, r planet.Record) error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("upsert planet: name is required")
	}

	_, err := s.db.ExecContext(ctx, s.q(
		`INSERT INTO planets (`+planetColumns+`, catalog_id, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		 ON CONFLICT (name) DO UPDATE SET
		   teq_k = EXCLUDED.teq_k,
		   radius = EXCLUDED.radius,
		   mass = EXCLUDED.mass,
		   insolation = EXCLUDED.insolation,
		   semi_major_axis_au = EXCLUDED.semi_major_axis_au,
		   star_temp_k = EXCLUDED.star_temp_k,
		   star_luminosity = EXCLUDED.star_luminosity,
		   density = EXCLUDED.density,
		   escape_velocity = EXCLUDED.escape_velocity,
		   water_presence = EXCLUDED.water_presence,
		   o2 = EXCLUDED.o2,
		   co2 = EXCLUDED.co2,
		   nitrogen = EXCLUDED.nitrogen,
		   toxic_gases = EXCLUDED.toxic_gases,
		   gravity = EXCLUDED.gravity,
		   pressure = EXCLUDED.pressure,
		   radiation = EXCLUDED.radiation,
		   catalog_id = EXCLUDED.catalog_id,
		   updated_at = EXCLUDED.updated_at`),
		name, finite(r.EquilibriumTempK), finite(r.Radius), finite(r.Mass), finite(r.Insolation), finite(r.SemiMajorAxisAU),
		finite(r.StarTempK), finite(r.StarLuminosity), finite(r.Density), finite(r.EscapeVelocity),
		finite(r.WaterPresence), finite(r.O2), finite(r.CO2), finite(r.Nitrogen), finite(r.ToxicGases), finite(r.Gravity), finite(r.Pressure),
		r.Radiation, catalogID, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert planet %s: %w", name, err)
	}
	return nil
}

// GetPlanet retrieves a planet record by exact name.
func (s *Store) GetPlanet(ctx context.Context, name string) (planet.Record, error) {
	r, err := scanPlanet(s.db.QueryRowContext(ctx, s.q(
		`SELECT `+planetColumns+` FROM planets WHERE name = $1`), name))
	if errors.Is(err, sql.ErrNoRows) {
		return planet.Record{}, fmt.Errorf("planet %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return planet.Record{}, fmt.Errorf("get planet %s: %w", name, err)
	}
	return r, nil
}

// ListPlanets returns every stored record ordered by name.
func (s *Store) ListPlanets(ctx context.Context) ([]planet.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+planetColumns+` FROM planets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list planets: %w", err)
	}
	defer rows.Close()

	var records []planet.Record
	for rows.Next() {
		r, err := scanPlanet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan planet: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeletePlanet removes a planet and its assessment history.
func (s *Store) DeletePlanet(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM assessments WHERE planet_name = $1`), name); err != nil {
		return fmt.Errorf("delete assessments for %s: %w", name, err)
	}
	res, err := tx.ExecContext(ctx, s.q(`DELETE FROM planets WHERE name = $1`), name)
	if err != nil {
		return fmt.Errorf("delete planet %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("planet %s: %w", name, ErrNotFound)
	}
	return tx.Commit()
}

// InsertAssessment persists an assessment row. ID and CreatedAt are filled
// in when empty.
func (s *Store) InsertAssessment(ctx context.Context, a *AssessmentRow) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, s.q(
		`INSERT INTO assessments (id, planet_name, kind, mode, score, label, result, storage_ref, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`),
		a.ID, a.PlanetName, a.Kind, a.Mode, a.Score, a.Label, string(a.Result), a.StorageRef,
		a.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert assessment for %s: %w", a.PlanetName, err)
	}
	return nil
}

const assessmentColumns = `id, planet_name, kind, mode, score, label, result, storage_ref, created_at`

func scanAssessment(row scanner) (AssessmentRow, error) {
	var (
		a         AssessmentRow
		result    string
		createdAt string
	)
	if err := row.Scan(&a.ID, &a.PlanetName, &a.Kind, &a.Mode, &a.Score, &a.Label, &result, &a.StorageRef, &createdAt); err != nil {
		return a, err
	}
	a.Result = json.RawMessage(result)
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return a, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	a.CreatedAt = t
	return a, nil
}

// ListAssessments returns a planet's assessments, newest first.
func (s *Store) ListAssessments(ctx context.Context, planetName string) ([]AssessmentRow, error) {
	rows, err := s.db.QueryContext(ctx, s.q(
		`SELECT `+assessmentColumns+` FROM assessments
		 WHERE planet_name = $1 ORDER BY created_at DESC, id`), planetName)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []AssessmentRow
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAssessment retrieves an assessment by ID.
func (s *Store) GetAssessment(ctx context.Context, id string) (AssessmentRow, error) {
	a, err := scanAssessment(s.db.QueryRowContext(ctx, s.q(
		`SELECT `+assessmentColumns+` FROM assessments WHERE id = $1`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return AssessmentRow{}, fmt.Errorf("assessment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return AssessmentRow{}, fmt.Errorf("get assessment %s: %w", id, err)
	}
	return a, nil
}
