// Package planet defines the physical data model for Habiscope.
// These types are the shared vocabulary between the scoring engine,
// the corpus store, the API and the CLI.
package planet

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is a sparse set of measurements for a single body.
// Every numeric field is optional: nil means "unknown", which is distinct
// from a measured zero.
type Record struct {
	Name string `json:"name"`

	EquilibriumTempK *float64 `json:"teq_k,omitempty"`      // K
	Radius           *float64 `json:"radius,omitempty"`     // Earth radii
	Mass             *float64 `json:"mass,omitempty"`       // Earth masses
	Insolation       *float64 `json:"insolation,omitempty"` // relative to Earth
	SemiMajorAxisAU  *float64 `json:"semi_major_axis_au,omitempty"`
	StarTempK        *float64 `json:"star_temp_k,omitempty"`     // default 5780
	StarLuminosity   *float64 `json:"star_luminosity,omitempty"` // solar units, default 1.0
	Density          *float64 `json:"density,omitempty"`         // relative to Earth
	EscapeVelocity   *float64 `json:"escape_velocity,omitempty"` // relative to Earth

	// Surface environment, used when the record feeds the survivability model.
	WaterPresence *float64 `json:"water_presence,omitempty"` // fraction 0..1
	O2            *float64 `json:"o2,omitempty"`             // %
	CO2           *float64 `json:"co2,omitempty"`            // %
	Nitrogen      *float64 `json:"nitrogen,omitempty"`       // %
	ToxicGases    *float64 `json:"toxic_gases,omitempty"`    // %
	Gravity       *float64 `json:"gravity,omitempty"`        // relative to Earth
	Pressure      *float64 `json:"pressure,omitempty"`       // relative to Earth
	Radiation     string   `json:"radiation,omitempty"`      // low, medium, high
}

// Catalog is a named collection of records, e.g. one upstream archive pull.
// Catalogs are immutable once created.
type Catalog struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Records   []Record  `json:"records"`
}

// ErrInvalidID is returned for a catalog ID that cannot name a storage key.
var ErrInvalidID = errors.New("invalid id")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateID checks that id is a single storage key segment: letters,
// digits, '.', '_' and '-', starting with a letter or digit and never
// containing "..".
func ValidateID(id string) error {
	if !idPattern.MatchString(id) || strings.Contains(id, "..") {
		return fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return nil
}

// NewCatalog wraps records in a catalog with a fresh ID.
func NewCatalog(source string, records []Record) *Catalog {
	return &Catalog{
		ID:        uuid.New().String(),
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Records:   records,
	}
}

// Find returns the record whose name matches case-insensitively.
func (c *Catalog) Find(name string) (Record, bool) {
	for _, r := range c.Records {
		if strings.EqualFold(strings.TrimSpace(r.Name), strings.TrimSpace(name)) {
			return r, true
		}
	}
	return Record{}, false
}

// Names returns record names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Records))
	for _, r := range c.Records {
		names = append(names, r.Name)
	}
	return names
}

// Float reports the value behind p. ok is false for nil, NaN and ±Inf,
// so callers treat all of those as "unknown".
func Float(p *float64) (v float64, ok bool) {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0, false
	}
	return *p, true
}

// FloatOr returns the value behind p, or def when it is unknown.
func FloatOr(p *float64, def float64) float64 {
	if v, ok := Float(p); ok {
		return v
	}
	return def
}

// Ptr returns a pointer to v. Handy for building records in code.
func Ptr(v float64) *float64 {
	return &v
}
