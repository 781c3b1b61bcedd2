// Package api implements the Habiscope REST API.
// It serves stateless scoring endpoints and read/write endpoints over the
// stored corpus.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/habiscope/habiscope/internal/assessment"
	"github.com/habiscope/habiscope/internal/catalog"
	"github.com/habiscope/habiscope/pkg/scoring"
)

// maxBodyBytes bounds request bodies; catalogs are the largest payloads.
const maxBodyBytes = 32 << 20

// Options configures a Handler.
type Options struct {
	APIKey          string  // protects write endpoints when set
	CacheSize       int     // LRU entries, <= 0 uses the default
	DefaultMinScore float64 // recommendation threshold when min_score is omitted
	DefaultMode     scoring.Mode
}

// Handler is the top-level API handler for the Habiscope service.
type Handler struct {
	svc   *assessment.Service
	model *scoring.HabitabilityModel
	sim   *scoring.Simulator
	cache *ResultCache
	auth  func(http.Handler) http.Handler
	opts  Options
}

// NewHandler creates a new API handler.
func NewHandler(svc *assessment.Service, opts Options) (*Handler, error) {
	cache, err := NewResultCache(opts.CacheSize)
	if err != nil {
		return nil, err
	}
	if opts.DefaultMode == "" {
		opts.DefaultMode = scoring.ModeHuman
	}
	weights := scoring.Defaults()
	return &Handler{
		svc:   svc,
		model: scoring.NewHabitabilityModel(weights),
		sim:   scoring.NewSimulator(weights),
		cache: cache,
		auth:  APIKeyAuth(opts.APIKey),
		opts:  opts,
	}, nil
}

type route struct {
	method  string
	pattern string
	handler http.HandlerFunc
	write   bool // requires the API key
}

func (h *Handler) routes() []route {
	return []route{
		// Stateless scoring
		{http.MethodPost, "/api/v1/habitability", h.handleHabitability, false},
		{http.MethodPost, "/api/v1/simulate", h.handleSimulate, false},

		// Corpus writes
		{http.MethodPost, "/api/v1/planets", h.handleUpsertPlanet, true},
		{http.MethodDelete, "/api/v1/planets/{name}", h.handleDeletePlanet, true},
		{http.MethodPost, "/api/v1/catalogs", h.handleImportCatalog, true},
		{http.MethodPost, "/api/v1/admin/rescore", h.handleRescore, true},

		// Corpus reads
		{http.MethodGet, "/api/v1/planets", h.handleListPlanets, false},
		{http.MethodGet, "/api/v1/planets/{name}", h.handleGetPlanet, false},
		{http.MethodGet, "/api/v1/planets/{name}/habitability", h.handlePlanetHabitability, false},
		{http.MethodGet, "/api/v1/planets/{name}/survivability", h.handlePlanetSurvivability, false},
		{http.MethodGet, "/api/v1/planets/{name}/assessments", h.handleListAssessments, false},
		{http.MethodGet, "/api/v1/recommendation", h.handleRecommendation, false},
	}
}

// RegisterRoutes registers all API routes on the given ServeMux. Write
// routes go through the API key check.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	for _, rt := range h.routes() {
		var handler http.Handler = rt.handler
		if rt.write {
			handler = h.auth(handler)
		}
		mux.Handle(rt.method+" "+rt.pattern, handler)
	}
}

// Methods returns the HTTP methods served by the API, in first-registered
// order. CORS advertises exactly these.
func (h *Handler) Methods() []string {
	var methods []string
	seen := make(map[string]bool)
	for _, rt := range h.routes() {
		if !seen[rt.method] {
			seen[rt.method] = true
			methods = append(methods, rt.method)
		}
	}
	return methods
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// decodeBody decodes a bounded JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
