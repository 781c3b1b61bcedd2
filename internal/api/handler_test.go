package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habiscope/habiscope/internal/api"
	"github.com/habiscope/habiscope/internal/assessment"
	"github.com/habiscope/habiscope/internal/catalog"
	"github.com/habiscope/habiscope/internal/platform"
	"github.com/habiscope/habiscope/pkg/planet"
	"github.com/habiscope/habiscope/pkg/scoring"
)

const testKey = "secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	db, err := platform.Open(context.Background(), platform.DriverSQLite, filepath.Join(dir, "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := catalog.NewStore(db, platform.DriverSQLite)
	svc := assessment.NewService(store, catalog.NewLocalStorage(filepath.Join(dir, "blobs")), scoring.Defaults(), 2)

	h, err := api.NewHandler(svc, api.Options{APIKey: testKey, CacheSize: 16, DefaultMinScore: 50})
	require.NoError(t, err)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	srv := httptest.NewServer(api.CORS(h.Methods())(mux))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, u string, body any, key string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, u, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func seed(t *testing.T, srv *httptest.Server) {
	t.Helper()
	records := []planet.Record{
		planet.Earth(),
		{Name: "Warm World", EquilibriumTempK: planet.Ptr(293), WaterPresence: planet.Ptr(0.2)},
		{Name: "Cold", EquilibriumTempK: planet.Ptr(173), WaterPresence: planet.Ptr(0.2), O2: planet.Ptr(5), Radiation: "high", Gravity: planet.Ptr(3)},
	}
	resp := do(t, http.MethodPost, srv.URL+"/api/v1/catalogs", records, testKey)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	out := decode[map[string]any](t, resp)
	assert.Equal(t, float64(3), out["imported"])
	assert.NotEmpty(t, out["catalog_id"])
}

func TestHabitabilityEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/v1/habitability", planet.Earth(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[scoring.HabitabilityResult](t, resp)
	assert.Equal(t, 100, res.ESI)
	assert.Equal(t, scoring.LabelPotentiallyHabitable, res.Label)

	resp = do(t, http.MethodPost, srv.URL+"/api/v1/habitability", "not a record", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSimulateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	params := scoring.DefaultSurvivabilityParams()
	params.TempC = -60
	resp := do(t, http.MethodPost, srv.URL+"/api/v1/simulate?mode=human", params, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[scoring.SimulationResult](t, resp)
	assert.Equal(t, 68, res.Score)
	assert.Equal(t, scoring.StatusChallenging, res.Status)

	resp = do(t, http.MethodPost, srv.URL+"/api/v1/simulate?mode=microbial", map[string]any{"water": 0.5}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res = decode[scoring.SimulationResult](t, resp)
	assert.Equal(t, scoring.ModeMicrobial, res.Mode)
	assert.InDelta(t, 60, res.Breakdown.Water, 1e-9)
}

func TestWriteEndpointsRequireKey(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/v1/planets", planet.Record{Name: "X"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/v1/planets", planet.Record{Name: "X"}, "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/v1/admin/rescore", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/v1/planets", planet.Record{Name: "X"}, testKey)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestPlanetCRUD(t *testing.T) {
	srv := newTestServer(t)
	seed(t, srv)

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/planets", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]planet.Record](t, resp)
	assert.Len(t, list, 3)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/planets/"+url.PathEscape("Warm World"), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := decode[planet.Record](t, resp)
	assert.Equal(t, 293.0, *rec.EquilibriumTempK)

	resp = do(t, http.MethodPost, srv.URL+"/api/v1/planets", planet.Record{Name: "  "}, testKey)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/v1/planets/Cold", nil, testKey)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/planets/Cold", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/v1/planets/Cold", nil, testKey)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStoredPlanetAssessments(t *testing.T) {
	srv := newTestServer(t)
	seed(t, srv)

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/planets/Earth/habitability", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hab := decode[scoring.HabitabilityResult](t, resp)
	assert.Equal(t, 100, hab.ESI)

	// Served from cache: no second assessment row.
	resp = do(t, http.MethodGet, srv.URL+"/api/v1/planets/Earth/habitability", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cached := decode[scoring.HabitabilityResult](t, resp)
	assert.Equal(t, hab.Score, cached.Score)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/planets/"+url.PathEscape("Warm World")+"/survivability?mode=human", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sim := decode[scoring.SimulationResult](t, resp)
	assert.Equal(t, 80, sim.Score)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/planets/Earth/assessments", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decode[[]catalog.AssessmentRow](t, resp)
	require.Len(t, rows, 1)
	assert.Equal(t, catalog.KindHabitability, rows[0].Kind)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/planets/Nowhere/habitability", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/planets/Nowhere/assessments", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWritesPurgeCache(t *testing.T) {
	srv := newTestServer(t)
	seed(t, srv)

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/planets/Cold/survivability", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	before := decode[scoring.SimulationResult](t, resp)
	assert.Equal(t, 30, before.Score)

	warmer := planet.Record{Name: "Cold", EquilibriumTempK: planet.Ptr(293), WaterPresence: planet.Ptr(0.2)}
	resp = do(t, http.MethodPost, srv.URL+"/api/v1/planets", warmer, testKey)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/planets/Cold/survivability", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	after := decode[scoring.SimulationResult](t, resp)
	assert.Equal(t, 80, after.Score)
}

func TestRecommendationEndpoint(t *testing.T) {
	srv := newTestServer(t)
	seed(t, srv)

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/recommendation?min_score=50&mode=human", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Planet     *string             `json:"planet"`
		Candidates []scoring.Candidate `json:"candidates"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotNil(t, out.Planet)
	assert.Equal(t, "Earth", *out.Planet)
	assert.Len(t, out.Candidates, 2)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/recommendation?min_score=99", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out.Planet, out.Candidates = nil, nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Nil(t, out.Planet)
	assert.Empty(t, out.Candidates)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/recommendation?min_score=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRescoreEndpoint(t *testing.T) {
	srv := newTestServer(t)
	seed(t, srv)

	resp := do(t, http.MethodPost, srv.URL+"/api/v1/admin/rescore", nil, testKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[assessment.RescoreResult](t, resp)
	assert.Equal(t, 3, res.Rescored)
	assert.Zero(t, res.Errors)
}

func TestImportCatalogRejectsBadBody(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/v1/catalogs", "nope", testKey)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/v1/catalogs", []planet.Record{{Name: ""}}, testKey)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImportCatalogRejectsUnsafeID(t *testing.T) {
	srv := newTestServer(t)

	body := map[string]any{
		"id":      "../../../escaped",
		"records": []planet.Record{{Name: "Intruder"}},
	}
	resp := do(t, http.MethodPost, srv.URL+"/api/v1/catalogs", body, testKey)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/planets", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]planet.Record](t, resp))
}

func TestImportCatalogStorageFailure(t *testing.T) {
	dir := t.TempDir()
	db, err := platform.Open(context.Background(), platform.DriverSQLite, filepath.Join(dir, "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// A regular file where the blob root should be makes every write fail.
	blobRoot := filepath.Join(dir, "blobs")
	require.NoError(t, os.WriteFile(blobRoot, []byte("x"), 0o644))

	svc := assessment.NewService(catalog.NewStore(db, platform.DriverSQLite), catalog.NewLocalStorage(blobRoot), scoring.Defaults(), 1)
	h, err := api.NewHandler(svc, api.Options{})
	require.NoError(t, err)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	resp := do(t, http.MethodPost, srv.URL+"/api/v1/catalogs", []planet.Record{{Name: "Fine"}}, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/planets", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, DELETE, GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
}

func TestHandlerMethodsFollowRoutes(t *testing.T) {
	store := catalog.NewStore(nil, platform.DriverSQLite)
	h, err := api.NewHandler(assessment.NewService(store, nil, scoring.Defaults(), 1), api.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodPost, http.MethodDelete, http.MethodGet}, h.Methods())
}

func TestResultCache(t *testing.T) {
	c, err := api.NewResultCache(2)
	require.NoError(t, err)

	c.Put("habitability", "", "a", 1)
	c.Put("habitability", "", "b", 2)
	c.Put("habitability", "", "c", 3)
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get("habitability", "", "a")
	assert.False(t, ok, "oldest entry evicted")

	v, ok := c.Get("habitability", "", "c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = c.Get("survivability", "human", "c")
	assert.False(t, ok, "kind and mode are part of the key")

	c.Purge()
	assert.Zero(t, c.Len())
}
