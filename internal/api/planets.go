package api

import (
	"net/http"
	"strings"

	"github.com/habiscope/habiscope/internal/catalog"
	"github.com/habiscope/habiscope/pkg/planet"
)

func (h *Handler) handleListPlanets(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.Store().ListPlanets(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if records == nil {
		records = []planet.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleGetPlanet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Store().GetPlanet(r.Context(), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleUpsertPlanet(w http.ResponseWriter, r *http.Request) {
	var rec planet.Record
	if err := decodeBody(w, r, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.svc.Store().UpsertPlanet(r.Context(), "", rec); err != nil {
		writeServiceError(w, err)
		return
	}
	h.cache.Purge()
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleDeletePlanet(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Store().DeletePlanet(r.Context(), r.PathValue("name")); err != nil {
		writeServiceError(w, err)
		return
	}
	h.cache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePlanetHabitability(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if cached, ok := h.cache.Get(catalog.KindHabitability, "", name); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	res, err := h.svc.AssessHabitability(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.cache.Put(catalog.KindHabitability, "", name, res)
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handlePlanetSurvivability(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	mode := h.mode(r)
	if cached, ok := h.cache.Get(catalog.KindSurvivability, string(mode), name); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	res, err := h.svc.AssessSurvivability(r.Context(), name, mode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.cache.Put(catalog.KindSurvivability, string(mode), name, res)
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, err := h.svc.Store().GetPlanet(r.Context(), name); err != nil {
		writeServiceError(w, err)
		return
	}

	rows, err := h.svc.Store().ListAssessments(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []catalog.AssessmentRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}
