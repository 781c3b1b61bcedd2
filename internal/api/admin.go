package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/habiscope/habiscope/internal/assessment"
	"github.com/habiscope/habiscope/pkg/planet"
)

type importResponse struct {
	CatalogID string `json:"catalog_id"`
	Imported  int    `json:"imported"`
}

// handleImportCatalog accepts a catalog object or a bare array of records.
func (h *Handler) handleImportCatalog(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body: "+err.Error())
		return
	}
	c, err := planet.ParseCatalog(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid catalog: "+err.Error())
		return
	}
	if c.Source == "" {
		c.Source = "api"
	}

	n, err := h.svc.ImportCatalog(r.Context(), c)
	// Records before a failure may already be stored.
	h.cache.Purge()
	if errors.Is(err, assessment.ErrInvalidCatalog) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, importResponse{CatalogID: c.ID, Imported: n})
}

// handleRescore re-runs the habitability assessment for every stored planet.
func (h *Handler) handleRescore(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Rescore(r.Context())
	h.cache.Purge()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Printf("api: rescored %d planets (%d errors)", res.Rescored, res.Errors)
	writeJSON(w, http.StatusOK, res)
}
