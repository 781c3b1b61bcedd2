package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/habiscope/habiscope/pkg/scoring"
)

type recommendationResponse struct {
	Planet     *string             `json:"planet"`
	Mode       scoring.Mode        `json:"mode"`
	MinScore   float64             `json:"min_score"`
	Candidates []scoring.Candidate `json:"candidates"`
}

// handleRecommendation returns the most survivable stored planet at or
// above min_score, with every qualifying candidate.
func (h *Handler) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	minScore := h.opts.DefaultMinScore
	if v := r.URL.Query().Get("min_score"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(parsed) {
			writeError(w, http.StatusBadRequest, "invalid min_score: "+v)
			return
		}
		minScore = parsed
	}
	mode := h.mode(r)

	candidates, err := h.svc.Recommend(r.Context(), minScore, mode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := recommendationResponse{
		Mode:       mode,
		MinScore:   minScore,
		Candidates: candidates,
	}
	if len(candidates) > 0 {
		resp.Planet = &candidates[0].Name
	}
	if resp.Candidates == nil {
		resp.Candidates = []scoring.Candidate{}
	}
	writeJSON(w, http.StatusOK, resp)
}
