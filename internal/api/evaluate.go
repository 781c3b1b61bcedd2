package api

import (
	"net/http"

	"github.com/habiscope/habiscope/pkg/planet"
	"github.com/habiscope/habiscope/pkg/scoring"
)

// handleHabitability scores an ad-hoc record without storing it.
func (h *Handler) handleHabitability(w http.ResponseWriter, r *http.Request) {
	var rec planet.Record
	if err := decodeBody(w, r, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.model.Calculate(rec))
}

// handleSimulate runs a survivability simulation. Fields absent from the
// body keep their Earth-like defaults.
func (h *Handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	params := scoring.DefaultSurvivabilityParams()
	if r.ContentLength != 0 {
		if err := decodeBody(w, r, &params); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, h.sim.Run(params, h.mode(r)))
}

// mode reads the ?mode= query parameter, falling back to the default mode.
func (h *Handler) mode(r *http.Request) scoring.Mode {
	if m := r.URL.Query().Get("mode"); m != "" {
		return scoring.ParseMode(m)
	}
	return h.opts.DefaultMode
}
