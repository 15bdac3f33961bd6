package api

import (
	"net/http"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/auth"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/footprint"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/services"
)

type FootprintHandler struct {
	footprints *services.FootprintService
}

func NewFootprintHandler(footprints *services.FootprintService) *FootprintHandler {
	return &FootprintHandler{footprints: footprints}
}

// POST /api/v1/footprint/calculate
func (h *FootprintHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var in footprint.Inputs
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	calc, err := h.footprints.Calculate(r.Context(), auth.UserIDFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, calc)
}

// GET /api/v1/footprint/latest
func (h *FootprintHandler) Latest(w http.ResponseWriter, r *http.Request) {
	calc, err := h.footprints.Latest(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

// GET /api/v1/footprint/history?limit=
func (h *FootprintHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		writeError(w, r, err)
		return
	}
	points, err := h.footprints.History(r.Context(), auth.UserIDFromContext(r.Context()), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": points})
}

// GET /api/v1/footprint/factors
func (h *FootprintHandler) Factors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"factors": h.footprints.Factors()})
}
