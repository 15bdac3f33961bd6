package api

import (
	"net/http"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/auth"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/services"
)

type StreakHandler struct {
	streaks *services.StreakService
}

func NewStreakHandler(streaks *services.StreakService) *StreakHandler {
	return &StreakHandler{streaks: streaks}
}

// GET /api/v1/streak
func (h *StreakHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.streaks.Status(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// POST /api/v1/streak/freeze
func (h *StreakHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	res, err := h.streaks.UseFreeze(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !res.Success {
		writeJSON(w, apperror.HTTPStatus(apperror.KindFreezeUnavailable), res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/v1/streak/analytics?days=
func (h *StreakHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 30)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.streaks.Analytics(r.Context(), auth.UserIDFromContext(r.Context()), days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// GET /api/v1/achievements
func (h *StreakHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	views, err := h.streaks.Achievements(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"achievements": views})
}
