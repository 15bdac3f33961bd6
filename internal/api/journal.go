package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/auth"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/services"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/tts"
)

type JournalHandler struct {
	journal *services.JournalService
	speech  tts.Synthesizer
}

func NewJournalHandler(journal *services.JournalService, speech tts.Synthesizer) *JournalHandler {
	if speech == nil {
		speech = tts.NewDummy()
	}
	return &JournalHandler{journal: journal, speech: speech}
}

type entryRequest struct {
	Content   string `json:"content"`
	EntryDate string `json:"entry_date"`
}

// POST /api/v1/journal/entries
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	date, err := h.journal.ParseEntryDate(req.EntryDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.journal.ProcessEntry(r.Context(), auth.UserIDFromContext(r.Context()), req.Content, date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !res.Success {
		writeJSON(w, http.StatusBadRequest, res)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// GET /api/v1/journal/entries?limit=&offset=
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.journal.Entries(r.Context(), auth.UserIDFromContext(r.Context()), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// GET /api/v1/journal/entries/{id}
func (h *JournalHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.journal.Entry(r.Context(), auth.UserIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// GET /api/v1/journal/entries/{id}/inspiration/audio
func (h *JournalHandler) InspirationAudio(w http.ResponseWriter, r *http.Request) {
	entry, err := h.journal.Entry(r.Context(), auth.UserIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	emotion := "neutral"
	if len(entry.Analysis.TopEmotions) > 0 {
		emotion = entry.Analysis.TopEmotions[0].Label
	}

	audio, err := h.speech.Synthesize(r.Context(), entry.Inspiration, emotion)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(audio)
}

// GET /api/v1/journal/dashboard
func (h *JournalHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.journal.Dashboard(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// GET /api/v1/journal/inspiration/{mood}
func (h *JournalHandler) MoodInspiration(w http.ResponseWriter, r *http.Request) {
	res, err := h.journal.InspirationForMood(r.Context(), auth.UserIDFromContext(r.Context()), mux.Vars(r)["mood"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
