package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Component("api").WithError(err).Warn("failed to write response")
	}
}

// writeError renders err as {"error": {"kind", "message"}}. Errors without a
// kind are logged and reported as internal.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.New(apperror.KindInternal, "internal server error")
	}

	status := apperror.HTTPStatus(appErr.Kind)
	if status >= http.StatusInternalServerError {
		logger.Component("api").WithError(err).With("path", r.URL.Path).Error("request failed")
	}
	writeJSON(w, status, map[string]interface{}{"error": appErr})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("request body is required")
		}
		return apperror.Validation("invalid request body: %v", err)
	}
	return nil
}

// queryInt reads a non-negative integer query parameter, returning def when
// it is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperror.Validation("%s must be a non-negative integer", name)
	}
	return v, nil
}
