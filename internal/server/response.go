package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songrank/internal/shared"
)

// ErrorBody is the uniform body of a classified error response.
type ErrorBody struct {
	Err string `json:"err"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError classifies err and writes the matching response.
//
// Missing parameters get a bare 400 without a body.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	outcome := shared.Classify(err)

	if logger != nil {
		kv := []any{
			"request_id", RequestIDFrom(r.Context()),
			"category", outcome.Category,
			"status", outcome.Status,
			"error", err,
		}
		if outcome.Status >= http.StatusInternalServerError {
			logger.Error("collection request failed", kv...)
		} else {
			logger.Warn("collection request rejected", kv...)
		}
	}

	if outcome.Message == "" {
		w.WriteHeader(outcome.Status)
		return
	}
	writeJSON(w, outcome.Status, ErrorBody{Err: outcome.Message})
}
