package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/aselbek/carelink/internal/store"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeStoreError translates store errors onto HTTP statuses: unknown
// tables and missing rows are 404, rejected values 400, constraint
// violations 409, everything else 500.
func writeStoreError(w http.ResponseWriter, err error) {
	var badReq *store.BadRequestError
	var conflict *store.ConflictError
	var integrity *store.IntegrityError

	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusNotFound)
	case errors.As(err, &badReq):
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusBadRequest)
	case errors.As(err, &conflict), errors.As(err, &integrity):
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusConflict)
	default:
		logger.Error("request failed", slog.Any("err", err))
		writeJSON(w, errorResponse{Error: "internal server error"}, http.StatusInternalServerError)
	}
}
