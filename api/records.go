package api

import (
	"encoding/json"
	"net/http"

	"github.com/aselbek/carelink/internal/store"
	"github.com/gorilla/mux"
)

// RecordsHandler is the dynamic per-table CRUD surface. The table name in
// the path is resolved against the catalog at request time, so one handler
// set serves every entity.
type RecordsHandler struct {
	store *store.Store
}

func NewRecordsHandler(s *store.Store) *RecordsHandler {
	return &RecordsHandler{store: s}
}

type statusResponse struct {
	Status string `json:"status"`
}

type updateResponse struct {
	Status   string `json:"status"`
	Affected int64  `json:"affected"`
}

func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, errorResponse{Error: "invalid request body"}, http.StatusBadRequest)
		return
	}

	if err := h.store.Create(r.Context(), table, fields); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, statusResponse{Status: "created"}, http.StatusOK)
}

func (h *RecordsHandler) ReadAll(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]

	rows, err := h.store.ReadAll(r.Context(), table)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	writeJSON(w, rows, http.StatusOK)
}

// Update applies a partial column set to the row addressed by the path id.
// An id matching no row is still a 200: the operation applied cleanly to
// zero rows.
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, errorResponse{Error: "invalid request body"}, http.StatusBadRequest)
		return
	}

	affected, err := h.store.Update(r.Context(), vars["table"], vars["id"], fields)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, updateResponse{Status: "updated", Affected: affected}, http.StatusOK)
}

func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.store.Delete(r.Context(), vars["table"], vars["id"]); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, statusResponse{Status: "deleted"}, http.StatusOK)
}
