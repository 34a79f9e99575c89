package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"hirewatch-engine/internal/store"
)

type HistoryHandler struct {
	DB *sql.DB
}

func (h HistoryHandler) Refreshes(w http.ResponseWriter, r *http.Request) {
	recs, err := store.ListRefreshes(r.Context(), h.DB, limitParam(r))
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if recs == nil {
		recs = []store.RefreshRecord{}
	}
	writeJSON(w, recs)
}

func (h HistoryHandler) Actions(w http.ResponseWriter, r *http.Request) {
	recs, err := store.ListActions(r.Context(), h.DB, limitParam(r))
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if recs == nil {
		recs = []store.ActionRecord{}
	}
	writeJSON(w, recs)
}

func limitParam(r *http.Request) int {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return n
}
