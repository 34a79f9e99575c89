package httpapi

import (
	"net/http"

	"hirewatch-engine/internal/actions"
)

type ActionsHandler struct {
	Tracker *actions.Tracker
}

func (h ActionsHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.Tracker.All()
	if entries == nil {
		entries = []actions.Entry{}
	}
	writeJSON(w, entries)
}
