package httpapi

import (
	"net/http"
	"strings"

	"hirewatch-engine/internal/actions"
)

type FlagsHandler struct {
	Actions *actions.Service
}

// ResolveByPath expects /attention-flags/{id}/resolve.
func (h FlagsHandler) ResolveByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/attention-flags/")
	id := strings.TrimSuffix(rest, "/resolve")
	if id == "" || id == rest {
		WriteError(w, r, http.StatusBadRequest, "invalid_path", "expected /attention-flags/{id}/resolve")
		return
	}

	if err := h.Actions.ResolveFlag(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
