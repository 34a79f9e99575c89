package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"hirewatch-engine/internal/actions"
	"hirewatch-engine/internal/backend"
	"hirewatch-engine/internal/validate"
)

type ConversationsHandler struct {
	Actions *actions.Service
	Backend *backend.Client
}

// conversationsMux routes /conversations/{id} and
// /conversations/{id}/attention-flags.
func conversationsMux(h ConversationsHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/conversations/")
		switch {
		case strings.HasSuffix(rest, "/attention-flags") && r.Method == http.MethodGet:
			h.Flags(w, r, strings.TrimSuffix(rest, "/attention-flags"))
		case !strings.Contains(rest, "/") && r.Method == http.MethodDelete:
			h.Delete(w, r, rest)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (h ConversationsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "conversation id is required")
		return
	}

	if err := h.Actions.DeleteConversation(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

func (h ConversationsHandler) Flags(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "conversation id is required")
		return
	}

	raw, err := h.Backend.ListConversationFlags(r.Context(), id)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, validate.Flags(raw))
}

// writeBackendError maps classified client errors onto gateway-style
// responses so the UI can tell "backend said no" from "backend unreachable".
func writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	var be *backend.BackendError
	if errors.As(err, &be) {
		WriteError(w, r, http.StatusBadGateway, "backend_error", be.Error())
		return
	}
	var te *backend.TransportError
	if errors.As(err, &te) {
		WriteError(w, r, http.StatusGatewayTimeout, "transport_error", te.Error())
		return
	}
	WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
}
