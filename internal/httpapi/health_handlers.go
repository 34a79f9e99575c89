package httpapi

import (
	"context"
	"net/http"
	"time"

	"hirewatch-engine/internal/backend"
)

type HealthHandler struct {
	Backend *backend.Client
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	backendOK := true
	if err := h.Backend.Health(ctx); err != nil {
		backendOK = false
	}

	writeJSON(w, map[string]any{
		"ok":      true,
		"backend": backendOK,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
