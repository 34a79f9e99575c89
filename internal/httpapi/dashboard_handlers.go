package httpapi

import (
	"context"
	"net/http"

	"hirewatch-engine/internal/poll"
)

type DashboardHandler struct {
	Sync      *poll.Synchronizer
	EngineCtx context.Context
}

func (h DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Sync.Snapshot())
}

func (h DashboardHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Sync.Status())
}

// Refresh kicks an operator-triggered cycle without blocking the request.
// The cycle runs on the engine context, not the request's, so it survives
// the response but not a shutdown. An overlapping cycle is coalesced by the
// synchronizer itself.
func (h DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	st := h.Sync.Status()
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "refresh already running"})
		return
	}

	ctx := h.EngineCtx
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		_ = h.Sync.RefreshOnce(ctx)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
