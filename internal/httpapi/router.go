package httpapi

import "net/http"

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Dashboard view
	dh := DashboardHandler{Sync: d.Sync, EngineCtx: d.EngineCtx}
	mux.HandleFunc("/dashboard", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Get,
	}))
	mux.HandleFunc("/sync/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Status,
	}))
	mux.HandleFunc("/sync/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Refresh,
	}))

	// Conversations
	ch := ConversationsHandler{Actions: d.Actions, Backend: d.Backend}
	mux.HandleFunc("/conversations/", conversationsMux(ch))

	// Attention flags
	fh := FlagsHandler{Actions: d.Actions}
	mux.HandleFunc("/attention-flags/", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: fh.ResolveByPath,
	}))

	// Bulk creation
	uh := UploadHandler{Upload: d.Upload}
	mux.HandleFunc("/upload-csv", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: uh.UploadCSV,
	}))
	mux.HandleFunc("/initialize", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: uh.Initialize,
	}))

	// Action tracker
	ah := ActionsHandler{Tracker: d.Tracker}
	mux.HandleFunc("/actions", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.List,
	}))

	// Audit trail
	hh := HistoryHandler{DB: d.DB}
	mux.HandleFunc("/history/refreshes", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Refreshes,
	}))
	mux.HandleFunc("/history/actions", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Actions,
	}))

	// Config
	cfg := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfg.Get,
		http.MethodPut: cfg.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfg.Path,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/backend", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetAPIKey,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hlth := HealthHandler{Backend: d.Backend}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hlth.Health,
	}))

	return mux
}
