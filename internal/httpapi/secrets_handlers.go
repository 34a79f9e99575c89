package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"hirewatch-engine/internal/config"
	"hirewatch-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setAPIKeyReq struct {
	APIKey string `json:"api_key"`
}

func (h SecretsHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req setAPIKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.SetAPIKey(secrets.APIKeyringAccount(cfg), req.APIKey); err != nil {
		http.Error(w, "failed to store API key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
