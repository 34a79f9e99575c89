package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"hirewatch-engine/internal/actions"
	"hirewatch-engine/internal/backend"
	"hirewatch-engine/internal/config"
	"hirewatch-engine/internal/events"
	"hirewatch-engine/internal/poll"
	"hirewatch-engine/internal/upload"
)

type Deps struct {
	Hub     *events.Hub
	Sync    *poll.Synchronizer
	Tracker *actions.Tracker
	Actions *actions.Service
	Upload  *upload.Uploader
	Backend *backend.Client

	// Engine lifetime; bounds work that outlives a single request, like
	// operator-triggered refreshes.
	EngineCtx context.Context

	DB *sql.DB

	// Atomic store for config.Config
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
