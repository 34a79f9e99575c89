package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"hirewatch-engine/internal/actions"
	"hirewatch-engine/internal/backend"
	"hirewatch-engine/internal/config"
	"hirewatch-engine/internal/events"
	"hirewatch-engine/internal/httpapi"
	"hirewatch-engine/internal/poll"
	"hirewatch-engine/internal/scheduler"
	"hirewatch-engine/internal/secrets"
	"hirewatch-engine/internal/store"
	"hirewatch-engine/internal/upload"
)

func main() {
	// Engine data dir: env if provided (the desktop shell passes one),
	// else local folder.
	dataDir := os.Getenv("HIREWATCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; two instances sharing an audit DB corrupt
	// each other's view of who refreshed what.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, warning := range vr.Warnings {
		log.Printf("[config] warning: %s", warning)
	}
	if !vr.OK() {
		log.Fatalf("config invalid (%s):\n- %v", userCfgPath, vr.Errors)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "hirewatch.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	apiKey, err := secrets.GetAPIKey(secrets.APIKeyringAccount(cfg))
	if err != nil {
		log.Fatalf("backend credential missing: %v", err)
	}

	client := backend.New(backend.Config{
		BaseURL:        cfg.Backend.BaseURL,
		APIKey:         apiKey,
		Timeout:        time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
		RequestsPerSec: cfg.Backend.RequestsPerSec,
	})

	hub := events.NewHub()
	tracker := actions.NewTracker()
	syncer := poll.NewSynchronizer(client, hub, db.Pool)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resync := func() {
		go func() { _ = syncer.RefreshOnce(ctx) }()
	}

	actionSvc := &actions.Service{
		Client:  client,
		Tracker: tracker,
		Sync:    syncer,
		Hub:     hub,
		DB:      db.Pool,
		Resync:  resync,
	}
	uploader := &upload.Uploader{
		Client: client,
		Hub:    hub,
		Resync: resync,
	}

	syncer.Start(ctx, time.Duration(cfg.Polling.RefreshSeconds)*time.Second)

	go scheduler.Every(ctx, 24*time.Hour, "cleanup", func(ctx context.Context) error {
		n, err := store.CleanupOldRecords(db.Pool)
		if n > 0 {
			log.Printf("[cleanup] pruned %d audit record(s)", n)
		}
		return err
	})

	mux := httpapi.NewMux(httpapi.Deps{
		Hub:         hub,
		Sync:        syncer,
		EngineCtx:   ctx,
		Tracker:     tracker,
		Actions:     actionSvc,
		Upload:      uploader,
		Backend:     client,
		DB:          db.Pool,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})
	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (backend=%s)", addr, cfg.Backend.BaseURL)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
