package poll

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"hirewatch-engine/internal/backend"
	"hirewatch-engine/internal/domain"
	"hirewatch-engine/internal/events"
	"hirewatch-engine/internal/scheduler"
	"hirewatch-engine/internal/store"
	"hirewatch-engine/internal/validate"
)

// Synchronizer owns the dashboard snapshot. It is the only writer of the
// collections; entity actions go through RemoveConversation, which is the
// one documented exception (optimistic removal after a confirmed delete).
type Synchronizer struct {
	client *backend.Client
	hub    *events.Hub
	db     *sql.DB // audit trail; may be nil in tests

	snap    atomic.Value // Snapshot
	status  atomic.Value // Status
	running atomic.Bool
}

func NewSynchronizer(client *backend.Client, hub *events.Hub, db *sql.DB) *Synchronizer {
	s := &Synchronizer{client: client, hub: hub, db: db}
	s.snap.Store(Snapshot{})
	s.status.Store(Status{})
	return s
}

func (s *Synchronizer) Snapshot() Snapshot { return s.snap.Load().(Snapshot) }
func (s *Synchronizer) Status() Status     { return s.status.Load().(Status) }

// Start drives periodic refreshes until ctx is cancelled. The first cycle
// runs immediately.
func (s *Synchronizer) Start(ctx context.Context, interval time.Duration) {
	go scheduler.Every(ctx, interval, "sync", s.RefreshOnce)
}

// RefreshOnce executes one refresh cycle: fan out the four list calls,
// swallow per-resource failures into empty collections, gate, publish.
// Cycles are serialized; a tick that lands while one is outstanding is
// skipped so snapshots never publish out of order.
func (s *Synchronizer) RefreshOnce(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		log.Printf("[sync] previous cycle still running; skipping tick")
		return nil
	}
	defer s.running.Store(false)

	runAt := time.Now().UTC().Format(time.RFC3339)
	st := s.Status()
	st.Running = true
	st.LastRunAt = runAt
	s.status.Store(st)

	var rawActive, rawCompleted, rawInterviews, rawFlags []json.RawMessage

	fetch := func(name string, call func(context.Context) ([]json.RawMessage, error), dst *[]json.RawMessage) func() error {
		return func() error {
			recs, err := call(ctx)
			if err != nil {
				// Best-effort: one dead endpoint must not blank the
				// other three. Stale/empty beats a dead dashboard.
				log.Printf("[sync] %s failed, substituting empty: %v", name, err)
				return nil
			}
			*dst = recs
			return nil
		}
	}

	var g errgroup.Group
	g.Go(fetch("active conversations", s.client.ListActiveConversations, &rawActive))
	g.Go(fetch("completed conversations", s.client.ListCompletedConversations, &rawCompleted))
	g.Go(fetch("scheduled interviews", s.client.ListScheduledInterviews, &rawInterviews))
	g.Go(fetch("attention flags", s.client.ListAttentionFlags, &rawFlags))

	waitErr := g.Wait()
	if waitErr == nil && ctx.Err() != nil {
		waitErr = ctx.Err()
	}
	if waitErr != nil {
		// Branches swallow their own failures, so an error here means the
		// orchestration itself broke. That escalates to a dashboard-level
		// error instead of a snapshot.
		st = s.Status()
		st.Running = false
		st.LastError = waitErr.Error()
		s.status.Store(st)
		s.hub.Publish(events.MakeEvent("", events.TypeSyncFailed, 1, map[string]any{"error": waitErr.Error()}))
		s.recordRefresh(store.RefreshRecord{RunAt: runAt, OK: false, Error: waitErr.Error()})
		return waitErr
	}

	snap := Snapshot{
		Active:      validate.Conversations(rawActive),
		Completed:   validate.Conversations(rawCompleted),
		Interviews:  validate.ScheduledInterviews(rawInterviews),
		Flags:       validate.Flags(rawFlags),
		RefreshedAt: runAt,
	}
	s.snap.Store(snap)

	now := time.Now().UTC().Format(time.RFC3339)
	st = s.Status()
	st.Running = false
	st.LastError = ""
	st.LastOkAt = now
	s.status.Store(st)

	s.hub.Publish(events.MakeEvent("", events.TypeSnapshotPublished, 1, map[string]any{
		"active":     len(snap.Active),
		"completed":  len(snap.Completed),
		"interviews": len(snap.Interviews),
		"flags":      len(snap.Flags),
	}))

	s.recordRefresh(store.RefreshRecord{
		RunAt:      runAt,
		OK:         true,
		Active:     len(snap.Active),
		Completed:  len(snap.Completed),
		Interviews: len(snap.Interviews),
		Flags:      len(snap.Flags),
	})

	log.Printf("[sync] ok active=%d completed=%d interviews=%d flags=%d",
		len(snap.Active), len(snap.Completed), len(snap.Interviews), len(snap.Flags))
	return nil
}

// RemoveConversation drops id from both conversation collections without
// waiting for the next poll. A stale poll response resolving concurrently
// may briefly resurrect the row; the next cycle settles it (accepted race).
func (s *Synchronizer) RemoveConversation(id string) {
	snap := s.Snapshot()
	snap.Active = withoutConversation(snap.Active, id)
	snap.Completed = withoutConversation(snap.Completed, id)
	s.snap.Store(snap)
}

func withoutConversation(in []domain.Conversation, id string) []domain.Conversation {
	out := make([]domain.Conversation, 0, len(in))
	for _, c := range in {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func (s *Synchronizer) recordRefresh(rec store.RefreshRecord) {
	if s.db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.RecordRefresh(ctx, s.db, rec); err != nil {
		log.Printf("[sync] audit write failed: %v", err)
	}
}
