package actions

import (
	"context"
	"database/sql"
	"log"
	"time"

	"hirewatch-engine/internal/backend"
	"hirewatch-engine/internal/events"
	"hirewatch-engine/internal/poll"
	"hirewatch-engine/internal/store"
)

// Service wires the tracker to the backend client and the snapshot.
// Resync is injected so tests can observe refresh triggers without a
// network round trip.
type Service struct {
	Client  *backend.Client
	Tracker *Tracker
	Sync    *poll.Synchronizer
	Hub     *events.Hub
	DB      *sql.DB // audit trail; may be nil
	Resync  func()  // out-of-band full refresh
}

// DeleteConversation deletes one conversation and, on success, removes it
// from both in-memory collections immediately instead of waiting for the
// next poll.
func (s *Service) DeleteConversation(ctx context.Context, id string) error {
	s.Tracker.Begin(KindDelete, id)

	if err := s.Client.DeleteConversation(ctx, id); err != nil {
		s.Tracker.Fail(KindDelete, id)
		s.recordAction(KindDelete, id, "failed", err.Error())
		return err
	}

	s.Tracker.Succeed(KindDelete, id)
	if s.Sync != nil {
		s.Sync.RemoveConversation(id)
	}
	if s.Hub != nil {
		s.Hub.Publish(events.MakeEvent("", events.TypeConversationDeleted, 1, map[string]any{"id": id}))
	}
	s.recordAction(KindDelete, id, "succeeded", "")
	return nil
}

// ResolveFlag resolves one attention flag. Success triggers a full
// re-synchronization so the resolved state and badge counts come from
// backend truth instead of local guessing.
func (s *Service) ResolveFlag(ctx context.Context, id string) error {
	s.Tracker.Begin(KindResolve, id)

	if err := s.Client.ResolveFlag(ctx, id); err != nil {
		s.Tracker.Fail(KindResolve, id)
		s.recordAction(KindResolve, id, "failed", err.Error())
		return err
	}

	s.Tracker.Succeed(KindResolve, id)
	if s.Hub != nil {
		s.Hub.Publish(events.MakeEvent("", events.TypeFlagResolved, 1, map[string]any{"id": id}))
	}
	s.recordAction(KindResolve, id, "succeeded", "")
	if s.Resync != nil {
		s.Resync()
	}
	return nil
}

func (s *Service) recordAction(kind Kind, id, outcome, errMsg string) {
	if s.DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := store.RecordAction(ctx, s.DB, store.ActionRecord{
		Kind:     string(kind),
		EntityID: id,
		Outcome:  outcome,
		Error:    errMsg,
	})
	if err != nil {
		log.Printf("[actions] audit write failed: %v", err)
	}
}
