package poll

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hirewatch-engine/internal/backend"
	"hirewatch-engine/internal/events"
)

const (
	activeC1    = `{"id":"c1","interviewer_name":"Ana","interviewer_number":"+1","interviewer_email":"ana@x","status":"active","last_activity":"t","interviewees":[]}`
	doneC1      = `{"id":"c1","interviewer_name":"Ana","interviewer_number":"+1","interviewer_email":"ana@x","status":"completed","last_activity":"t","completed_at":"t2","interviewees":[]}`
	doneC2      = `{"id":"c2","interviewer_name":"Eve","interviewer_number":"+2","interviewer_email":"eve@x","status":"completed","last_activity":"t","completed_at":"t2","interviewees":[]}`
	goodFlag    = `{"id":"f1","conversation_id":"c1","message":"m","severity":"high","created_at":"t","resolved":false}`
	badFlag     = `{"id":"f2","conversation_id":"c1","message":"m","severity":"urgent","created_at":"t","resolved":false}`
	interviewI1 = `{"id":"i1","title":"Interview with Bo","scheduled_time":"t","status":"scheduled"}`
)

// fakeBackend serves the four list endpoints from a mutable payload map;
// a path mapped to "" answers 500.
func fakeBackend(t *testing.T, payloads map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := payloads[r.URL.Path]
		if !ok {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if body == "" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
}

func newTestSync(srv *httptest.Server, hub *events.Hub) *Synchronizer {
	client := backend.New(backend.Config{BaseURL: srv.URL, APIKey: "k", RequestsPerSec: 1000, Burst: 1000})
	return NewSynchronizer(client, hub, nil)
}

func TestRefreshOncePublishesAllFour(t *testing.T) {
	srv := fakeBackend(t, map[string]string{
		"/conversations/active":    `[` + activeC1 + `]`,
		"/conversations/completed": `[` + doneC2 + `]`,
		"/interviews/scheduled":    `[` + interviewI1 + `]`,
		"/attention-flags":         `[` + goodFlag + `,` + badFlag + `]`,
	})
	defer srv.Close()

	hub := events.NewHub()
	sub := hub.Subscribe()
	s := newTestSync(srv, hub)

	if err := s.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Active) != 1 || snap.Active[0].ID != "c1" {
		t.Fatalf("active: %+v", snap.Active)
	}
	if len(snap.Completed) != 1 || snap.Completed[0].ID != "c2" {
		t.Fatalf("completed: %+v", snap.Completed)
	}
	if len(snap.Interviews) != 1 || snap.Interviews[0].ID != "i1" {
		t.Fatalf("interviews: %+v", snap.Interviews)
	}
	// badFlag has an unknown severity and must not pass the gate
	if len(snap.Flags) != 1 || snap.Flags[0].ID != "f1" {
		t.Fatalf("flags: %+v", snap.Flags)
	}

	st := s.Status()
	if st.Running || st.LastError != "" || st.LastOkAt == "" {
		t.Fatalf("status after ok refresh: %+v", st)
	}

	evt := <-sub
	var e events.Event
	if err := json.Unmarshal([]byte(evt), &e); err != nil {
		t.Fatalf("bad hub event: %v", err)
	}
	if e.Type != events.TypeSnapshotPublished {
		t.Fatalf("unexpected event type: %s", e.Type)
	}
}

func TestRefreshOnceIsolatesOneDeadResource(t *testing.T) {
	srv := fakeBackend(t, map[string]string{
		"/conversations/active":    `[` + activeC1 + `]`,
		"/conversations/completed": "", // 500s
		"/interviews/scheduled":    `[` + interviewI1 + `]`,
		"/attention-flags":         `[` + goodFlag + `]`,
	})
	defer srv.Close()

	s := newTestSync(srv, events.NewHub())
	if err := s.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("refresh must not fail for a single dead resource: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Active) != 1 || len(snap.Interviews) != 1 || len(snap.Flags) != 1 {
		t.Fatalf("healthy collections lost: %+v", snap)
	}
	if snap.Completed == nil || len(snap.Completed) != 0 {
		t.Fatalf("dead collection should be empty non-nil, got %#v", snap.Completed)
	}
	if st := s.Status(); st.LastError != "" {
		t.Fatalf("per-resource failure must not escalate to status error: %+v", st)
	}
}

func TestRefreshOnceAllDeadStillPublishes(t *testing.T) {
	srv := fakeBackend(t, map[string]string{
		"/conversations/active":    "",
		"/conversations/completed": "",
		"/interviews/scheduled":    "",
		"/attention-flags":         "",
	})
	defer srv.Close()

	s := newTestSync(srv, events.NewHub())
	if err := s.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.Active)+len(snap.Completed)+len(snap.Interviews)+len(snap.Flags) != 0 {
		t.Fatalf("expected all-empty snapshot, got %+v", snap)
	}
	if snap.RefreshedAt == "" {
		t.Fatalf("snapshot must still carry a refresh time")
	}
}

func TestRemoveConversationDropsFromBothCollections(t *testing.T) {
	srv := fakeBackend(t, map[string]string{
		"/conversations/active":    `[` + activeC1 + `]`,
		"/conversations/completed": `[` + doneC1 + `,` + doneC2 + `]`,
		"/interviews/scheduled":    `[]`,
		"/attention-flags":         `[]`,
	})
	defer srv.Close()

	s := newTestSync(srv, events.NewHub())
	if err := s.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	s.RemoveConversation("c1")

	snap := s.Snapshot()
	if len(snap.Active) != 0 {
		t.Fatalf("c1 still in active: %+v", snap.Active)
	}
	if len(snap.Completed) != 1 || snap.Completed[0].ID != "c2" {
		t.Fatalf("completed after removal: %+v", snap.Completed)
	}
}

func TestRefreshOnceSkipsWhileCycleOutstanding(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/conversations/active" {
			close(entered)
			<-release
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	hub := events.NewHub()
	sub := hub.Subscribe()
	s := newTestSync(srv, hub)

	done := make(chan error, 1)
	go func() { done <- s.RefreshOnce(context.Background()) }()
	<-entered

	// second cycle lands while the first is outstanding: skipped, no error,
	// nothing published
	if err := s.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("skipped cycle must not error: %v", err)
	}
	if len(sub) != 0 {
		t.Fatalf("skipped cycle must not publish")
	}
	if st := s.Status(); !st.Running {
		t.Fatalf("first cycle still outstanding, status must say so: %+v", st)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first cycle: %v", err)
	}

	evt := <-sub
	var e events.Event
	if err := json.Unmarshal([]byte(evt), &e); err != nil {
		t.Fatalf("bad hub event: %v", err)
	}
	if e.Type != events.TypeSnapshotPublished {
		t.Fatalf("unexpected event type: %s", e.Type)
	}
	if len(sub) != 0 {
		t.Fatalf("exactly one snapshot expected for the overlapping pair")
	}
}

func TestRefreshOnceCancelledContext(t *testing.T) {
	srv := fakeBackend(t, map[string]string{
		"/conversations/active":    `[]`,
		"/conversations/completed": `[]`,
		"/interviews/scheduled":    `[]`,
		"/attention-flags":         `[]`,
	})
	defer srv.Close()

	hub := events.NewHub()
	sub := hub.Subscribe()
	s := newTestSync(srv, hub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.RefreshOnce(ctx); err == nil {
		t.Fatalf("expected orchestration-level error for cancelled context")
	}
	if st := s.Status(); st.LastError == "" {
		t.Fatalf("cancelled cycle must surface a dashboard-level error")
	}

	evt := <-sub
	var e events.Event
	if err := json.Unmarshal([]byte(evt), &e); err != nil {
		t.Fatalf("bad hub event: %v", err)
	}
	if e.Type != events.TypeSyncFailed {
		t.Fatalf("unexpected event type: %s", e.Type)
	}
}
