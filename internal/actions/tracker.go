// Package actions runs per-entity mutating operations (delete, resolve)
// independently of the refresh cycle and of each other.
package actions

import "sync"

type Kind string

const (
	KindDelete  Kind = "delete"
	KindResolve Kind = "resolve"
)

type State string

const (
	StateIdle      State = "idle"
	StateInFlight  State = "in-flight"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

type trackerKey struct {
	kind Kind
	id   string
}

// Tracker is a per-key phase map, not a lock: it reports where each
// (kind, id) pair is, and pairs never observe each other. Keys are created
// lazily and never deleted; the entity collections are operator-scale small,
// so the map stays bounded in practice.
type Tracker struct {
	mu sync.Mutex
	m  map[trackerKey]State
}

func NewTracker() *Tracker {
	return &Tracker{m: make(map[trackerKey]State)}
}

func (t *Tracker) Get(kind Kind, id string) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.m[trackerKey{kind, id}]; ok {
		return st
	}
	return StateIdle
}

// Begin marks the pair in-flight. A repeat Begin while in-flight simply
// stays in-flight; rejecting duplicate requests is the caller's job (the UI
// disables the control).
func (t *Tracker) Begin(kind Kind, id string) {
	t.set(kind, id, StateInFlight)
}

func (t *Tracker) Succeed(kind Kind, id string) {
	t.set(kind, id, StateSucceeded)
}

func (t *Tracker) Fail(kind Kind, id string) {
	t.set(kind, id, StateFailed)
}

func (t *Tracker) set(kind Kind, id string, st State) {
	t.mu.Lock()
	t.m[trackerKey{kind, id}] = st
	t.mu.Unlock()
}

type Entry struct {
	Kind  Kind   `json:"kind"`
	ID    string `json:"id"`
	State State  `json:"state"`
}

// All snapshots every tracked pair, for the /actions endpoint.
func (t *Tracker) All() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, 0, len(t.m))
	for k, st := range t.m {
		out = append(out, Entry{Kind: k.kind, ID: k.id, State: st})
	}
	return out
}
