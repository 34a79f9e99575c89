// Package upload submits bulk conversation batches (CSV file or structured
// JSON) and reconciles the backend's per-row results into one outcome.
package upload

import (
	"context"
	"fmt"
	"io"
	"strings"

	"hirewatch-engine/internal/backend"
	"hirewatch-engine/internal/events"
)

// LocalValidationError rejects an artifact before any network call is made.
type LocalValidationError struct {
	Reason string
}

func (e *LocalValidationError) Error() string { return e.Reason }

// PartialFailure: the HTTP exchange succeeded but some rows failed. The
// created count is still truthful; Message aggregates every failing row's
// reason.
type PartialFailure struct {
	Created int
	Failed  int
	Message string
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("%d conversation(s) failed: %s", e.Failed, e.Message)
}

type Outcome struct {
	Created int                 `json:"created"`
	Failed  int                 `json:"failed"`
	Results []backend.RowResult `json:"results"`
}

type Uploader struct {
	Client *backend.Client
	Hub    *events.Hub
	Resync func() // triggered on full success only
}

// Submit validates the artifact surface, uploads it exactly once (no
// retry), and reconciles the response. On partial failure the outcome is
// returned together with a *PartialFailure so the caller keeps the file
// selection; on full success the selection can be cleared and a refresh is
// triggered.
func (u *Uploader) Submit(ctx context.Context, filename string, file io.Reader) (*Outcome, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, &LocalValidationError{Reason: "no file selected"}
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return nil, &LocalValidationError{Reason: "file must be a CSV"}
	}

	resp, err := u.Client.UploadCSV(ctx, filename, file)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Created: resp.Created, Failed: resp.Failed, Results: resp.Results}
	if resp.Failed > 0 {
		return outcome, &PartialFailure{
			Created: resp.Created,
			Failed:  resp.Failed,
			Message: joinRowErrors(resp.Results),
		}
	}

	u.finish(outcome)
	return outcome, nil
}

// SubmitBatch is the structured-JSON sibling of Submit, backed by the
// backend's initialize endpoint. Same reconciliation policy.
func (u *Uploader) SubmitBatch(ctx context.Context, conversations []backend.ConversationInit) (*Outcome, error) {
	if len(conversations) == 0 {
		return nil, &LocalValidationError{Reason: "no conversations provided"}
	}

	resp, err := u.Client.Initialize(ctx, conversations)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{}
	var failures []string
	for _, r := range resp.Results {
		rr := backend.RowResult{
			Status:         r.Status,
			ConversationID: r.ConversationID,
			Error:          r.Error,
		}
		outcome.Results = append(outcome.Results, rr)
		if r.Status == backend.RowSuccess {
			outcome.Created++
			continue
		}
		outcome.Failed++
		failures = append(failures, rowError(r.Error))
	}

	if outcome.Failed > 0 {
		return outcome, &PartialFailure{
			Created: outcome.Created,
			Failed:  outcome.Failed,
			Message: strings.Join(failures, "; "),
		}
	}

	u.finish(outcome)
	return outcome, nil
}

func (u *Uploader) finish(outcome *Outcome) {
	if u.Hub != nil {
		u.Hub.Publish(events.MakeEvent("", events.TypeUploadCompleted, 1, map[string]any{
			"created": outcome.Created,
		}))
	}
	if u.Resync != nil {
		u.Resync()
	}
}

func joinRowErrors(results []backend.RowResult) string {
	var msgs []string
	for _, r := range results {
		if r.Status == backend.RowSuccess {
			continue
		}
		msgs = append(msgs, rowError(r.Error))
	}
	return strings.Join(msgs, "; ")
}

func rowError(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}
