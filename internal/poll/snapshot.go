package poll

import "hirewatch-engine/internal/domain"

// Snapshot is one consistent view of all four backend collections. It is
// always replaced wholesale; the UI never sees a half-updated refresh.
type Snapshot struct {
	Active      []domain.Conversation       `json:"active_conversations"`
	Completed   []domain.Conversation       `json:"completed_conversations"`
	Interviews  []domain.ScheduledInterview `json:"scheduled_interviews"`
	Flags       []domain.AttentionFlag      `json:"attention_flags"`
	RefreshedAt string                      `json:"refreshed_at"`
}

type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	Running   bool   `json:"running"`
}
