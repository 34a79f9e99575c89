package domain

// Conversation is one interviewer-to-many-interviewees coordination thread
// tracked by the remote backend. Timestamps stay as the backend's ISO-8601
// strings; the engine never does date math on them.
type Conversation struct {
	ID                string          `json:"id"`
	InterviewerName   string          `json:"interviewer_name"`
	InterviewerNumber string          `json:"interviewer_number"`
	InterviewerEmail  string          `json:"interviewer_email"`
	Interviewees      []Interviewee   `json:"interviewees"`
	Status            string          `json:"status"` // active | completed | queued
	LastActivity      string          `json:"last_activity"`
	CompletedAt       string          `json:"completed_at,omitempty"` // set only when status=completed
	Flags             []AttentionFlag `json:"attention_flags,omitempty"`
}

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusQueued    = "queued"
)

// Interviewee status is a free-form backend label ("scheduled", "pending",
// "cancelled", ...) used only for display coloring.
type Interviewee struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Number  string `json:"number"`
	Email   string `json:"email"`
	JDTitle string `json:"jd_title,omitempty"`
	Status  string `json:"status"`
}
