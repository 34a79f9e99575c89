package domain

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// AttentionFlag is a backend-raised signal that a conversation needs human
// attention. ConversationID is a soft reference; the engine does not check it
// against the conversation collections.
type AttentionFlag struct {
	ID             string   `json:"id"`
	ConversationID string   `json:"conversation_id"`
	Message        string   `json:"message"`
	Severity       Severity `json:"severity"`
	CreatedAt      string   `json:"created_at"`
	Resolved       bool     `json:"resolved"`
}
