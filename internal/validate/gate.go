// Package validate is the admission gate between the backend's wire payloads
// and the engine's state. Records that do not structurally conform to their
// kind are dropped in place; a malformed record must never abort a refresh.
package validate

import (
	"encoding/json"
	"log"

	"hirewatch-engine/internal/domain"
)

// Flags keeps exactly the records carrying all six flag fields with the
// right primitive types and an enumerated severity, in input order.
func Flags(raw []json.RawMessage) []domain.AttentionFlag {
	out := make([]domain.AttentionFlag, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		m, ok := asObject(r)
		if !ok || !flagOK(m) {
			dropped++
			continue
		}
		var f domain.AttentionFlag
		if err := json.Unmarshal(r, &f); err != nil {
			dropped++
			continue
		}
		out = append(out, f)
	}
	logDropped("attention_flag", dropped)
	return out
}

func Conversations(raw []json.RawMessage) []domain.Conversation {
	out := make([]domain.Conversation, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		m, ok := asObject(r)
		if !ok || !conversationOK(m) {
			dropped++
			continue
		}
		var c domain.Conversation
		if err := json.Unmarshal(r, &c); err != nil {
			dropped++
			continue
		}
		out = append(out, c)
	}
	logDropped("conversation", dropped)
	return out
}

func ScheduledInterviews(raw []json.RawMessage) []domain.ScheduledInterview {
	out := make([]domain.ScheduledInterview, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		m, ok := asObject(r)
		if !ok || !interviewOK(m) {
			dropped++
			continue
		}
		var iv domain.ScheduledInterview
		if err := json.Unmarshal(r, &iv); err != nil {
			dropped++
			continue
		}
		out = append(out, iv)
	}
	logDropped("scheduled_interview", dropped)
	return out
}

func flagOK(m map[string]any) bool {
	for _, k := range []string{"id", "conversation_id", "message", "severity", "created_at"} {
		if !hasString(m, k) {
			return false
		}
	}
	if _, ok := m["resolved"].(bool); !ok {
		return false
	}
	sev, _ := m["severity"].(string)
	return domain.Severity(sev).Valid()
}

func conversationOK(m map[string]any) bool {
	for _, k := range []string{"id", "interviewer_name", "interviewer_number", "interviewer_email", "status", "last_activity"} {
		if !hasString(m, k) {
			return false
		}
	}
	status, _ := m["status"].(string)
	switch status {
	case domain.StatusActive, domain.StatusCompleted, domain.StatusQueued:
	default:
		return false
	}

	// completed_at is set only on completed conversations; a string when
	// present either way.
	if v, present := m["completed_at"]; present {
		s, ok := v.(string)
		if !ok {
			return false
		}
		if s != "" && status != domain.StatusCompleted {
			return false
		}
	}

	ies, ok := m["interviewees"].([]any)
	if !ok {
		return false
	}
	for _, ie := range ies {
		iem, ok := ie.(map[string]any)
		if !ok {
			return false
		}
		for _, k := range []string{"name", "number", "email", "status"} {
			if !hasString(iem, k) {
				return false
			}
		}
	}
	return true
}

func interviewOK(m map[string]any) bool {
	for _, k := range []string{"id", "title", "scheduled_time", "status"} {
		if !hasString(m, k) {
			return false
		}
	}
	// Contact fields are optional but must be strings when sent.
	for _, k := range []string{
		"interviewer_name", "interviewer_number", "interviewer_email",
		"interviewee_name", "interviewee_number", "interviewee_email",
	} {
		if v, present := m[k]; present {
			if _, ok := v.(string); !ok {
				return false
			}
		}
	}
	return true
}

func asObject(r json.RawMessage) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal(r, &m); err != nil {
		return nil, false
	}
	return m, true
}

func hasString(m map[string]any, key string) bool {
	_, ok := m[key].(string)
	return ok
}

// Dropped records are a diagnostic, not an operator-facing error.
func logDropped(kind string, n int) {
	if n > 0 {
		log.Printf("[validate] dropped %d malformed %s record(s)", n, kind)
	}
}
