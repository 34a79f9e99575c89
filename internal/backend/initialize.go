package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// ConversationInit mirrors the backend's /initialize request records.
type ConversationInit struct {
	InterviewerName     string            `json:"interviewer_name"`
	InterviewerNumber   string            `json:"interviewer_number"`
	InterviewerEmail    string            `json:"interviewer_email"`
	Interviewees        []IntervieweeInit `json:"interviewees"`
	SuperiorFlag        string            `json:"superior_flag"`
	MeetingDuration     int               `json:"meeting_duration"`
	RoleToContactName   string            `json:"role_to_contact_name"`
	RoleToContactNumber string            `json:"role_to_contact_number"`
	RoleToContactEmail  string            `json:"role_to_contact_email"`
	CompanyDetails      string            `json:"company_details"`
}

type IntervieweeInit struct {
	Name    string `json:"name"`
	Number  string `json:"number"`
	Email   string `json:"email"`
	JDTitle string `json:"jd_title"`
}

type InitRowResult struct {
	Index          int    `json:"index"`
	Status         string `json:"status"`
	ConversationID string `json:"conversation_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

type InitializeResponse struct {
	Results []InitRowResult `json:"results"`
}

// Initialize creates conversations from structured records. Like the CSV
// path, the backend answers 2xx even when individual records fail; the
// per-index results carry the detail.
func (c *Client) Initialize(ctx context.Context, conversations []ConversationInit) (*InitializeResponse, error) {
	const op = "initialize conversations"

	body, err := json.Marshal(map[string]any{"conversations": conversations})
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, errorFromResponse(op, res)
	}

	var out InitializeResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &BackendError{Op: op, Status: res.StatusCode, Message: "malformed response body: " + err.Error()}
	}
	return &out, nil
}
