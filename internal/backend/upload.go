package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
)

const (
	RowSuccess = "success"
	RowFailed  = "failed"
)

// RowResult is one grouped conversation's outcome from a bulk upload. Rows
// sharing an interviewer triple are grouped backend-side into one
// conversation, so one result can cover several CSV lines.
type RowResult struct {
	Interviewer      string `json:"interviewer"`
	Status           string `json:"status"`
	ConversationID   string `json:"conversation_id,omitempty"`
	IntervieweeCount int    `json:"interviewee_count,omitempty"`
	Error            string `json:"error,omitempty"`
}

type UploadResponse struct {
	Message string      `json:"message"`
	Created int         `json:"conversations_created"`
	Failed  int         `json:"conversations_failed"`
	Results []RowResult `json:"results"`
}

// UploadCSV submits the tabular file once, multipart field "file". The
// caller decides what a row-level failure means; a 2xx with failed rows is
// not an error here.
func (c *Client) UploadCSV(ctx context.Context, filename string, file io.Reader) (*UploadResponse, error) {
	const op = "upload csv"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if _, err := io.Copy(fw, file); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload-csv", &buf)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, errorFromResponse(op, res)
	}

	var out UploadResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &BackendError{Op: op, Status: res.StatusCode, Message: "malformed response body: " + err.Error()}
	}
	return &out, nil
}
