package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// TransportError means the request never completed: connect failure,
// timeout, cancelled context.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// BackendError is a non-2xx response, carrying the server's message when the
// body had one.
type BackendError struct {
	Op      string
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: backend status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: backend status %d", e.Op, e.Status)
}

// errorFromResponse drains a non-2xx body looking for the backend's
// {"error": "..."} envelope.
func errorFromResponse(op string, res *http.Response) *BackendError {
	be := &BackendError{Op: op, Status: res.StatusCode}
	body, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err != nil {
		return be
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		be.Message = envelope.Error
	}
	return be
}
