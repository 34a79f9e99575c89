package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"hirewatch-engine/internal/backend"
	"hirewatch-engine/internal/upload"
)

type UploadHandler struct {
	Upload *upload.Uploader
}

type uploadResult struct {
	Created int                 `json:"created"`
	Failed  int                 `json:"failed"`
	Results []backend.RowResult `json:"results"`
	Message string              `json:"message,omitempty"`
	// Cleared tells the UI whether to drop its file selection. Partial
	// failure keeps the selection so the operator can fix and resubmit.
	Cleared bool `json:"cleared"`
}

func (h UploadHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_form", "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "no_file", "no file selected")
		return
	}
	defer file.Close()

	outcome, err := h.Upload.Submit(r.Context(), header.Filename, file)
	h.writeOutcome(w, r, outcome, err)
}

func (h UploadHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Conversations []backend.ConversationInit `json:"conversations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	outcome, err := h.Upload.SubmitBatch(r.Context(), req.Conversations)
	h.writeOutcome(w, r, outcome, err)
}

func (h UploadHandler) writeOutcome(w http.ResponseWriter, r *http.Request, outcome *upload.Outcome, err error) {
	if err == nil {
		writeJSON(w, uploadResult{
			Created: outcome.Created,
			Failed:  outcome.Failed,
			Results: outcome.Results,
			Cleared: true,
		})
		return
	}

	var lve *upload.LocalValidationError
	if errors.As(err, &lve) {
		WriteError(w, r, http.StatusBadRequest, "invalid_file", lve.Reason)
		return
	}

	var pf *upload.PartialFailure
	if errors.As(err, &pf) {
		// The HTTP exchange succeeded; report the truthful created count
		// alongside the aggregate failure message.
		writeJSON(w, uploadResult{
			Created: outcome.Created,
			Failed:  outcome.Failed,
			Results: outcome.Results,
			Message: pf.Message,
			Cleared: false,
		})
		return
	}

	writeBackendError(w, r, err)
}
