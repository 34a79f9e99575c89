package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(srv *httptest.Server) *Client {
	return New(Config{BaseURL: srv.URL, APIKey: "k-test", RequestsPerSec: 1000, Burst: 1000})
}

func TestListSendsAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/conversations/active" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "k-test" {
			t.Fatalf("unexpected api key header: %q", got)
		}
		_, _ = w.Write([]byte(`[{"id":"c1"},{"id":"c2"}]`))
	}))
	defer srv.Close()

	recs, err := testClient(srv).ListActiveConversations(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 raw records, got %d", len(recs))
	}
}

func TestListBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).ListAttentionFlags(context.Background())
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if be.Status != 500 || be.Message != "Internal server error" {
		t.Fatalf("unexpected error detail: %+v", be)
	}
}

func TestListTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := testClient(srv).ListScheduledInterviews(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestListMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).ListCompletedConversations(context.Background())
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError for malformed body, got %v", err)
	}
}

func TestDeleteConversation(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = w.Write([]byte(`{"message":"deleted"}`))
	}))
	defer srv.Close()

	if err := testClient(srv).DeleteConversation(context.Background(), "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/conversations/c1" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestResolveFlagNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/attention-flags/f9/resolve" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Flag not found"}`))
	}))
	defer srv.Close()

	err := testClient(srv).ResolveFlag(context.Background(), "f9")
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if be.Status != 404 || be.Message != "Flag not found" {
		t.Fatalf("unexpected error detail: %+v", be)
	}
}

func TestUploadCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload-csv" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing multipart field \"file\": %v", err)
		}
		defer f.Close()
		if hdr.Filename != "batch.csv" {
			t.Fatalf("unexpected filename: %s", hdr.Filename)
		}
		body, _ := io.ReadAll(f)
		if !strings.Contains(string(body), "interviewer_name") {
			t.Fatalf("file content not forwarded: %q", string(body))
		}
		_, _ = w.Write([]byte(`{"message":"ok","conversations_created":1,"conversations_failed":1,"results":[{"interviewer":"Ana","status":"success","conversation_id":"c1"},{"interviewer":"Bo","status":"failed","error":"bad number"}]}`))
	}))
	defer srv.Close()

	resp, err := testClient(srv).UploadCSV(context.Background(), "batch.csv",
		strings.NewReader("interviewer_name,interviewer_number\nAna,+1555\n"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.Created != 1 || resp.Failed != 1 || len(resp.Results) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Results[1].Error != "bad number" {
		t.Fatalf("row error lost: %+v", resp.Results[1])
	}
}

func TestInitialize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/initialize" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"conversations"`) {
			t.Fatalf("missing conversations field: %s", string(body))
		}
		_, _ = w.Write([]byte(`{"results":[{"index":0,"status":"success","conversation_id":"c1"}]}`))
	}))
	defer srv.Close()

	resp, err := testClient(srv).Initialize(context.Background(), []ConversationInit{{
		InterviewerName: "Ana",
		Interviewees:    []IntervieweeInit{{Name: "Bo", Number: "+1", Email: "bo@x", JDTitle: "SWE"}},
	}})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ConversationID != "c1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
