package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// List calls return the raw records; admission filtering is the caller's
// job (internal/validate), so one malformed record can be dropped without
// losing the rest of the payload.

func (c *Client) ListActiveConversations(ctx context.Context) ([]json.RawMessage, error) {
	return c.list(ctx, "list active conversations", "/conversations/active")
}

func (c *Client) ListCompletedConversations(ctx context.Context) ([]json.RawMessage, error) {
	return c.list(ctx, "list completed conversations", "/conversations/completed")
}

func (c *Client) ListScheduledInterviews(ctx context.Context) ([]json.RawMessage, error) {
	return c.list(ctx, "list scheduled interviews", "/interviews/scheduled")
}

func (c *Client) ListAttentionFlags(ctx context.Context) ([]json.RawMessage, error) {
	return c.list(ctx, "list attention flags", "/attention-flags")
}

func (c *Client) ListConversationFlags(ctx context.Context, conversationID string) ([]json.RawMessage, error) {
	return c.list(ctx, "list conversation flags",
		"/conversations/"+url.PathEscape(conversationID)+"/attention-flags")
}

func (c *Client) list(ctx context.Context, op, path string) ([]json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	res, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, errorFromResponse(op, res)
	}

	var out []json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &BackendError{Op: op, Status: res.StatusCode, Message: "malformed response body: " + err.Error()}
	}
	return out, nil
}
