package backend

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete conversation", http.MethodDelete,
		"/conversations/"+url.PathEscape(id))
}

func (c *Client) ResolveFlag(ctx context.Context, id string) error {
	return c.mutate(ctx, "resolve flag", http.MethodPost,
		"/attention-flags/"+url.PathEscape(id)+"/resolve")
}

// Health reports whether the backend answers at all.
func (c *Client) Health(ctx context.Context) error {
	return c.mutate(ctx, "health", http.MethodGet, "/health")
}

func (c *Client) mutate(ctx context.Context, op, method, path string) error {
	req, err := c.newRequest(ctx, method, path, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	res, err := c.do(op, req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return errorFromResponse(op, res)
	}
	return nil
}
