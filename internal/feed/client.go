package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomokihara/snapfeed/internal/domain/entity"
)

// Client is the HTTP implementation of API against the snapfeed backend.
type Client struct {
	baseURL string
	http    *http.Client
	// token supplies the current bearer token per request so the client
	// survives token refreshes.
	token func() string
}

var _ API = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets the bearer token supplier.
func WithTokenSource(token func() string) ClientOption {
	return func(c *Client) { c.token = token }
}

// NewClient creates an API client rooted at baseURL (e.g. "https://api.example.com").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   func() string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ToggleLike calls POST /api/v1/posts/{id}/like.
func (c *Client) ToggleLike(ctx context.Context, postID string) (LikeResult, error) {
	var result LikeResult
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/posts/%s/like", postID), nil, &result)
	return result, err
}

// AddComment calls POST /api/v1/posts/{id}/comments.
func (c *Client) AddComment(ctx context.Context, postID, content string) (entity.Comment, error) {
	body := map[string]string{"content": content}
	var resp struct {
		Comment      entity.Comment `json:"comment"`
		CommentCount int            `json:"comment_count"`
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/posts/%s/comments", postID), body, &resp)
	return resp.Comment, err
}

// DeletePost calls DELETE /api/v1/posts/{id}.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%s", postID), nil, nil)
}

// do performs one JSON round trip. Non-2xx responses are surfaced with the
// server's error message when the body carries one.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
