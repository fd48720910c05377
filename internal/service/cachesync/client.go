package cachesync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const userAgent = "profile-pages"

var (
	// ErrNotConfigured means no webhook URL was set; invalidation is skipped.
	ErrNotConfigured = errors.New("cache webhook not configured")
)

// WebhookError reports a non-2xx reply from the webhook target.
type WebhookError struct {
	Status int
	Body   string
}

func (e *WebhookError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("cache webhook returned %d", e.Status)
	}
	return fmt.Sprintf("cache webhook returned %d: %s", e.Status, e.Body)
}

// Invalidator triggers a downstream cache invalidation.
type Invalidator interface {
	Invalidate(ctx context.Context, reason string) error
}

// WebhookClient POSTs {"reason": ...} to a deploy-hook style URL.
type WebhookClient struct {
	httpClient *http.Client
	url        string
	token      string
}

// Option configures a WebhookClient.
type Option func(*WebhookClient)

// WithToken sends the token as a bearer credential.
func WithToken(token string) Option {
	return func(c *WebhookClient) {
		c.token = token
	}
}

// NewWebhookClient returns a client for url. An empty url yields a client
// whose Invalidate always fails with ErrNotConfigured.
func NewWebhookClient(httpClient *http.Client, url string, opts ...Option) *WebhookClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &WebhookClient{httpClient: httpClient, url: url}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type invalidateRequest struct {
	Reason string `json:"reason"`
}

// Invalidate performs one POST. It does not retry.
func (c *WebhookClient) Invalidate(ctx context.Context, reason string) error {
	if c.url == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(invalidateRequest{Reason: reason})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling cache webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &WebhookError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
}

var _ Invalidator = (*WebhookClient)(nil)
