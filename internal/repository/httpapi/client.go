// Package httpapi implements the repository interfaces against the remote
// coupon service over plain JSON/HTTP.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"couponweb/internal/repository"
)

const (
	// maxErrorMessage caps how much of an error body is surfaced to callers.
	maxErrorMessage = 512
	// maxResponseBody caps how much of any response is read.
	maxResponseBody = 4 << 20
)

// Client issues single, non-retried requests to the coupon service.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client whose transport is traced with otelhttp.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

// NewClientWithHTTP returns a Client using hc as-is.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// do sends body as JSON (when non-nil) and decodes a 2xx response into out (when non-nil).
// Non-2xx responses become *repository.APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := repository.AuthToken(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(raw) > maxResponseBody {
		return fmt.Errorf("%s %s: response exceeds %d bytes", method, path, maxResponseBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &repository.APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage extracts a human-readable message from an error body. The
// coupon service answers either with plain text or {"message": "..."}.
func errorMessage(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if raw[0] == '{' && json.Unmarshal(raw, &envelope) == nil {
		switch {
		case envelope.Message != "":
			return truncate(envelope.Message)
		case envelope.Error != "":
			return truncate(envelope.Error)
		}
	}

	var s string
	if raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		return truncate(s)
	}
	return truncate(string(raw))
}

// truncate cuts s to at most maxErrorMessage bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxErrorMessage {
		return s
	}
	i := maxErrorMessage
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i]
}
