// Package apiclient talks to the users REST API. Every call returns a
// Result and never an error: transport, status and decoding failures are
// logged and folded into a failed Result with a human-readable message.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hairizuan-noorazman/user-admin/logger"
)

// DefaultTimeout is used when no HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

// APIError represents a non-success response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// Result is the uniform outcome of one API call.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Client is an HTTP client for the users API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout of the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:3000.
func New(baseURL string, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: log.WithField("component", "apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logger.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	c.logger.Debug(ctx, "api request", map[string]interface{}{
		"method": method,
		"url":    u,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug(ctx, "api response", map[string]interface{}{
		"method": method,
		"url":    u,
		"status": resp.StatusCode,
		"bytes":  len(respBody),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &errResp) == nil {
			if errResp.Error != "" {
				return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
			}
			if errResp.Message != "" {
				return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
			}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	return respBody, nil
}

// call performs one request and decodes a JSON body into T. Any failure is
// logged and reported as a failed Result carrying failMsg.
func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body interface{}, failMsg string) Result[T] {
	raw, err := c.do(ctx, method, path, query, body)
	if err != nil {
		c.logFailure(ctx, method, path, err)
		return Result[T]{Message: failMsg}
	}

	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		c.logFailure(ctx, method, path, fmt.Errorf("failed to parse response: %w", err))
		return Result[T]{Message: failMsg}
	}
	return Result[T]{Success: true, Data: data}
}

func (c *Client) logFailure(ctx context.Context, method, path string, err error) {
	fields := map[string]interface{}{
		"method": method,
		"path":   path,
		"error":  err.Error(),
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		fields["status"] = apiErr.StatusCode
	}
	c.logger.Error(ctx, "api call failed", fields)
}
