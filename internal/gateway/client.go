// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Configuration constants for the ledger API client.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// Caps memory use even if the server misbehaves.
	MaxResponseSize = 1 * 1024 * 1024 // 1MB limit

	userAgent = "teller/1.0.0"
)

// Error variables for common ledger API errors.
var (
	// ErrInvalidCredentials indicates a login was rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAuthenticated indicates the session token is missing or
	// no longer recognized by the server.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden indicates the current role may not perform the operation.
	ErrForbidden = errors.New("operation not permitted for this role")

	// ErrNotFound indicates the requested account or profile does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRejected indicates the server refused the operation for a
	// business reason (insufficient funds, duplicate account, ...).
	ErrRejected = errors.New("operation rejected")

	// ErrUnavailable indicates the ledger service could not be reached.
	ErrUnavailable = errors.New("ledger service unavailable")
)

// APIError represents an error response from the ledger API.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ledger error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("ledger error (HTTP %d)", e.Status)
}

// ServerMessage extracts the server-supplied failure message from err,
// or "" when the error carries none. Callers use it to show server
// rejections verbatim and fall back to their own wording otherwise.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// apiErrorResponse is the error envelope the ledger sends with non-2xx
// statuses.
type apiErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Client is a client for communicating with the ledger REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration

	mu    sync.RWMutex
	token string
}

// NewClient creates a new ledger client for the given base URL
// (e.g. "http://127.0.0.1:8080"). The client starts without a session
// token; call SetToken after login.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		timeout: DefaultTimeout,
	}
}

// WithTimeout sets a custom timeout for API requests.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	c.httpClient.Timeout = timeout
	return c
}

// SetToken installs the session token used for bearer authentication.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the session token.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// Token returns the current session token, or "" when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// =============================================================================
// REQUEST / RESPONSE LOGGING
// =============================================================================

// logRequest logs an API request without exposing sensitive data.
// Headers (auth token) and bodies (PINs, passwords) are never logged.
func logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs an API response with duration. Only the status and
// timing are recorded, never the body.
func logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}

// =============================================================================
// CORE REQUEST PLUMBING
// =============================================================================

// setHeaders sets the required headers for ledger API requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// readResponse reads a response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// do performs a single request against the ledger API and decodes the
// response into out (which may be nil for calls whose body the caller
// ignores). Exactly one attempt is made: money-moving operations must
// never be replayed by the transport layer.
func (c *Client) do(ctx context.Context, method, path string, reqBody, out interface{}) error {
	var bodyReader io.Reader
	if reqBody != nil {
		bodyBytes, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	logRequest(req)
	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	// Clear Authorization immediately after the request so the token
	// cannot leak through later logging of the request value.
	req.Header.Del("Authorization")

	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	logResponse(resp, duration)

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return handleErrorResponse(resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// handleErrorResponse converts HTTP error responses to Go errors,
// preserving the server's message verbatim when it sent one.
func handleErrorResponse(statusCode int, body []byte) error {
	apiErr := &APIError{Status: statusCode}

	var envelope apiErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	}

	var sentinel error
	switch statusCode {
	case http.StatusUnauthorized:
		sentinel = ErrNotAuthenticated
		if strings.Contains(strings.ToLower(apiErr.Message), "invalid") {
			sentinel = ErrInvalidCredentials
		}
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	default:
		sentinel = ErrRejected
	}

	return fmt.Errorf("%w: %w", sentinel, apiErr)
}
