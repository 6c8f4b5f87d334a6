// Package client talks to the credential store service over its REST API
// and models the state of an interactive front end on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ericfisherdev/passop/internal/domain/model"
)

// DefaultServerURL is the address the service listens on out of the box.
const DefaultServerURL = "http://localhost:3000"

// APIError is a non-2xx response from the service. Message carries the
// service's own message when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client is an HTTP client for the four store operations.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the service at baseURL. An empty baseURL means
// DefaultServerURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type keyBody struct {
	ID       string `json:"_id,omitempty"`
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

type createBody struct {
	Success bool               `json:"success"`
	Result  model.InsertResult `json:"result"`
}

// List fetches every stored record.
func (c *Client) List(ctx context.Context) ([]model.Credential, error) {
	var creds []model.Credential
	if err := c.do(ctx, http.MethodGet, "/", nil, &creds); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	if creds == nil {
		creds = []model.Credential{}
	}
	return creds, nil
}

// Create stores a new record. Any ID on cred is ignored by the service.
func (c *Client) Create(ctx context.Context, cred model.Credential) (model.InsertResult, error) {
	body := keyBody{Site: cred.Site, Username: cred.Username, Password: cred.Password}

	var resp createBody
	if err := c.do(ctx, http.MethodPost, "/", body, &resp); err != nil {
		return model.InsertResult{}, fmt.Errorf("create: %w", err)
	}
	return resp.Result, nil
}

// UpdatePassword sets the password of the record selected by key and
// returns the service's confirmation message.
func (c *Client) UpdatePassword(ctx context.Context, key model.CredentialKey, password string) (string, error) {
	body := keyBody{ID: key.ID, Site: key.Site, Username: key.Username, Password: password}

	var resp messageBody
	if err := c.do(ctx, http.MethodPut, "/password", body, &resp); err != nil {
		return "", fmt.Errorf("update password: %w", err)
	}
	return resp.Message, nil
}

// Delete removes the record selected by key. A record that no longer
// exists is reported as an APIError with status 404.
func (c *Client) Delete(ctx context.Context, key model.CredentialKey) error {
	body := keyBody{ID: key.ID, Site: key.Site, Username: key.Username}

	if err := c.do(ctx, http.MethodDelete, "/", body, nil); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseErrorResponse builds an APIError from the {"message": ...} body the
// service sends with failures.
func parseErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}

	var msg messageBody
	if err := json.Unmarshal(data, &msg); err == nil {
		apiErr.Message = msg.Message
	}
	return apiErr
}
