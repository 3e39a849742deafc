package backend

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

	"github.com/sayeedajmal/saudimart-core/pkg/auth"
	"github.com/sayeedajmal/saudimart-core/pkg/config"
	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
)

const errorBodyReadLimit int64 = 2048

var errBaseURLRequired = errors.New("backend base url is required")

// Client talks to the persistence API that owns catalog data. The API exposes
// single-entity endpoints only; cross-entity coordination happens in the
// composer, not here. Every mutating call forwards the caller's bearer
// credential and carries its own timeout.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the backend client from configuration.
func NewClient(cfg config.BackendConfig, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:    trimmed,
		timeout:    timeout,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// envelope is the wire shape of every backend response: {data, message} on
// success, {message, errors?, code?} on failure. A 2xx body carrying an
// embedded error code still counts as a failure.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code,omitempty"`
	Errors  []fieldError    `json:"errors,omitempty"`
}

type fieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeRemoteUnavailable, "backend client not configured")
	}

	token, ok := auth.BearerFromContext(ctx)
	if !ok && method != http.MethodGet {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer credential required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request payload")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build backend request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err,
			fmt.Sprintf("%s %s", method, path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp, method, path)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err, "decode backend response")
	}

	if env.Code != "" || len(env.Errors) > 0 {
		msg := env.Message
		if msg == "" {
			msg = "backend reported an application error"
		}
		return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]any{
			"code":   env.Code,
			"errors": env.Errors,
		})
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err, "decode backend payload")
		}
	}
	return nil
}

func (c *Client) statusError(resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	message := ""
	var env envelope
	if json.Unmarshal(raw, &env) == nil {
		message = env.Message
	}
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	cause := fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, message)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, cause, message)
	case http.StatusForbidden:
		return pkgerrors.Wrap(pkgerrors.CodeForbidden, cause, message)
	case http.StatusNotFound:
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, cause, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.Wrap(pkgerrors.CodeValidation, cause, message)
	default:
		return pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, cause, message)
	}
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
}

func escape(id string) string {
	return url.PathEscape(id)
}
