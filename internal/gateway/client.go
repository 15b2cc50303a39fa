// Package gateway is the sole point of contact with the remote summarizer
// backend. It owns authentication, per-attempt timeouts, bounded retries and
// the failure taxonomy; callers hand it a URL and a payload and get parsed
// JSON or a typed error back.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Doer issues one HTTP request. *http.Client satisfies it; tests inject a
// deterministic fake so no unit test ever touches the network.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// File is one uploaded archive carried in a multipart request.
type File struct {
	FieldName string
	Filename  string
	Content   []byte
}

// Client makes authenticated requests to the remote backend. It is stateless
// between calls and safe for concurrent use.
type Client struct {
	httpClient Doer
	token      string
	verbose    bool
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the underlying HTTP transport.
func WithTransport(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithToken sets the bearer token attached to every request. A blank token
// means the backend runs unauthenticated; that is not an error.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithVerbose enables per-request logging.
func WithVerbose(v bool) Option {
	return func(c *Client) { c.verbose = v }
}

// NewClient creates a gateway client. Timeouts are enforced per attempt via
// context deadlines, not on the transport itself.
func NewClient(opts ...Option) *Client {
	c := &Client{httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendJSON posts body as JSON to url and returns the parsed response body.
// A non-2xx status yields a *Error carrying the status and best-effort
// response text.
func (c *Client) SendJSON(ctx context.Context, url string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// SendMultipart posts fields plus an optional file as multipart/form-data.
// The boundary and Content-Type come from mime/multipart, never hand-built.
func (c *Client) SendMultipart(ctx context.Context, url string, fields map[string]string, file *File) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", name, err)
		}
	}
	if file != nil {
		fieldName := file.FieldName
		if fieldName == "" {
			fieldName = "file"
		}
		part, err := mw.CreateFormFile(fieldName, file.Filename)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("write file part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if c.verbose {
		slog.Info("gateway.request",
			"method", req.Method,
			"url", req.URL.String(),
			"request_id", requestID,
			"authenticated", c.token != "",
		)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.verbose {
		slog.Info("gateway.response", "status", resp.StatusCode, "request_id", requestID)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Body read is best effort; a read failure must not mask the status.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, &Error{StatusCode: resp.StatusCode, Body: body, RequestID: requestID}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("remote returned HTTP %d with a non-JSON body", resp.StatusCode)
	}
	return json.RawMessage(body), nil
}
