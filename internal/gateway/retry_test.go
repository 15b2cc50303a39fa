package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

// scriptedTransport plays back one canned outcome per attempt; the last
// entry repeats if the client keeps calling.
type scriptedTransport struct {
	calls  int
	script []func(req *http.Request) (*http.Response, error)
}

func (s *scriptedTransport) Do(req *http.Request) (*http.Response, error) {
	i := s.calls
	s.calls++
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	return s.script[i](req)
}

func respond(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}

// hangUntilDeadline blocks until the per-attempt context fires, then fails
// the way net/http does on a deadline.
func hangUntilDeadline(req *http.Request) (*http.Response, error) {
	<-req.Context().Done()
	return nil, &url.Error{Op: "Post", URL: req.URL.String(), Err: req.Context().Err()}
}

func TestRetrySucceedsAfterTimeouts(t *testing.T) {
	tr := &scriptedTransport{script: []func(*http.Request) (*http.Response, error){
		hangUntilDeadline,
		hangUntilDeadline,
		respond(http.StatusOK, `{"summary":"it works"}`),
	}}
	c := NewClient(WithTransport(tr))

	out, err := c.SendJSONWithRetry(context.Background(), "http://backend/summarize", struct{}{},
		RetryPolicy{Timeout: 20 * time.Millisecond, Retries: 2})
	if err != nil {
		t.Fatalf("SendJSONWithRetry: %v", err)
	}
	if tr.calls != 3 {
		t.Fatalf("attempts = %d, want 3", tr.calls)
	}
	if !strings.Contains(string(out), "it works") {
		t.Fatalf("response = %s", out)
	}
}

func TestNoRetryOn4xx(t *testing.T) {
	tr := &scriptedTransport{script: []func(*http.Request) (*http.Response, error){
		respond(http.StatusBadRequest, `{"detail":"bad input"}`),
	}}
	c := NewClient(WithTransport(tr))

	_, err := c.SendJSONWithRetry(context.Background(), "http://backend/prepare", struct{}{},
		RetryPolicy{Timeout: time.Second, Retries: 3})
	var re *Error
	if !errors.As(err, &re) || re.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 *Error, got %v", err)
	}
	if tr.calls != 1 {
		t.Fatalf("attempts = %d, want 1 (4xx must not retry)", tr.calls)
	}
}

func TestRetryOn5xxThenSuccess(t *testing.T) {
	tr := &scriptedTransport{script: []func(*http.Request) (*http.Response, error){
		respond(http.StatusInternalServerError, "boom"),
		respond(http.StatusOK, `{"ok":true}`),
	}}
	c := NewClient(WithTransport(tr))

	if _, err := c.SendJSONWithRetry(context.Background(), "http://backend/summarize", struct{}{},
		RetryPolicy{Timeout: time.Second, Retries: 1}); err != nil {
		t.Fatalf("SendJSONWithRetry: %v", err)
	}
	if tr.calls != 2 {
		t.Fatalf("attempts = %d, want 2", tr.calls)
	}
}

func TestRetriesClampedToMax(t *testing.T) {
	tr := &scriptedTransport{script: []func(*http.Request) (*http.Response, error){
		respond(http.StatusBadGateway, "down"),
	}}
	c := NewClient(WithTransport(tr))

	_, err := c.SendJSONWithRetry(context.Background(), "http://backend/summarize", struct{}{},
		RetryPolicy{Timeout: time.Second, Retries: 10})
	if err == nil {
		t.Fatal("expected failure after exhausting attempts")
	}
	if want := MaxRetries + 1; tr.calls != want {
		t.Fatalf("attempts = %d, want %d (retries clamped)", tr.calls, want)
	}
}

func TestNegativeRetriesMeansSingleAttempt(t *testing.T) {
	tr := &scriptedTransport{script: []func(*http.Request) (*http.Response, error){
		respond(http.StatusBadGateway, "down"),
	}}
	c := NewClient(WithTransport(tr))

	_, err := c.SendJSONWithRetry(context.Background(), "http://backend/summarize", struct{}{},
		RetryPolicy{Timeout: time.Second, Retries: -5})
	if err == nil {
		t.Fatal("expected failure")
	}
	if tr.calls != 1 {
		t.Fatalf("attempts = %d, want 1", tr.calls)
	}
}

func TestCallerDeadlineStopsBackoff(t *testing.T) {
	tr := &scriptedTransport{script: []func(*http.Request) (*http.Response, error){
		respond(http.StatusBadGateway, "down"),
	}}
	c := NewClient(WithTransport(tr))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.SendJSONWithRetry(ctx, "http://backend/summarize", struct{}{},
		RetryPolicy{Timeout: time.Second, Retries: 3})
	if err == nil {
		t.Fatal("expected failure")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want caller deadline error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("backoff ignored caller deadline, took %v", elapsed)
	}
}

func TestRetryableClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"remote 400", &Error{StatusCode: 400}, false},
		{"remote 404", &Error{StatusCode: 404}, false},
		{"remote 500", &Error{StatusCode: 500}, true},
		{"remote 503", &Error{StatusCode: 503}, true},
		{"deadline", context.DeadlineExceeded, true},
		{"cancellation", context.Canceled, true},
		{"transport url error", &url.Error{Op: "Post", URL: "http://x", Err: errors.New("connection refused")}, true},
		{"wrapped remote 422", errors.Join(errors.New("call failed"), &Error{StatusCode: 422}), false},
		{"untyped transient keyword", errors.New("tls handshake timeout"), true},
		{"untyped terminal", errors.New("json: unsupported type: func()"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Fatalf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
