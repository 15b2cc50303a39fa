package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"
)

// Retry policy bounds. Retries is clamped into [0, MaxRetries] no matter
// what the caller asks for.
const (
	DefaultTimeout = 60 * time.Second
	DefaultRetries = 1
	MaxRetries     = 3

	backoffBase = 250 * time.Millisecond
)

// RetryPolicy bounds one remote invocation: a per-attempt timeout and the
// number of retries after the first attempt. The zero value is usable and
// takes the defaults.
type RetryPolicy struct {
	Timeout time.Duration
	Retries int
}

// DefaultRetryPolicy is the policy applied when the caller passes none.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Timeout: DefaultTimeout, Retries: DefaultRetries}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.Retries < 0 {
		p.Retries = 0
	}
	if p.Retries > MaxRetries {
		p.Retries = MaxRetries
	}
	return p
}

// SendJSONWithRetry is SendJSON wrapped in the bounded retry loop.
func (c *Client) SendJSONWithRetry(ctx context.Context, url string, body any, policy RetryPolicy) (json.RawMessage, error) {
	return c.doWithRetry(ctx, policy, func(ctx context.Context) (json.RawMessage, error) {
		return c.SendJSON(ctx, url, body)
	})
}

// SendMultipartWithRetry is SendMultipart wrapped in the bounded retry loop.
func (c *Client) SendMultipartWithRetry(ctx context.Context, url string, fields map[string]string, file *File, policy RetryPolicy) (json.RawMessage, error) {
	return c.doWithRetry(ctx, policy, func(ctx context.Context) (json.RawMessage, error) {
		return c.SendMultipart(ctx, url, fields, file)
	})
}

// doWithRetry runs attempt up to policy.Retries+1 times. Each attempt gets
// its own deadline; a caller deadline on ctx composes with it, whichever is
// shorter governing the attempt. Attempts are strictly sequential, with a
// linearly growing delay between them and none after the last.
func (c *Client) doWithRetry(ctx context.Context, policy RetryPolicy, attempt func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	policy = policy.normalized()
	attempts := policy.Retries + 1

	var lastErr error
	for i := 0; i < attempts; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, policy.Timeout)
		out, err := attempt(attemptCtx)
		cancel()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !Retryable(err) {
			return nil, err
		}
		if i == attempts-1 || ctx.Err() != nil {
			break
		}
		delay := time.Duration(i+1) * backoffBase
		if c.verbose {
			slog.Warn("gateway.retry", "attempt", i+1, "max_attempts", attempts, "delay", delay, "error", err)
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// Retryable classifies a failure. Remote rejections retry only on 5xx — a
// 4xx means the caller's input was refused and will not self-resolve.
// Timeouts, aborts and transport-level failures (anything that never carried
// an HTTP status) are transient. Classification prefers error types from the
// transport; the keyword match is a fallback for untyped errors only.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	var re *Error
	if errors.As(err, &re) {
		return re.StatusCode >= 500
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	return looksTransient(err)
}

func looksTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, kw := range []string{
		"timeout",
		"timed out",
		"connection refused",
		"connection reset",
		"no such host",
		"broken pipe",
		"socket",
		"unexpected eof",
	} {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
