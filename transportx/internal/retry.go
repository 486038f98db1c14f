// Package internal provides internal implementation details for transportx.
package internal

import (
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sony/gobreaker"
)

// RetryTransport implements http.RoundTripper with retry logic and an
// optional circuit breaker. Transient failures (I/O errors and 5xx
// statuses) are retried with exponential backoff; 4xx responses are
// returned as-is.
type RetryTransport struct {
	base           http.RoundTripper
	maxRetries     int
	initialBackoff time.Duration
	cb             *gobreaker.CircuitBreaker
}

// NewRetryTransport creates a retry transport. A nil cb disables the
// circuit breaker.
func NewRetryTransport(base http.RoundTripper, maxRetries int, initialBackoff time.Duration, cb *gobreaker.CircuitBreaker) *RetryTransport {
	return &RetryTransport{
		base:           base,
		maxRetries:     maxRetries,
		initialBackoff: initialBackoff,
		cb:             cb,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.cb != nil {
		result, cbErr := t.cb.Execute(func() (interface{}, error) {
			return t.roundTripWithRetry(req)
		})
		if cbErr != nil {
			return nil, cbErr
		}
		return result.(*http.Response), nil
	}

	return t.roundTripWithRetry(req)
}

// roundTripWithRetry performs the request with retry logic. Backoff sleeps
// are interruptible by the request context so cancellation propagates
// without waiting out the delay.
func (t *RetryTransport) roundTripWithRetry(req *http.Request) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = t.initialBackoff

	var lastResp *http.Response
	var lastErr error

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		cloned := req.Clone(req.Context())
		if cloned.GetBody != nil {
			body, err := cloned.GetBody()
			if err != nil {
				return nil, err
			}
			cloned.Body = body
		}

		resp, err := t.base.RoundTrip(cloned)

		// Success or non-retryable response
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		lastResp = resp
		lastErr = err

		if attempt == t.maxRetries {
			break
		}

		// Close the discarded attempt's body to prevent a leak.
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(bo.NextBackOff()):
		}
	}

	return lastResp, lastErr
}
