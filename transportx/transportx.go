// Package transportx provides the net/http transport collaborator with
// retry, circuit breaker, and idempotency headers.
//
// Overview:
//   - Responsibility: Execute callx requests over HTTP with resilience
//   - Key Types: Transport implementing callx.Transport, Options
//   - Concurrency Model: A Transport is safe for concurrent submissions
//   - Error Semantics: Every submission gets exactly one terminal event;
//     descriptor problems surface as transport-failure events
//   - Performance Notes: One goroutine per in-flight submission
package transportx

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"go.eggybyte.com/outcall/callx"
	"go.eggybyte.com/outcall/core/log"
	"go.eggybyte.com/outcall/outcome"
	"go.eggybyte.com/outcall/transportx/internal"
)

// Options configures the transport behavior.
type Options struct {
	Client           *http.Client  // Pre-built client; overrides all resilience options
	Timeout          time.Duration // Request timeout (default: 30s)
	MaxRetries       int           // Maximum retry attempts (default: 3)
	RetryBackoff     time.Duration // Initial backoff duration (default: 100ms)
	EnableCircuit    bool          // Enable circuit breaker (default: true)
	CircuitThreshold uint32        // Circuit breaker failure threshold (default: 5)
	IdempotencyKey   string        // Idempotency key header name (empty disables injection)
	Logger           log.Logger    // Logger collaborator (default: no-op)
}

// Option is a functional option for configuring the transport.
type Option func(*Options)

// WithHTTPClient supplies a pre-built client, bypassing the built-in
// retry and circuit breaker stack.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.Client = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithRetry sets the maximum retry attempts.
func WithRetry(maxRetries int) Option {
	return func(o *Options) {
		o.MaxRetries = maxRetries
	}
}

// WithBackoff sets the initial retry backoff duration.
func WithBackoff(d time.Duration) Option {
	return func(o *Options) {
		o.RetryBackoff = d
	}
}

// WithCircuitBreaker enables or disables the circuit breaker.
func WithCircuitBreaker(enabled bool) Option {
	return func(o *Options) {
		o.EnableCircuit = enabled
	}
}

// WithCircuitThreshold sets the consecutive-failure threshold.
func WithCircuitThreshold(threshold uint32) Option {
	return func(o *Options) {
		o.CircuitThreshold = threshold
	}
}

// WithIdempotencyKey sets the idempotency key header name.
func WithIdempotencyKey(key string) Option {
	return func(o *Options) {
		o.IdempotencyKey = key
	}
}

// WithLogger sets the logger collaborator.
func WithLogger(logger log.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func defaultOptions() Options {
	return Options{
		Timeout:          30 * time.Second,
		MaxRetries:       3,
		RetryBackoff:     100 * time.Millisecond,
		EnableCircuit:    true,
		CircuitThreshold: 5,
		IdempotencyKey:   "X-Idempotency-Key",
		Logger:           log.Nop(),
	}
}

// NewHTTPClient builds the resilient HTTP client used by the transport:
// a retry round-tripper with exponential backoff, wrapped in a circuit
// breaker when enabled.
func NewHTTPClient(opts ...Option) *http.Client {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return newHTTPClient(options)
}

func newHTTPClient(options Options) *http.Client {
	if options.Client != nil {
		return options.Client
	}

	var cb *gobreaker.CircuitBreaker
	if options.EnableCircuit {
		cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "outcall-transport",
			MaxRequests: options.CircuitThreshold,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > options.CircuitThreshold
			},
		})
	}

	return &http.Client{
		Timeout:   options.Timeout,
		Transport: internal.NewRetryTransport(http.DefaultTransport, options.MaxRetries, options.RetryBackoff, cb),
	}
}

// Transport submits callx requests over HTTP. It implements
// callx.Transport: exactly one terminal event per submission, cancel
// handle safe concurrently with the terminal callback.
type Transport struct {
	client         *http.Client
	idempotencyKey string
	validate       *validator.Validate
	logger         log.Logger
}

// New creates a Transport.
func New(opts ...Option) *Transport {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = log.Nop()
	}

	return &Transport{
		client:         newHTTPClient(options),
		idempotencyKey: options.IdempotencyKey,
		validate:       validator.New(),
		logger:         options.Logger,
	}
}

// Submit implements callx.Transport. The request runs on its own
// goroutine; the returned handle cancels the per-call context.
func (t *Transport) Submit(req *callx.Request, onTerminal func(outcome.TransportEvent)) callx.CancelHandle {
	ctx, cancel := context.WithCancel(context.Background())
	handle := cancelHandle{cancel: cancel}

	if err := t.validate.Struct(req); err != nil {
		t.fail(onTerminal, fmt.Errorf("invalid request descriptor: %w", err))
		return handle
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		t.fail(onTerminal, fmt.Errorf("building request: %w", err))
		return handle
	}

	if req.Header != nil {
		httpReq.Header = req.Header.Clone()
	}
	if t.idempotencyKey != "" && httpReq.Header.Get(t.idempotencyKey) == "" {
		httpReq.Header.Set(t.idempotencyKey, uuid.NewString())
	}

	t.logger.Debug("submitting request",
		log.Str("method", req.Method),
		log.Str("url", req.URL),
	)

	go func() {
		resp, err := t.client.Do(httpReq)
		if err != nil {
			onTerminal(outcome.TransportEvent{Err: err})
			return
		}
		onTerminal(outcome.TransportEvent{Status: resp.StatusCode, Body: resp.Body})
	}()

	return handle
}

// fail delivers the one terminal event for a submission that never
// reached the wire. Delivery is asynchronous so Submit never invokes the
// callback re-entrantly.
func (t *Transport) fail(onTerminal func(outcome.TransportEvent), err error) {
	go onTerminal(outcome.TransportEvent{Err: err})
}

// cancelHandle aborts the per-call context. context cancel functions are
// idempotent and safe for concurrent use, which satisfies the
// callx.CancelHandle contract.
type cancelHandle struct {
	cancel context.CancelFunc
}

func (h cancelHandle) Cancel() {
	h.cancel()
}
