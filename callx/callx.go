// Package callx provides the result-wrapping call adapter.
//
// Overview:
//   - Responsibility: Drive one request through a Transport and classify
//     every terminal event into an outcome.Outcome
//   - Key Types: Call for one submission, Transport and CancelHandle contracts
//   - Concurrency Model: Terminal callbacks may arrive on any goroutine;
//     the internal bridge serializes completion and cancellation
//   - Error Semantics: Runtime failures become Outcome values; only
//     programmer errors (double execution) panic
//   - Performance Notes: One submission, one body read, one allocation-light
//     wait per call
package callx

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"go.eggybyte.com/outcall/callx/internal/bridge"
	"go.eggybyte.com/outcall/core/log"
	"go.eggybyte.com/outcall/outcome"
)

// CancelHandle requests best-effort abortion of an in-flight transport
// operation. Implementations must be idempotent, thread-safe, non-blocking,
// and safe to invoke concurrently with the terminal callback.
type CancelHandle interface {
	Cancel()
}

// Transport submits requests and reports exactly one terminal event per
// submission, from any goroutine. The returned handle must satisfy the
// CancelHandle contract.
type Transport interface {
	Submit(req *Request, onTerminal func(outcome.TransportEvent)) CancelHandle
}

// Request is a transport submission descriptor. The body is pre-buffered
// so descriptors can be cloned for retry; a descriptor handed to Submit is
// single-use.
type Request struct {
	Method string      `validate:"required"`
	URL    string      `validate:"required,url"`
	Header http.Header `validate:"-"`
	Body   []byte      `validate:"-"`
}

// Clone returns a deep, independent copy of the descriptor.
func (r *Request) Clone() *Request {
	out := &Request{
		Method: r.Method,
		URL:    r.URL,
	}
	if r.Header != nil {
		out.Header = r.Header.Clone()
	}
	if r.Body != nil {
		out.Body = make([]byte, len(r.Body))
		copy(out.Body, r.Body)
	}
	return out
}

// Options configures a Call.
type Options struct {
	Accept       func(status int) bool // Success-status predicate (default 200-299)
	OptionalBody bool                  // Empty accepted bodies decode to the zero payload
	Logger       log.Logger            // Logger collaborator (default: no-op)
	Metrics      *MetricsCollector     // Metrics collaborator (nil disables)
	Name         string                // Call name for metrics attributes
}

// Option is a functional option for configuring a Call.
type Option func(*Options)

// WithAcceptStatus overrides the success-status predicate.
func WithAcceptStatus(accept func(status int) bool) Option {
	return func(o *Options) {
		o.Accept = accept
	}
}

// WithOptionalBody allows empty accepted bodies.
func WithOptionalBody() Option {
	return func(o *Options) {
		o.OptionalBody = true
	}
}

// WithLogger sets the logger collaborator.
func WithLogger(logger log.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMetrics sets the metrics collaborator.
func WithMetrics(collector *MetricsCollector) Option {
	return func(o *Options) {
		o.Metrics = collector
	}
}

// WithName sets the call name used in metrics attributes.
func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

// Call drives one typed request through a Transport. A Call is single-use:
// executing it twice is a programmer error and panics; Clone produces a
// fresh submission from the same logical request.
type Call[T any] struct {
	transport Transport
	req       *Request
	decode    outcome.DecodeFunc[T]
	options   Options
	executed  atomic.Bool
	start     time.Time
}

// New creates a Call for the given request. A nil decode discards the
// response body and yields the zero payload on success.
func New[T any](transport Transport, req *Request, decode outcome.DecodeFunc[T], opts ...Option) *Call[T] {
	if transport == nil {
		panic("callx: New called with nil transport")
	}
	if req == nil {
		panic("callx: New called with nil request")
	}

	options := Options{
		Logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = log.Nop()
	}

	return &Call[T]{
		transport: transport,
		req:       req,
		decode:    decode,
		options:   options,
	}
}

// Execute submits the request and suspends cooperatively until the
// terminal event arrives, then classifies it. Cancelling ctx cancels the
// underlying transport operation exactly once; the returned outcome is
// then a KindCancelled failure. Execute itself imposes no timeout: compose
// one via context.WithTimeout on ctx.
func (c *Call[T]) Execute(ctx context.Context) outcome.Outcome[T] {
	p := c.submit()
	ev, cancelled := p.Wait(ctx)
	return c.classify(ctx, ev, cancelled)
}

// ExecuteBlocking submits the request and parks the calling goroutine
// until the terminal event arrives. There is no cancellation path; a
// transport that never calls back blocks forever.
func (c *Call[T]) ExecuteBlocking() outcome.Outcome[T] {
	p := c.submit()
	ev := p.WaitBlocking()
	return c.classify(context.Background(), ev, false)
}

// Clone returns a fresh, executable Call from the same logical request.
// The receiver stays spent if it was already executed.
func (c *Call[T]) Clone() *Call[T] {
	return &Call[T]{
		transport: c.transport,
		req:       c.req.Clone(),
		decode:    c.decode,
		options:   c.options,
	}
}

// submit marks the call spent, submits it, and binds the cancel handle to
// the bridge before any wait, so cancellation propagation is registered
// ahead of the suspension point.
func (c *Call[T]) submit() *bridge.PendingCall {
	if !c.executed.CompareAndSwap(false, true) {
		panic("callx: Call executed twice; use Clone for a fresh submission")
	}

	c.start = time.Now()
	p := bridge.New(c.options.Logger)
	handle := c.transport.Submit(c.req, func(ev outcome.TransportEvent) {
		if !p.Complete(ev) {
			// Lost the race against cancellation: the event is never
			// delivered, but its stream must not leak.
			ev.Close()
		}
	})
	if handle != nil {
		p.Bind(handle.Cancel)
	}
	return p
}

// classify turns the terminal event into an Outcome and reports it to the
// injected collaborators.
func (c *Call[T]) classify(ctx context.Context, ev outcome.TransportEvent, cancelled bool) outcome.Outcome[T] {
	copts := []outcome.ClassifyOption{outcome.WithCancelled(cancelled)}
	if c.options.Accept != nil {
		copts = append(copts, outcome.WithAcceptStatus(c.options.Accept))
	}
	if c.options.OptionalBody {
		copts = append(copts, outcome.WithOptionalBody())
	}

	out := outcome.Classify(ev, c.decode, copts...)

	elapsed := time.Since(c.start)
	kind := "ok"
	if f := out.Failure(); f != nil {
		kind = string(f.Kind)
	}
	c.options.Metrics.RecordCall(ctx, c.options.Name, kind, elapsed)
	c.options.Logger.Debug("call finished",
		log.Str("call", c.options.Name),
		log.Str("outcome", kind),
		log.Dur("elapsed", elapsed),
	)
	return out
}
