// Package transportx provides the default HTTP transport collaborator for
// callx.
//
// # Overview
//
// transportx turns a callx.Request into a net/http request executed on its
// own goroutine, and guarantees exactly one terminal event per submission.
// The returned cancel handle aborts the per-call context: idempotent,
// thread-safe, and safe to invoke concurrently with the terminal callback.
//
// Resilience concerns that the call layer deliberately does not own live
// here: exponential backoff retries for transient 5xx errors and I/O
// failures, an optional circuit breaker, and idempotency key injection.
//
// # Features
//
//   - Exponential backoff retries for transient 5xx errors
//   - Optional circuit breaker to prevent cascade failures
//   - Request timeouts and idempotency key injection
//   - Request descriptor validation before submission
//   - Environment-based configuration via configx
//
// # Usage
//
//	transport := transportx.New(
//		transportx.WithTimeout(5*time.Second),
//		transportx.WithRetry(3),
//		transportx.WithCircuitBreaker(true),
//	)
//	call := callx.New(transport, req, outcome.JSON[User]())
//
// # Layer
//
// transportx implements callx.Transport and depends on outcome, core/log,
// and configx.
//
// # Stability
//
// Stable since v0.1.0. Minor versions may introduce backward-compatible
// improvements.
package transportx
