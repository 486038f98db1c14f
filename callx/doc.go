// Package callx provides the result-wrapping call adapter over a
// callback-driven transport.
//
// # Overview
//
// callx sits between application code and a Transport. Every terminal
// state of a submitted request — success, protocol error, transport
// failure, decode failure, cancellation — is returned as one uniform
// outcome.Outcome value; Execute never fails in any other way. Cancelling
// the calling context cancels the in-flight transport operation exactly
// once, race-free.
//
// # Features
//
//   - Execute with context-based cooperative cancellation
//   - ExecuteBlocking for plain synchronous callers
//   - Clone for fresh submission descriptors (calls are single-use)
//   - Injected OpenTelemetry metrics and structured logging collaborators
//
// # Usage
//
//	call := callx.New(transport, &callx.Request{
//		Method: http.MethodGet,
//		URL:    "https://api.example.com/users/1",
//	}, outcome.JSON[User]())
//
//	out := call.Execute(ctx)
//	if f := out.Failure(); f != nil {
//		switch f.Kind {
//		case outcome.KindProtocol:
//			// inspect f.Status, f.RawBody
//		case outcome.KindCancelled:
//			// caller abandoned the call
//		}
//		return
//	}
//	user := out.Payload()
//
// # Layer
//
// callx depends on outcome and core/log. transportx provides the default
// Transport implementation.
//
// # Stability
//
// Stable since v0.1.0. Minor versions may introduce backward-compatible
// improvements.
package callx
