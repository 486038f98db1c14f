// Package outcome provides the uniform result model for transport calls.
//
// # Overview
//
// Every terminal state of a request — success, protocol-level error,
// transport failure, decode failure, cancellation — is represented by a
// single immutable Outcome value. Callers branch over the closed Kind set
// instead of distinguishing returned errors from thrown ones; there is no
// secondary success path to forget.
//
// # Features
//
//   - Two-variant Outcome[T]: Success with a decoded payload, or Failure
//   - Closed failure taxonomy: Protocol, Decode, Transport, Cancelled
//   - Pure Classify function turning a TransportEvent into an Outcome
//   - Full body draining before classification, so Outcome values carry
//     no open resources and can cross goroutine boundaries safely
//
// # Usage
//
//	out := outcome.Classify(ev, outcome.JSON[User]())
//	if f := out.Failure(); f != nil {
//		switch f.Kind {
//		case outcome.KindProtocol:
//			// remote answered with a non-success status
//		case outcome.KindCancelled:
//			// caller abandoned the call; never retry, never log as error
//		}
//	}
//
// # Stability
//
// Stable since v0.1.0. The Kind set is closed; new kinds will not be added
// in a minor version.
package outcome
