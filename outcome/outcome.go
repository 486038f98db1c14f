// Package outcome defines the Outcome result type and its failure taxonomy.
//
// Overview:
//   - Responsibility: Represent every terminal call state as one value
//   - Key Types: Outcome[T] tagged result, Failure with a closed Kind set
//   - Concurrency Model: Outcome values are immutable and safe to share
//   - Error Semantics: Failure implements error for wrapping interop
//   - Performance Notes: Success values allocate nothing beyond the payload
package outcome

import "fmt"

// Kind classifies a call failure. The set is closed: any event that cannot
// be classified is KindTransport with a diagnostic message, never a fifth
// bucket.
type Kind string

const (
	// KindProtocol means the remote responded with a non-success status.
	KindProtocol Kind = "PROTOCOL"
	// KindDecode means a response was received but could not be parsed
	// into the expected payload type.
	KindDecode Kind = "DECODE"
	// KindTransport means an I/O or network failure before a usable
	// response was received.
	KindTransport Kind = "TRANSPORT"
	// KindCancelled means the caller abandoned the call. Cancellations
	// must never be retried or logged as errors.
	KindCancelled Kind = "CANCELLED"
)

// Retryable reports whether a failure of this kind may be worth retrying.
// Only transport failures qualify: protocol and decode failures are
// deterministic, and cancellations are caller-initiated.
func (k Kind) Retryable() bool {
	return k == KindTransport
}

// Failure describes why a call did not produce a payload.
type Failure struct {
	Kind    Kind   // Failure classification
	Msg     string // Human-readable message
	Status  int    // Protocol status code (0 when not applicable)
	RawBody []byte // Raw error body for protocol failures (nil otherwise)
	Err     error  // Underlying cause (may be nil)
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Msg, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Outcome is the uniform result of a call: either a decoded payload or a
// Failure. The zero Outcome is a Success carrying the zero payload.
type Outcome[T any] struct {
	payload T
	failure *Failure
}

// Success wraps a decoded payload.
func Success[T any](payload T) Outcome[T] {
	return Outcome[T]{payload: payload}
}

// Fail wraps a Failure. Passing nil is a programmer error.
func Fail[T any](f *Failure) Outcome[T] {
	if f == nil {
		panic("outcome: Fail called with nil failure")
	}
	return Outcome[T]{failure: f}
}

// Ok reports whether the outcome is a success.
func (o Outcome[T]) Ok() bool {
	return o.failure == nil
}

// Payload returns the decoded payload, or the zero value on failure.
func (o Outcome[T]) Payload() T {
	return o.payload
}

// Failure returns the failure, or nil on success.
func (o Outcome[T]) Failure() *Failure {
	return o.failure
}

// Unpack returns both variants at once for callers that prefer the
// two-value form.
func (o Outcome[T]) Unpack() (T, *Failure) {
	return o.payload, o.failure
}
