package outcome

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// TransportEvent is the one terminal notification a transport delivers for
// a submitted request. Either Err is non-nil (I/O failure, Status and Body
// are meaningless) or the remote answered with Status and an optional Body.
type TransportEvent struct {
	Status int
	Body   io.ReadCloser
	Err    error
}

// Close drains and closes the event body if present. Used for events that
// lost the completion race and must not leak the underlying stream.
func (ev TransportEvent) Close() {
	if ev.Body == nil {
		return
	}
	io.Copy(io.Discard, ev.Body)
	ev.Body.Close()
}

// DecodeFunc parses a fully-read response body into a payload.
type DecodeFunc[T any] func(data []byte) (T, error)

// JSON returns a DecodeFunc that unmarshals the body as JSON into T.
func JSON[T any]() DecodeFunc[T] {
	return func(data []byte) (T, error) {
		var v T
		err := json.Unmarshal(data, &v)
		return v, err
	}
}

type classifyOptions struct {
	accept       func(status int) bool
	cancelled    bool
	optionalBody bool
}

// ClassifyOption adjusts classification behavior.
type ClassifyOption func(*classifyOptions)

// WithAcceptStatus overrides the success-status predicate (default 200-299).
func WithAcceptStatus(accept func(status int) bool) ClassifyOption {
	return func(o *classifyOptions) {
		o.accept = accept
	}
}

// WithCancelled marks that the caller requested cancellation before the
// event arrived. Transport failures then classify as KindCancelled.
func WithCancelled(cancelled bool) ClassifyOption {
	return func(o *classifyOptions) {
		o.cancelled = cancelled
	}
}

// WithOptionalBody makes an empty accepted body decode to the zero payload
// instead of a KindDecode failure.
func WithOptionalBody() ClassifyOption {
	return func(o *classifyOptions) {
		o.optionalBody = true
	}
}

func defaultAccept(status int) bool {
	return status >= 200 && status <= 299
}

// Classify converts a terminal transport event into an Outcome. It is pure
// apart from fully draining and closing the event body: the body is always
// read to EOF before classification, even when unused, so the underlying
// stream is never partially consumed and the returned Outcome carries no
// open resources.
//
// A nil decode discards the body and yields the zero payload on success.
// Classify never panics for any event; a panicking decoder is reported as
// a KindDecode failure.
func Classify[T any](ev TransportEvent, decode DecodeFunc[T], opts ...ClassifyOption) Outcome[T] {
	options := classifyOptions{accept: defaultAccept}
	for _, opt := range opts {
		opt(&options)
	}
	if options.accept == nil {
		options.accept = defaultAccept
	}

	if ev.Err != nil {
		if options.cancelled || errors.Is(ev.Err, context.Canceled) {
			return Fail[T](&Failure{
				Kind: KindCancelled,
				Msg:  "call cancelled",
				Err:  ev.Err,
			})
		}
		return Fail[T](&Failure{
			Kind: KindTransport,
			Msg:  "transport failure",
			Err:  ev.Err,
		})
	}

	body, err := readAll(ev.Body)
	if err != nil {
		return Fail[T](&Failure{
			Kind: KindTransport,
			Msg:  "reading response body",
			Err:  err,
		})
	}

	if !options.accept(ev.Status) {
		return Fail[T](&Failure{
			Kind:    KindProtocol,
			Msg:     fmt.Sprintf("unexpected status %d", ev.Status),
			Status:  ev.Status,
			RawBody: body,
		})
	}

	if len(body) == 0 {
		if options.optionalBody || decode == nil {
			var zero T
			return Success(zero)
		}
		return Fail[T](&Failure{
			Kind:   KindDecode,
			Msg:    "empty body",
			Status: ev.Status,
		})
	}

	if decode == nil {
		var zero T
		return Success(zero)
	}

	payload, decodeErr := safeDecode(decode, body)
	if decodeErr != nil {
		return Fail[T](&Failure{
			Kind:   KindDecode,
			Msg:    "decoding response body",
			Status: ev.Status,
			Err:    decodeErr,
		})
	}

	return Success(payload)
}

// safeDecode runs the decoder, converting a decoder panic into an error so
// Classify keeps its never-panics guarantee.
func safeDecode[T any](decode DecodeFunc[T], body []byte) (payload T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoder panicked: %v", r)
		}
	}()
	return decode(body)
}

// readAll fully reads and closes the body. The body is closed even when the
// read fails; close errors on a fully-read stream are ignored.
func readAll(body io.ReadCloser) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := io.ReadAll(body)
	body.Close()
	if err != nil {
		return nil, err
	}
	return data, nil
}
