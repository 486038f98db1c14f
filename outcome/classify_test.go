package outcome

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
)

// trackedBody records how much was read and how often it was closed.
// Close is idempotent, matching the contract expected of transport streams.
type trackedBody struct {
	reader *bytes.Reader
	closed atomic.Int32
}

func newTrackedBody(data string) *trackedBody {
	return &trackedBody{reader: bytes.NewReader([]byte(data))}
}

func (b *trackedBody) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

func (b *trackedBody) Close() error {
	b.closed.Add(1)
	return nil
}

func (b *trackedBody) drained() bool {
	return b.reader.Len() == 0
}

type payload struct {
	ID int `json:"id"`
}

func TestClassifySuccess(t *testing.T) {
	body := newTrackedBody(`{"id":1}`)
	out := Classify(TransportEvent{Status: 200, Body: body}, JSON[payload]())

	if !out.Ok() {
		t.Fatalf("Expected success, got %v", out.Failure())
	}

	if out.Payload().ID != 1 {
		t.Errorf("Expected payload id 1, got %d", out.Payload().ID)
	}

	if !body.drained() {
		t.Error("Body should be fully read")
	}

	if body.closed.Load() != 1 {
		t.Errorf("Body should be closed exactly once, got %d", body.closed.Load())
	}
}

func TestClassifyProtocolFailure(t *testing.T) {
	body := newTrackedBody(`{"error":"missing"}`)
	out := Classify(TransportEvent{Status: 404, Body: body}, JSON[payload]())

	f := out.Failure()
	if f == nil {
		t.Fatal("Expected failure for status 404")
	}

	if f.Kind != KindProtocol {
		t.Errorf("Expected KindProtocol, got %s", f.Kind)
	}

	if f.Status != 404 {
		t.Errorf("Expected status 404, got %d", f.Status)
	}

	if string(f.RawBody) != `{"error":"missing"}` {
		t.Errorf("Raw error body should be fully captured, got %q", f.RawBody)
	}

	if !body.drained() || body.closed.Load() != 1 {
		t.Error("Error body should be drained and closed before classification")
	}
}

func TestClassifyTransportFailure(t *testing.T) {
	out := Classify(TransportEvent{Err: errors.New("connection reset by peer")}, JSON[payload]())

	f := out.Failure()
	if f == nil || f.Kind != KindTransport {
		t.Fatalf("Expected KindTransport, got %v", f)
	}
}

func TestClassifyDecodeFailure(t *testing.T) {
	body := newTrackedBody(`{"id":`)
	out := Classify(TransportEvent{Status: 200, Body: body}, JSON[payload]())

	f := out.Failure()
	if f == nil || f.Kind != KindDecode {
		t.Fatalf("Expected KindDecode for malformed JSON, got %v", f)
	}

	if f.Err == nil {
		t.Error("Decode failure should carry the decoder error")
	}
}

func TestClassifyEmptyBody(t *testing.T) {
	out := Classify(TransportEvent{Status: 200, Body: newTrackedBody("")}, JSON[payload]())

	f := out.Failure()
	if f == nil || f.Kind != KindDecode {
		t.Fatalf("Expected KindDecode for empty required body, got %v", f)
	}

	if f.Msg != "empty body" {
		t.Errorf("Expected message %q, got %q", "empty body", f.Msg)
	}
}

func TestClassifyOptionalBody(t *testing.T) {
	out := Classify(TransportEvent{Status: 204, Body: newTrackedBody("")}, JSON[payload](), WithOptionalBody())

	if !out.Ok() {
		t.Fatalf("Optional empty body should succeed, got %v", out.Failure())
	}

	if out.Payload().ID != 0 {
		t.Error("Optional empty body should yield the zero payload")
	}
}

func TestClassifyNilDecodeDiscardsBody(t *testing.T) {
	body := newTrackedBody("ignored")
	out := Classify[struct{}](TransportEvent{Status: 200, Body: body}, nil)

	if !out.Ok() {
		t.Fatalf("Expected success, got %v", out.Failure())
	}

	if !body.drained() || body.closed.Load() != 1 {
		t.Error("Body should be drained and closed even when the payload is discarded")
	}
}

func TestClassifyNilBody(t *testing.T) {
	out := Classify(TransportEvent{Status: 200}, JSON[payload](), WithOptionalBody())
	if !out.Ok() {
		t.Fatalf("Nil body with optional payload should succeed, got %v", out.Failure())
	}
}

func TestClassifyCancelledByFlag(t *testing.T) {
	out := Classify(TransportEvent{Err: errors.New("request aborted")}, JSON[payload](), WithCancelled(true))

	f := out.Failure()
	if f == nil || f.Kind != KindCancelled {
		t.Fatalf("Expected KindCancelled when the flag is set, got %v", f)
	}
}

func TestClassifyCancelledByContextError(t *testing.T) {
	out := Classify(TransportEvent{Err: context.Canceled}, JSON[payload]())

	f := out.Failure()
	if f == nil || f.Kind != KindCancelled {
		t.Fatalf("Expected KindCancelled for context.Canceled, got %v", f)
	}
}

func TestClassifyCustomAcceptStatus(t *testing.T) {
	accept := func(status int) bool { return status == 404 }
	out := Classify(TransportEvent{Status: 404, Body: newTrackedBody(`{"id":7}`)}, JSON[payload](), WithAcceptStatus(accept))

	if !out.Ok() {
		t.Fatalf("Status 404 should be accepted by the custom predicate, got %v", out.Failure())
	}

	if out.Payload().ID != 7 {
		t.Errorf("Expected payload id 7, got %d", out.Payload().ID)
	}
}

func TestClassifyBodyReadError(t *testing.T) {
	body := readCloser{io.MultiReader(strings.NewReader("{"), errReader{})}
	out := Classify(TransportEvent{Status: 200, Body: body}, JSON[payload]())

	f := out.Failure()
	if f == nil || f.Kind != KindTransport {
		t.Fatalf("Body read failure should classify as KindTransport, got %v", f)
	}
}

func TestClassifyDecoderPanic(t *testing.T) {
	decode := func(data []byte) (payload, error) {
		panic("broken decoder")
	}
	out := Classify(TransportEvent{Status: 200, Body: newTrackedBody("x")}, decode)

	f := out.Failure()
	if f == nil || f.Kind != KindDecode {
		t.Fatalf("Panicking decoder should classify as KindDecode, got %v", f)
	}
}

func TestTransportEventClose(t *testing.T) {
	body := newTrackedBody("late event")
	ev := TransportEvent{Status: 200, Body: body}
	ev.Close()

	if !body.drained() || body.closed.Load() != 1 {
		t.Error("Close should drain and close the body")
	}

	// A second Close must be safe.
	ev.Close()
}

type errReader struct{}

func (errReader) Read(p []byte) (int, error) {
	return 0, errors.New("stream interrupted")
}

type readCloser struct {
	io.Reader
}

func (readCloser) Close() error { return nil }
