// Package bridge provides the cancellation-propagating completion slot that
// backs callx waits.
//
// A PendingCall converts one callback-driven transport operation into one
// wait point. The terminal callback and the waiter's cancellation race for
// a single-writer slot; whichever claims it first resolves the call, the
// loser becomes a no-op.
package bridge

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.eggybyte.com/outcall/core/log"
	"go.eggybyte.com/outcall/outcome"
)

// Completion slot states. Pending transitions to Resolving (terminal
// callback claimed) or Cancelling (waiter cancellation claimed); both end
// in Resolved. The claim CAS serializes the race.
const (
	statePending uint32 = iota
	stateResolving
	stateCancelling
	stateResolved
)

// PendingCall represents one in-flight request. The completion slot is
// written exactly once, by the transport's terminal callback or by the
// cancellation path. A PendingCall owns the transport cancel function and
// the slot, nothing else; it is destroyed by garbage collection once the
// waiter consumes the slot.
type PendingCall struct {
	state           atomic.Uint32
	cancel          atomic.Pointer[func()]
	cancelRequested atomic.Bool
	done            chan struct{}
	ev              outcome.TransportEvent
	logger          log.Logger
}

// New creates a PendingCall in the Pending state. A nil logger defaults to
// the no-op logger.
func New(logger log.Logger) *PendingCall {
	if logger == nil {
		logger = log.Nop()
	}
	return &PendingCall{
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Bind registers the transport cancel function. It must be called once the
// submission returns, before any wait, so that cancellation propagation is
// registered ahead of the suspension point. If the call already resolved
// (the terminal callback beat the submitter back), the function is
// released immediately and never invoked.
func (p *PendingCall) Bind(cancel func()) {
	if cancel == nil {
		return
	}
	p.cancel.Store(&cancel)
	if p.state.Load() == stateResolved {
		p.cancel.Store(nil)
	}
}

// Complete delivers the terminal transport event. It reports whether the
// event was accepted: false means the slot was already claimed (the waiter
// cancelled first) and the event must be discarded by the caller. Safe to
// call from any goroutine, concurrently with Cancel.
func (p *PendingCall) Complete(ev outcome.TransportEvent) bool {
	if !p.state.CompareAndSwap(statePending, stateResolving) {
		return false
	}
	p.ev = ev
	p.state.Store(stateResolved)
	p.cancel.Store(nil)
	close(p.done)
	return true
}

// Cancel runs the cancellation path: it claims the slot, marks the call as
// cancel-requested, invokes the transport cancel function exactly once,
// and resolves the slot with a cancellation event. It reports whether
// cancellation won the claim: false means the terminal callback already
// resolved the call and cancelling is meaningless, so nothing happens.
func (p *PendingCall) Cancel() bool {
	if !p.state.CompareAndSwap(statePending, stateCancelling) {
		return false
	}
	// The flag must be visible before the transport is poked, so a
	// cancellation-induced I/O error can never classify as a plain
	// transport failure.
	p.cancelRequested.Store(true)
	p.invokeCancel()
	p.ev = outcome.TransportEvent{Err: context.Canceled}
	p.state.Store(stateResolved)
	close(p.done)
	return true
}

// invokeCancel releases and invokes the cancel function. Cancellation must
// never fail louder than the call it abandons, so a panicking handle is
// swallowed and logged.
func (p *PendingCall) invokeCancel() {
	fn := p.cancel.Swap(nil)
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("transport cancel handle panicked", log.Str("panic", fmt.Sprint(r)))
		}
	}()
	(*fn)()
}

// Wait suspends the caller until the slot resolves. Cancelling ctx runs
// the Cancel path; if the terminal callback wins that race the genuine
// event is returned, not a synthetic cancellation. The second return value
// reports whether cancellation was requested, for classification.
//
// Wait holds no locks across the suspension point. It does not impose a
// timeout: composing a deadline is the caller's responsibility, via ctx.
func (p *PendingCall) Wait(ctx context.Context) (outcome.TransportEvent, bool) {
	select {
	case <-p.done:
	case <-ctx.Done():
		p.Cancel()
		<-p.done
	}
	return p.ev, p.cancelRequested.Load()
}

// WaitBlocking parks the calling goroutine until the slot resolves. There
// is no cancellation path; an uncompleted call blocks forever.
func (p *PendingCall) WaitBlocking() outcome.TransportEvent {
	<-p.done
	return p.ev
}

// CancelRequested reports whether the cancellation path claimed this call.
func (p *PendingCall) CancelRequested() bool {
	return p.cancelRequested.Load()
}

// Resolved reports whether the completion slot has been written.
func (p *PendingCall) Resolved() bool {
	return p.state.Load() == stateResolved
}
