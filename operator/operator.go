// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package operator implements the loop-scheduler capability that spec.md
// treats as an external collaborator: a function ticked at a bounded
// minimum delay, pausable, stoppable, and closeable. Nothing in the
// example pack ships a reusable version of this, so it is grounded on the
// teacher's own hand-rolled tick loops (client/main.go's scavenger,
// std.SnmpLogger), both of which sleep between iterations rather than
// relying on a fixed-rate ticker.
package operator

import (
	"sync"
	"sync/atomic"
	"time"
)

// MinDelay lower-bounds every operator's tick interval.
const MinDelay = 10 * time.Microsecond

// State is the lifecycle of an Operator.
type State int32

const (
	Created State = iota
	Running
	Paused
	Stopped
	Closed
)

// Operator ticks operation at a configurable delay until stopped or
// closed. Run starts the loop from the Created state, and starts it again
// from the Stopped state; a Closed Operator does not run again.
type Operator struct {
	operation func() error

	mu          sync.RWMutex
	handler     *Handler
	termination func()
	delay       time.Duration
	deadline    time.Time // zero means no timeout

	state   int32 // atomic State
	paused  int32 // atomic bool
	stopCh  chan struct{}
	stopped sync.Once
	done    chan struct{}
}

// New builds an Operator around operation. A nil operation is treated as
// a no-op tick (useful for a sender/receiver that starts disabled).
func New(operation func() error, opts ...Option) *Operator {
	if operation == nil {
		operation = func() error { return nil }
	}
	o := &Operator{
		operation: operation,
		delay:     MinDelay,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	atomic.StoreInt32(&o.state, int32(Created))
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures an Operator at construction time.
type Option func(*Operator)

// WithHandler attaches the exception handler shared across operators.
func WithHandler(h *Handler) Option {
	return func(o *Operator) { o.handler = h }
}

// WithDelay sets the initial tick delay, lower-bounded at MinDelay.
func WithDelay(d time.Duration) Option {
	return func(o *Operator) { o.delay = clampDelay(d) }
}

// WithTermination sets the callback invoked once the loop exits.
func WithTermination(f func()) Option {
	return func(o *Operator) { o.termination = f }
}

func clampDelay(d time.Duration) time.Duration {
	if d < MinDelay {
		return MinDelay
	}
	return d
}

// State returns the operator's current lifecycle state.
func (o *Operator) State() State {
	return State(atomic.LoadInt32(&o.state))
}

// Delay returns the current tick delay.
func (o *Operator) Delay() time.Duration {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.delay
}

// SetDelay changes the tick delay, lower-bounded at MinDelay. Takes effect
// on the next sleep.
func (o *Operator) SetDelay(d time.Duration) {
	o.mu.Lock()
	o.delay = clampDelay(d)
	o.mu.Unlock()
}

// SetHandler replaces the exception handler.
func (o *Operator) SetHandler(h *Handler) {
	o.mu.Lock()
	o.handler = h
	o.mu.Unlock()
}

// SetTermination replaces the termination callback, returning the
// previous one so callers can chain with Then.
func (o *Operator) SetTermination(f func()) (previous func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	previous = o.termination
	o.termination = f
	return previous
}

// SetTimeout arms an absolute deadline after which the loop transitions to
// Stopped. A zero Time disarms the timeout.
func (o *Operator) SetTimeout(deadline time.Time) {
	o.mu.Lock()
	o.deadline = deadline
	o.mu.Unlock()
}

// SetRelativeTimeout is a convenience for SetTimeout(time.Now().Add(d)).
func (o *Operator) SetRelativeTimeout(d time.Duration) {
	o.SetTimeout(time.Now().Add(d))
}

// Run starts the tick loop. If block is true, Run does not return until
// the loop stops; otherwise it starts a goroutine and returns immediately.
// Calling Run on an already-running Operator is a no-op.
func (o *Operator) Run(block bool) {
	if !atomic.CompareAndSwapInt32(&o.state, int32(Created), int32(Running)) {
		if o.State() == Stopped {
			// allow a fresh run from Stopped, mirroring the teacher's
			// reconnect-and-retry loops rather than refusing outright.
			if !atomic.CompareAndSwapInt32(&o.state, int32(Stopped), int32(Running)) {
				return
			}
			o.stopCh = make(chan struct{})
			o.stopped = sync.Once{}
			o.done = make(chan struct{})
		} else {
			return
		}
	}

	if block {
		o.loop()
		return
	}
	go o.loop()
}

func (o *Operator) loop() {
	defer close(o.done)
	defer o.cleanup()

	for {
		select {
		case <-o.stopCh:
			return
		default:
		}

		o.mu.RLock()
		deadline := o.deadline
		o.mu.RUnlock()
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			o.transitionStopped()
			return
		}

		if atomic.LoadInt32(&o.paused) == 1 {
			time.Sleep(o.Delay())
			continue
		}

		err := o.operation()

		o.mu.RLock()
		h := o.handler
		o.mu.RUnlock()
		if !h.Handle(err) {
			o.transitionStopped()
			return
		}

		time.Sleep(o.Delay())
	}
}

func (o *Operator) cleanup() {
	o.mu.RLock()
	term := o.termination
	h := o.handler
	o.mu.RUnlock()
	if term != nil {
		term()
	}
	h.Cleanup()
}

func (o *Operator) transitionStopped() {
	atomic.StoreInt32(&o.state, int32(Stopped))
}

// Pause suspends ticking without exiting the loop.
func (o *Operator) Pause() {
	atomic.StoreInt32(&o.paused, 1)
	if o.State() == Running {
		atomic.StoreInt32(&o.state, int32(Paused))
	}
}

// Unpause resumes ticking.
func (o *Operator) Unpause() {
	atomic.StoreInt32(&o.paused, 0)
	if o.State() == Paused {
		atomic.StoreInt32(&o.state, int32(Running))
	}
}

// Stop halts the loop; it observes the signal on the next tick boundary,
// there is no forced interruption of an in-progress operation call.
func (o *Operator) Stop() {
	o.stopped.Do(func() {
		close(o.stopCh)
	})
	atomic.StoreInt32(&o.state, int32(Stopped))
}

// Close stops the loop and waits for it to exit. Closing an Operator that
// never ran runs its termination and cleanup callbacks directly.
func (o *Operator) Close() {
	if atomic.CompareAndSwapInt32(&o.state, int32(Created), int32(Closed)) {
		o.stopped.Do(func() { close(o.stopCh) })
		o.cleanup()
		close(o.done)
		return
	}
	o.Stop()
	<-o.done
	atomic.StoreInt32(&o.state, int32(Closed))
}

// Done returns a channel closed once the loop has exited.
func (o *Operator) Done() <-chan struct{} {
	return o.done
}
