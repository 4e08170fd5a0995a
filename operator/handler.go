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

package operator

import "sync"

// Handler scopes exception interception for one or more Operators. It is
// shared by reference so that a StreamController can wire its sender and
// receiver operators to the same exception path.
type Handler struct {
	mu sync.RWMutex

	// ExceptionHandler is invoked with the error returned by a tick's
	// operation, before ExceptionCallback.
	ExceptionHandler func(err error)

	// ExceptionCallback runs after ExceptionHandler, regardless of Catch.
	// StreamController leaves it as set by the caller; it does not add a
	// send-queue stop to it.
	ExceptionCallback func()

	// CleanupCallback runs once, when the operator's loop exits for any
	// reason (stopped, closed, or an uncaught error).
	CleanupCallback func()

	// Catch controls whether an error keeps the loop running (true) or
	// stops it (false). Defaults to false: a bare Handler{} stops on the
	// first error, matching a loop with no exception policy configured.
	Catch bool
}

// Handle runs the configured callbacks for err and reports whether the
// operator loop should keep running. A nil err is a no-op returning true;
// a nil Handler stops the loop on any error, like a bare Handler{}.
func (h *Handler) Handle(err error) (keepRunning bool) {
	if err == nil {
		return true
	}
	if h == nil {
		return false
	}

	h.mu.RLock()
	eh := h.ExceptionHandler
	ec := h.ExceptionCallback
	catch := h.Catch
	h.mu.RUnlock()

	if eh != nil {
		eh(err)
	}
	if ec != nil {
		ec()
	}
	return catch
}

// Cleanup runs the CleanupCallback, if any.
func (h *Handler) Cleanup() {
	if h == nil {
		return
	}
	h.mu.RLock()
	cc := h.CleanupCallback
	h.mu.RUnlock()
	if cc != nil {
		cc()
	}
}

// SetExceptionCallback replaces ExceptionCallback, returning the previous
// value so callers can chain it (see Then).
func (h *Handler) SetExceptionCallback(f func()) (previous func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	previous = h.ExceptionCallback
	h.ExceptionCallback = f
	return previous
}

// Then composes two nil-safe callbacks so that calling the result runs a
// then b, in order. Either argument may be nil.
func Then(a, b func()) func() {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func() {
		a()
		b()
	}
}
