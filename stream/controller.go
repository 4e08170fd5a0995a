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

// Package stream implements C8-C10: StreamController, Streamer,
// SubscriptionStreamer and the client/server subscriber pair that ride on
// top of a socket.Socket, a queue.SendQueue and a store.DataStore.
package stream

import (
	"sync/atomic"

	"github.com/xtaci/streamsock/operator"
	"github.com/xtaci/streamsock/queue"
	"github.com/xtaci/streamsock/socket"
)

// TickFunc is one operator tick's worth of work for a StreamController's
// sender or receiver side.
type TickFunc func(ctrl *StreamController) error

// StreamController owns three cooperating operators over one Socket: a
// receiver (reads and dispatches inbound frames), a sender (produces
// outbound frames, gated by Authenticated), and the SendQueue's own drain
// loop (the only one that actually touches the wire on the way out). All
// three share one operator.Handler so an unrecoverable error on any of
// them can be routed through a single exception policy.
type StreamController struct {
	Socket *socket.Socket
	Queue  *queue.SendQueue

	sender   *operator.Operator
	receiver *operator.Operator
	handler  *operator.Handler

	authenticated int32 // atomic bool
}

// NewStreamController builds a controller around sock. Either tick may be
// nil for a no-op side (a ClientSubscriber, for instance, has no periodic
// sender tick of its own; it enqueues on demand instead). onError is
// called from the shared Handler whenever any of the three loops' work
// fails; returning false stops the whole controller.
func NewStreamController(sock *socket.Socket, sender, receiver TickFunc, onError func(err error) (keepRunning bool)) *StreamController {
	c := &StreamController{Socket: sock}

	// Catch defaults to true: a single failed tick shouldn't tear the
	// whole controller down. onError deciding to stop calls c.Stop
	// directly rather than mutating Catch after Run has started, since
	// Handler's fields aren't safe to write concurrently with a running
	// loop.
	c.handler = &operator.Handler{Catch: true}
	if onError != nil {
		c.handler.ExceptionHandler = func(err error) {
			if !onError(err) {
				c.Stop()
			}
		}
	}

	c.Queue = queue.New(sock, operator.WithHandler(c.handler))

	if receiver != nil {
		c.receiver = operator.New(func() error { return receiver(c) }, operator.WithHandler(c.handler))
	} else {
		c.receiver = operator.New(nil, operator.WithHandler(c.handler))
	}

	if sender != nil {
		c.sender = operator.New(func() error { return sender(c) }, operator.WithHandler(c.handler))
	} else {
		c.sender = operator.New(nil, operator.WithHandler(c.handler))
	}

	// The queue's drain loop is the one that actually writes to the wire;
	// if it terminates on its own (timeout, an unrecoverable send error the
	// Handler decides not to retry) the rest of the controller must not be
	// left dangling.
	c.Queue.Operator().SetTermination(func() {
		c.sender.Stop()
		c.receiver.Stop()
		_ = c.Socket.Close()
	})

	return c
}

// Authenticated reports whether Authenticate has been called.
func (c *StreamController) Authenticated() bool {
	return atomic.LoadInt32(&c.authenticated) == 1
}

// Authenticate marks this controller's connection as authenticated.
func (c *StreamController) Authenticate() {
	atomic.StoreInt32(&c.authenticated, 1)
}

// Run starts the receiver, then the sender, both non-blocking, then runs
// the send queue's drain loop, blocking iff block. This ordering
// guarantees the receive side can observe inbound bytes before any
// enqueued initial response is written.
func (c *StreamController) Run(block bool) {
	c.receiver.Run(false)
	c.sender.Run(false)
	c.Queue.Run(block)
}

// PauseSender suspends only the sender operator, leaving the receiver (and
// so the ability to process an incoming "unpause") running. This is what
// the pause/unpause default endpoints drive.
func (c *StreamController) PauseSender()   { c.sender.Pause() }
func (c *StreamController) UnpauseSender() { c.sender.Unpause() }

// Pause suspends sender, receiver, and the queue drain, in that order.
func (c *StreamController) Pause() {
	c.sender.Pause()
	c.receiver.Pause()
	c.Queue.Operator().Pause()
}

// Unpause resumes the queue drain, then the receiver, then the sender: the
// inverse of Pause, so queued responses drain before new input can arrive
// and the sender only resumes once both are ready.
func (c *StreamController) Unpause() {
	c.Queue.Operator().Unpause()
	c.receiver.Unpause()
	c.sender.Unpause()
}

// Stop halts all three loops without closing the Socket.
func (c *StreamController) Stop() {
	c.sender.Stop()
	c.receiver.Stop()
	c.Queue.Operator().Stop()
}

// Close halts all three loops, waits for them to exit, and closes the
// Socket.
func (c *StreamController) Close() error {
	c.sender.Close()
	c.receiver.Close()
	c.Queue.Operator().Close()
	return c.Socket.Close()
}

// SetTermination augments every loop's termination callback with f,
// running whatever was previously set first (see operator.Then).
func (c *StreamController) SetTermination(f func()) {
	chain := func(op *operator.Operator) {
		prev := op.SetTermination(f)
		op.SetTermination(operator.Then(prev, f))
	}
	chain(c.sender)
	chain(c.receiver)
	chain(c.Queue.Operator())
}
