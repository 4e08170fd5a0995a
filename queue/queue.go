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

// Package queue implements C6 SendQueue: a FIFO of pending outgoing
// messages drained by an operator.Operator tick loop.
package queue

import (
	"sync"

	"github.com/xtaci/streamsock/operator"
	"github.com/xtaci/streamsock/socket"
)

// item is one queued outgoing message. Addr is empty for a stream Send and
// set for a datagram SendTo.
type item struct {
	data []byte
	addr string
	to   bool
}

// SendQueue buffers outgoing messages and drains them one per operator
// tick, so a slow or bursty producer never blocks on the socket directly.
type SendQueue struct {
	socket *socket.Socket

	mu    sync.Mutex
	items []item

	op *operator.Operator
}

// New builds a SendQueue around socket, with its own Operator configured by
// opts. The Operator is not started; call Run to begin draining.
func New(sock *socket.Socket, opts ...operator.Option) *SendQueue {
	q := &SendQueue{socket: sock}
	q.op = operator.New(q.drainOne, opts...)
	return q
}

// Enqueue appends a stream message to be sent on the next tick.
func (q *SendQueue) Enqueue(data []byte) {
	q.mu.Lock()
	q.items = append(q.items, item{data: data})
	q.mu.Unlock()
}

// EnqueueTo appends a datagram message addressed to addr.
func (q *SendQueue) EnqueueTo(data []byte, addr string) {
	q.mu.Lock()
	q.items = append(q.items, item{data: data, addr: addr, to: true})
	q.mu.Unlock()
}

// Len reports how many messages are waiting to be sent.
func (q *SendQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *SendQueue) pop() (item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return item{}, false
	}
	next := q.items[0]
	q.items = q.items[1:]
	return next, true
}

// drainOne sends the oldest queued message, if any. A tick with nothing
// queued is a no-op, not an error.
func (q *SendQueue) drainOne() error {
	next, ok := q.pop()
	if !ok {
		return nil
	}
	var err error
	if next.to {
		_, err = q.socket.SendTo(next.data, next.addr)
	} else {
		_, err = q.socket.Send(next.data)
	}
	return err
}

// Flush drains every currently queued message synchronously, without
// waiting for the Operator's tick delay. Stopping or closing the
// Operator does not call it; messages still queued then are not sent.
func (q *SendQueue) Flush() error {
	for {
		next, ok := q.pop()
		if !ok {
			return nil
		}
		var err error
		if next.to {
			_, err = q.socket.SendTo(next.data, next.addr)
		} else {
			_, err = q.socket.Send(next.data)
		}
		if err != nil {
			return err
		}
	}
}

// Run starts the drain loop; block mirrors operator.Operator.Run.
func (q *SendQueue) Run(block bool) { q.op.Run(block) }

// Operator exposes the underlying Operator for pause/stop/close control.
func (q *SendQueue) Operator() *operator.Operator { return q.op }
