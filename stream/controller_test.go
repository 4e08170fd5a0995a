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

package stream

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/xtaci/streamsock/operator"
	"github.com/xtaci/streamsock/socket"
)

// discardConn is a RawSocket that accepts every Send and returns empty
// Receives, enough to drive a StreamController's three loops without any
// real networking.
type discardConn struct{}

func (discardConn) Connect(addr string) error { return nil }
func (discardConn) Bind(addr string) error     { return nil }
func (discardConn) Listen() error              { return nil }
func (discardConn) Accept() (socket.RawSocket, string, error) {
	return nil, "", socket.ErrUnsupported
}
func (discardConn) Send(data []byte) (int, error)          { return len(data), nil }
func (discardConn) SendTo(data []byte, addr string) (int, error) { return len(data), nil }
func (discardConn) Recv(n int) ([]byte, error)              { return nil, nil }
func (discardConn) RecvFrom(n int) ([]byte, string, error)  { return nil, "", nil }
func (discardConn) Close() error                            { return nil }
func (discardConn) Stream() bool                            { return true }
func (discardConn) Family() socket.Family                   { return socket.FamilyTCP }
func (discardConn) LocalAddr() string                       { return "" }

type discardProtocol struct{}

func (discardProtocol) Socket() (socket.RawSocket, error) { return discardConn{}, nil }
func (discardProtocol) Send(conn socket.RawSocket, data []byte) (int, error) {
	return conn.Send(data)
}
func (discardProtocol) SendTo(conn socket.RawSocket, data []byte, addr string) (int, error) {
	return conn.SendTo(data, addr)
}
func (discardProtocol) Receive(conn socket.RawSocket) ([]byte, error) { return conn.Recv(0) }
func (discardProtocol) ReceiveFrom(conn socket.RawSocket) ([]byte, string, error) {
	return conn.RecvFrom(0)
}
func (discardProtocol) Accept(conn socket.RawSocket) (socket.RawSocket, string, error) {
	return conn.Accept()
}

func newTestSocket() *socket.Socket {
	return socket.NewSocket(discardProtocol{}, true, socket.Hooks{})
}

func waitForCond(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestControllerAuthenticateIsFalseUntilCalled(t *testing.T) {
	ctrl := NewStreamController(newTestSocket(), nil, nil, nil)
	if ctrl.Authenticated() {
		t.Fatal("freshly built controller should not be authenticated")
	}
	ctrl.Authenticate()
	if !ctrl.Authenticated() {
		t.Fatal("Authenticate() should mark the controller authenticated")
	}
}

func TestControllerRunTicksSenderAndReceiver(t *testing.T) {
	var senderTicks, receiverTicks int32
	sender := func(*StreamController) error {
		atomic.AddInt32(&senderTicks, 1)
		return nil
	}
	receiver := func(*StreamController) error {
		atomic.AddInt32(&receiverTicks, 1)
		return nil
	}
	ctrl := NewStreamController(newTestSocket(), sender, receiver, nil)
	ctrl.Run(false)

	waitForCond(t, func() bool {
		return atomic.LoadInt32(&senderTicks) >= 2 && atomic.LoadInt32(&receiverTicks) >= 2
	})
	ctrl.Close()
}

func TestControllerPauseSenderLeavesReceiverRunning(t *testing.T) {
	var senderTicks, receiverTicks int32
	sender := func(*StreamController) error {
		atomic.AddInt32(&senderTicks, 1)
		return nil
	}
	receiver := func(*StreamController) error {
		atomic.AddInt32(&receiverTicks, 1)
		return nil
	}
	ctrl := NewStreamController(newTestSocket(), sender, receiver, nil)
	ctrl.Run(false)
	waitForCond(t, func() bool { return atomic.LoadInt32(&receiverTicks) >= 1 })

	ctrl.PauseSender()
	frozen := atomic.LoadInt32(&senderTicks)
	recvFrozen := atomic.LoadInt32(&receiverTicks)
	time.Sleep(20 * time.Millisecond)
	if atomic.LoadInt32(&senderTicks) != frozen {
		t.Fatal("sender kept ticking after PauseSender")
	}
	waitForCond(t, func() bool { return atomic.LoadInt32(&receiverTicks) > recvFrozen })

	ctrl.UnpauseSender()
	waitForCond(t, func() bool { return atomic.LoadInt32(&senderTicks) > frozen })
	ctrl.Close()
}

func TestControllerOnErrorFalseStopsController(t *testing.T) {
	sender := func(*StreamController) error { return nil }
	receiver := func(*StreamController) error {
		return errUnrecoverable
	}
	onError := func(err error) bool { return false }

	ctrl := NewStreamController(newTestSocket(), sender, receiver, onError)
	ctrl.Run(false)
	waitForCond(t, func() bool { return ctrl.receiver.State() == operator.Stopped })
}

func TestControllerSetTerminationRunsOnClose(t *testing.T) {
	var ran int32
	ctrl := NewStreamController(newTestSocket(), nil, nil, nil)
	ctrl.SetTermination(func() { atomic.AddInt32(&ran, 1) })

	ctrl.Close()
	// sender, receiver, and the queue's drain loop each carry the
	// termination callback, so it fires once per loop.
	if atomic.LoadInt32(&ran) != 3 {
		t.Fatalf("termination ran %d times, want 3 (once per loop)", ran)
	}
}

var errUnrecoverable = &testError{"unrecoverable"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
