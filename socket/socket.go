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

package socket

import (
	"sync"

	"github.com/xtaci/streamsock/xerr"
)

// State is a Socket's lifecycle position.
type State int

const (
	// Fresh: no RawSocket allocated yet.
	Fresh State = iota
	// Connected is a client's state once Connect succeeds, or a server's
	// once Bind succeeds (the spec treats bound-but-not-listening and
	// connected as the same "has a conn, not yet listening" state).
	Connected
	// Listening is a server's state once Listen succeeds.
	Listening
	// Closed is terminal unless Reusable is set.
	Closed
)

// Hooks are optional callbacks a Socket invokes around its operations.
// Every field is nil-safe to call.
type Hooks struct {
	OnInit    func()
	OnSend    func(data []byte)
	OnReceive func(data []byte)
	OnClose   func()
}

func (h Hooks) onInit() {
	if h.OnInit != nil {
		h.OnInit()
	}
}

func (h Hooks) onSend(d []byte) {
	if h.OnSend != nil {
		h.OnSend(d)
	}
}

func (h Hooks) onReceive(d []byte) {
	if h.OnReceive != nil {
		h.OnReceive(d)
	}
}

func (h Hooks) onClose() {
	if h.OnClose != nil {
		h.OnClose()
	}
}

// Socket is the C3 capability: a Protocol paired with a lazily-allocated
// RawSocket, plus the connection-validation policy every Client/Server
// variant shares. Reusable controls what happens after Close: a reusable
// Socket allocates a fresh RawSocket on the next send/receive/connect,
// matching a client that reconnects after a drop; a non-reusable Socket
// stays Closed forever once closed.
type Socket struct {
	Protocol Protocol
	Reusable bool
	Hooks    Hooks

	mu    sync.RWMutex
	conn  RawSocket
	state State
}

// NewSocket builds a fresh Socket around protocol. The OnInit hook, if
// set, runs immediately.
func NewSocket(protocol Protocol, reusable bool, hooks Hooks) *Socket {
	s := &Socket{Protocol: protocol, Reusable: reusable, Hooks: hooks, state: Fresh}
	s.Hooks.onInit()
	return s
}

// State reports the Socket's current lifecycle state.
func (s *Socket) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Conn returns the underlying RawSocket, or nil if none is allocated.
func (s *Socket) Conn() RawSocket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}

// validateConnection lazily allocates a RawSocket from the Protocol if
// none exists yet, refusing to do so once Closed unless Reusable.
func (s *Socket) validateConnection() (RawSocket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return s.conn, nil
	}
	if s.state == Closed && !s.Reusable {
		return nil, xerr.Usage("socket is closed and not reusable")
	}

	conn, err := s.Protocol.Socket()
	if err != nil {
		return nil, xerr.IO(err)
	}
	s.conn = conn
	if s.state == Closed {
		s.state = Fresh
	}
	return conn, nil
}

// adopt installs an already-connected RawSocket (used by a server wrapping
// an accepted connection) and moves to Connected.
func (s *Socket) adopt(conn RawSocket) {
	s.mu.Lock()
	s.conn = conn
	s.state = Connected
	s.mu.Unlock()
}

func (s *Socket) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Connect dials addr as a client and moves to Connected.
func (s *Socket) Connect(addr string) error {
	if st := s.State(); !s.Reusable && (st == Connected || st == Listening) {
		return xerr.Usage("socket is not reusable and is already connected")
	}
	conn, err := s.validateConnection()
	if err != nil {
		return err
	}
	if err := conn.Connect(addr); err != nil {
		return err
	}
	s.setState(Connected)
	return nil
}

// Bind reserves addr for a server socket and moves to Connected (bound,
// not yet listening).
func (s *Socket) Bind(addr string) error {
	conn, err := s.validateConnection()
	if err != nil {
		return err
	}
	if err := conn.Bind(addr); err != nil {
		return err
	}
	s.setState(Connected)
	return nil
}

// Listen marks a bound Socket ready to Accept and moves to Listening.
func (s *Socket) Listen() error {
	conn := s.Conn()
	if conn == nil {
		return xerr.Usage("cannot listen before bind")
	}
	if err := conn.Listen(); err != nil {
		return err
	}
	s.setState(Listening)
	return nil
}

// Accept blocks for the next incoming connection, returning a new Socket
// wrapping it under the same Protocol.
func (s *Socket) Accept() (*Socket, string, error) {
	conn := s.Conn()
	if conn == nil {
		return nil, "", xerr.Usage("cannot accept before listen")
	}
	raw, addr, err := s.Protocol.Accept(conn)
	if err != nil {
		return nil, "", err
	}
	accepted := NewSocket(s.Protocol, false, s.Hooks)
	accepted.adopt(raw)
	return accepted, addr, nil
}

// Send writes data to the connected peer, running the OnSend hook first.
func (s *Socket) Send(data []byte) (int, error) {
	conn, err := s.validateConnection()
	if err != nil {
		return 0, err
	}
	s.Hooks.onSend(data)
	return s.Protocol.Send(conn, data)
}

// SendTo writes one message to addr, running the OnSend hook first.
func (s *Socket) SendTo(data []byte, addr string) (int, error) {
	conn, err := s.validateConnection()
	if err != nil {
		return 0, err
	}
	s.Hooks.onSend(data)
	return s.Protocol.SendTo(conn, data, addr)
}

// Receive reads one message from the connected peer, running the
// OnReceive hook after a successful read.
func (s *Socket) Receive() ([]byte, error) {
	conn, err := s.validateConnection()
	if err != nil {
		return nil, err
	}
	data, err := s.Protocol.Receive(conn)
	if err != nil {
		return nil, err
	}
	s.Hooks.onReceive(data)
	return data, nil
}

// ReceiveFrom reads one message with its source address.
func (s *Socket) ReceiveFrom() ([]byte, string, error) {
	conn, err := s.validateConnection()
	if err != nil {
		return nil, "", err
	}
	data, addr, err := s.Protocol.ReceiveFrom(conn)
	if err != nil {
		return nil, "", err
	}
	s.Hooks.onReceive(data)
	return data, addr, nil
}

// Close releases the underlying RawSocket and moves to Closed, running
// the OnClose hook regardless of whether a RawSocket had been allocated.
func (s *Socket) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.state = Closed
	s.mu.Unlock()

	s.Hooks.onClose()
	if conn == nil {
		return nil
	}
	return conn.Close()
}
