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
	"net"
	"sync"

	"github.com/pkg/errors"
	"github.com/xtaci/streamsock/xerr"
)

// tcpRawSocket is a RawSocket backed by net.Conn/net.Listener.
type tcpRawSocket struct {
	mu   sync.Mutex
	ln   net.Listener
	conn net.Conn
	addr string
}

// NewTCPRawSocket builds a fresh, unconnected TCP RawSocket.
func NewTCPRawSocket() RawSocket {
	return &tcpRawSocket{}
}

func (s *tcpRawSocket) Connect(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return xerr.IO(err)
	}
	s.mu.Lock()
	s.conn = conn
	s.addr = conn.LocalAddr().String()
	s.mu.Unlock()
	return nil
}

func (s *tcpRawSocket) Bind(addr string) error {
	s.mu.Lock()
	s.addr = addr
	s.mu.Unlock()
	return nil
}

func (s *tcpRawSocket) Listen() error {
	s.mu.Lock()
	addr := s.addr
	s.mu.Unlock()
	if addr == "" {
		return xerr.Usage("cannot listen before bind")
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return xerr.IO(err)
	}
	s.mu.Lock()
	s.ln = ln
	s.addr = ln.Addr().String()
	s.mu.Unlock()
	return nil
}

func (s *tcpRawSocket) Accept() (RawSocket, string, error) {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return nil, "", xerr.Usage("cannot accept before listen")
	}
	conn, err := ln.Accept()
	if err != nil {
		return nil, "", xerr.IO(err)
	}
	remote := conn.RemoteAddr().String()
	return &tcpRawSocket{conn: conn, addr: conn.LocalAddr().String()}, remote, nil
}

func (s *tcpRawSocket) Send(data []byte) (int, error) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return 0, xerr.Usage("send on a socket with no connection")
	}
	n, err := conn.Write(data)
	if err != nil {
		return n, xerr.IO(err)
	}
	return n, nil
}

func (s *tcpRawSocket) SendTo(data []byte, addr string) (int, error) {
	return 0, xerr.Usage("sendto is not valid on a stream socket")
}

func (s *tcpRawSocket) Recv(n int) ([]byte, error) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return nil, xerr.Usage("recv on a socket with no connection")
	}
	buf := make([]byte, n)
	read, err := conn.Read(buf)
	if err != nil {
		if read == 0 {
			return nil, xerr.IO(err)
		}
		return buf[:read], xerr.IO(err)
	}
	return buf[:read], nil
}

func (s *tcpRawSocket) RecvFrom(n int) ([]byte, string, error) {
	return nil, "", xerr.Usage("recvfrom is not valid on a stream socket")
}

func (s *tcpRawSocket) Close() error {
	s.mu.Lock()
	conn, ln := s.conn, s.ln
	s.conn, s.ln = nil, nil
	s.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	if ln != nil {
		if lerr := ln.Close(); lerr != nil && err == nil {
			err = lerr
		}
	}
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (s *tcpRawSocket) Stream() bool { return true }

func (s *tcpRawSocket) Family() Family { return FamilyTCP }

func (s *tcpRawSocket) LocalAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}
