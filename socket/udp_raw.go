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

	"github.com/xtaci/streamsock/xerr"
)

// udpRawSocket is a RawSocket backed by net.PacketConn. Both client and
// server usage share the same connectionless socket; the remote address
// is always explicit on send/recv, matching a datagram socket's lack of
// an implicit peer.
type udpRawSocket struct {
	mu   sync.Mutex
	pc   net.PacketConn
	addr string
}

// NewUDPRawSocket builds a fresh, unbound UDP RawSocket.
func NewUDPRawSocket() RawSocket {
	return &udpRawSocket{}
}

func (s *udpRawSocket) Connect(addr string) error {
	// A UDP "connect" only needs a local ephemeral socket; the peer
	// address travels explicitly on every SendTo/RecvFrom, per the
	// datagram model.
	pc, err := net.ListenPacket("udp", ":0")
	if err != nil {
		return xerr.IO(err)
	}
	s.mu.Lock()
	s.pc = pc
	s.addr = pc.LocalAddr().String()
	s.mu.Unlock()
	return nil
}

func (s *udpRawSocket) Bind(addr string) error {
	pc, err := net.ListenPacket("udp", addr)
	if err != nil {
		return xerr.IO(err)
	}
	s.mu.Lock()
	s.pc = pc
	s.addr = pc.LocalAddr().String()
	s.mu.Unlock()
	return nil
}

func (s *udpRawSocket) Listen() error { return nil }

func (s *udpRawSocket) Accept() (RawSocket, string, error) {
	return nil, "", xerr.Usage("accept is not valid on a datagram socket")
}

func (s *udpRawSocket) Send(data []byte) (int, error) {
	return 0, xerr.Usage("send without an address is not valid on a datagram socket")
}

func (s *udpRawSocket) SendTo(data []byte, addr string) (int, error) {
	s.mu.Lock()
	pc := s.pc
	s.mu.Unlock()
	if pc == nil {
		return 0, xerr.Usage("sendto on a socket with no connection")
	}
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return 0, xerr.IO(err)
	}
	n, err := pc.WriteTo(data, raddr)
	if err != nil {
		return n, xerr.IO(err)
	}
	return n, nil
}

func (s *udpRawSocket) Recv(n int) ([]byte, error) {
	return nil, xerr.Usage("recv without an address is not valid on a datagram socket")
}

func (s *udpRawSocket) RecvFrom(n int) ([]byte, string, error) {
	s.mu.Lock()
	pc := s.pc
	s.mu.Unlock()
	if pc == nil {
		return nil, "", xerr.Usage("recvfrom on a socket with no connection")
	}
	buf := make([]byte, n)
	read, addr, err := pc.ReadFrom(buf)
	if err != nil {
		return nil, "", xerr.IO(err)
	}
	return buf[:read], addr.String(), nil
}

func (s *udpRawSocket) Close() error {
	s.mu.Lock()
	pc := s.pc
	s.pc = nil
	s.mu.Unlock()
	if pc == nil {
		return nil
	}
	if err := pc.Close(); err != nil {
		return xerr.IO(err)
	}
	return nil
}

func (s *udpRawSocket) Stream() bool { return false }

func (s *udpRawSocket) Family() Family { return FamilyUDP }

func (s *udpRawSocket) LocalAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}
