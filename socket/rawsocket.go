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

// Package socket implements the framed transport layer: C1 RawSocket, C2
// Protocol (TCP, UDP, BHP, BCP, Identity, Compression), and C3 Socket.
package socket

import "github.com/xtaci/streamsock/xerr"

// Family identifies a RawSocket's address family.
type Family int

const (
	FamilyTCP Family = iota
	FamilyUDP
	FamilyRFCOMM
)

func (f Family) String() string {
	switch f {
	case FamilyTCP:
		return "tcp"
	case FamilyUDP:
		return "udp"
	case FamilyRFCOMM:
		return "bt-rfcomm"
	default:
		return "unknown"
	}
}

// RawSocket is the thin capability over an OS socket that spec.md treats
// as an external collaborator (§6): connect/bind/listen/accept/send/recv/
// sendto/recvfrom/close, plus knowledge of its own address family and
// stream-vs-datagram nature. TCP and RFCOMM RawSockets are stream sockets
// (Send/Recv, Accept); UDP is a datagram socket (SendTo/RecvFrom, no
// Accept).
type RawSocket interface {
	// Connect dials addr as a client.
	Connect(addr string) error
	// Bind reserves addr for a server socket.
	Bind(addr string) error
	// Listen marks a bound socket ready to Accept. A no-op for datagram
	// sockets.
	Listen() error
	// Accept blocks for the next incoming connection on a stream socket.
	Accept() (RawSocket, string, error)
	// Send writes to the already-connected peer of a stream socket.
	Send(data []byte) (int, error)
	// SendTo writes one datagram to addr.
	SendTo(data []byte, addr string) (int, error)
	// Recv reads up to n bytes from the connected peer of a stream socket.
	Recv(n int) ([]byte, error)
	// RecvFrom reads one datagram of up to n bytes, with its source.
	RecvFrom(n int) ([]byte, string, error)
	// Close releases the underlying OS resources.
	Close() error
	// Stream reports whether this is a stream socket (true) or a
	// datagram socket (false).
	Stream() bool
	// Family reports the address family this RawSocket was built for.
	Family() Family
	// LocalAddr reports the bound/connected local address, if any.
	LocalAddr() string
}

// ErrUnsupported is returned by RawSocket constructors unavailable on the
// current platform (RFCOMM outside linux).
var ErrUnsupported = xerr.Usage("unsupported on this platform")
