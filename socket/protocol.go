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

// Protocol frames messages over a RawSocket. Protocols compose: a BHP or
// BCP protocol wraps a leaf TCP/UDP protocol, and Identity/Compression wrap
// any inner Protocol without changing its framing. Every method takes the
// RawSocket it operates on explicitly, so one Protocol value is shared by a
// listener and every RawSocket it accepts.
type Protocol interface {
	// Socket allocates the RawSocket this protocol frames messages over.
	Socket() (RawSocket, error)
	// Send frames and writes data to conn's connected peer.
	Send(conn RawSocket, data []byte) (int, error)
	// SendTo frames and writes one datagram to addr.
	SendTo(conn RawSocket, data []byte, addr string) (int, error)
	// Receive reads and unframes one message from conn's connected peer.
	Receive(conn RawSocket) ([]byte, error)
	// ReceiveFrom reads and unframes one message, with its source address.
	ReceiveFrom(conn RawSocket) ([]byte, string, error)
	// Accept blocks for the next incoming connection, returning a RawSocket
	// wrapped by this same Protocol chain.
	Accept(conn RawSocket) (RawSocket, string, error)
}
