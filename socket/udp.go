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

// UDP is the leaf Protocol for a datagram RawSocket: every SendTo/ReceiveFrom
// is exactly one datagram, already a message boundary, so no extra framing is
// ever required on top of it. A UDP RawSocket has no implicit peer, so its
// plain Send and Recv return a usage error.
type UDP struct {
	BufferSize int
}

// NewUDP builds a UDP protocol with the default buffer size.
func NewUDP() *UDP {
	return &UDP{BufferSize: DefaultBufferSize}
}

func (p *UDP) bufferSize() int {
	if p.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return p.BufferSize
}

func (p *UDP) Socket() (RawSocket, error) {
	return NewUDPRawSocket(), nil
}

func (p *UDP) Send(conn RawSocket, data []byte) (int, error) {
	return conn.Send(data)
}

func (p *UDP) SendTo(conn RawSocket, data []byte, addr string) (int, error) {
	return conn.SendTo(data, addr)
}

func (p *UDP) Receive(conn RawSocket) ([]byte, error) {
	return conn.Recv(p.bufferSize())
}

func (p *UDP) ReceiveFrom(conn RawSocket) ([]byte, string, error) {
	return conn.RecvFrom(p.bufferSize())
}

func (p *UDP) Accept(conn RawSocket) (RawSocket, string, error) {
	return conn.Accept()
}
