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

// DefaultBufferSize is the chunk size leaf protocols read when no framing
// tells them how much to expect.
const DefaultBufferSize = 1024

// TCP is the leaf Protocol for a stream RawSocket with no message framing:
// Receive reads whatever the OS hands back, up to BufferSize, with no
// guarantee it lines up with a single Send on the other end. Wrap it in BHP
// or BCP when message boundaries matter.
type TCP struct {
	BufferSize int
}

// NewTCP builds a TCP protocol with the default buffer size.
func NewTCP() *TCP {
	return &TCP{BufferSize: DefaultBufferSize}
}

func (p *TCP) bufferSize() int {
	if p.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return p.BufferSize
}

func (p *TCP) Socket() (RawSocket, error) {
	return NewTCPRawSocket(), nil
}

func (p *TCP) Send(conn RawSocket, data []byte) (int, error) {
	return conn.Send(data)
}

func (p *TCP) SendTo(conn RawSocket, data []byte, addr string) (int, error) {
	return conn.SendTo(data, addr)
}

func (p *TCP) Receive(conn RawSocket) ([]byte, error) {
	return conn.Recv(p.bufferSize())
}

func (p *TCP) ReceiveFrom(conn RawSocket) ([]byte, string, error) {
	return conn.RecvFrom(p.bufferSize())
}

func (p *TCP) Accept(conn RawSocket) (RawSocket, string, error) {
	return conn.Accept()
}
