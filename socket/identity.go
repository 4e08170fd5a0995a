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

// Identity wraps an inner Protocol unchanged. It exists so callers that
// always want "a Protocol wrapping a Protocol" (for example, a config that
// picks a compression layer by name and defaults to "none") never need a
// special case for the no-op choice.
type Identity struct {
	Inner Protocol
}

// NewIdentity wraps inner with a no-op passthrough.
func NewIdentity(inner Protocol) *Identity {
	return &Identity{Inner: inner}
}

func (p *Identity) Socket() (RawSocket, error) { return p.Inner.Socket() }

func (p *Identity) Accept(conn RawSocket) (RawSocket, string, error) {
	return p.Inner.Accept(conn)
}

func (p *Identity) Send(conn RawSocket, data []byte) (int, error) {
	return p.Inner.Send(conn, data)
}

func (p *Identity) SendTo(conn RawSocket, data []byte, addr string) (int, error) {
	return p.Inner.SendTo(conn, data, addr)
}

func (p *Identity) Receive(conn RawSocket) ([]byte, error) {
	return p.Inner.Receive(conn)
}

func (p *Identity) ReceiveFrom(conn RawSocket) ([]byte, string, error) {
	return p.Inner.ReceiveFrom(conn)
}
