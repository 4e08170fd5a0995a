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

import "net"

// pipeRawSocket adapts one end of a net.Pipe to RawSocket, enough to drive
// Send/Recv through a Protocol chain in tests. Bind/Listen/Accept/SendTo/
// RecvFrom are not exercised by any test using this: Connect, Bind and
// Listen do nothing, and Accept, SendTo and RecvFrom return ErrUnsupported.
type pipeRawSocket struct {
	conn net.Conn
}

func newPipePair() (a, b *pipeRawSocket) {
	ca, cb := net.Pipe()
	return &pipeRawSocket{conn: ca}, &pipeRawSocket{conn: cb}
}

func (p *pipeRawSocket) Connect(addr string) error { return nil }
func (p *pipeRawSocket) Bind(addr string) error     { return nil }
func (p *pipeRawSocket) Listen() error              { return nil }
func (p *pipeRawSocket) Accept() (RawSocket, string, error) {
	return nil, "", ErrUnsupported
}
func (p *pipeRawSocket) Send(data []byte) (int, error) { return p.conn.Write(data) }
func (p *pipeRawSocket) SendTo(data []byte, addr string) (int, error) {
	return 0, ErrUnsupported
}
func (p *pipeRawSocket) Recv(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := p.conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:read], nil
}
func (p *pipeRawSocket) RecvFrom(n int) ([]byte, string, error) {
	return nil, "", ErrUnsupported
}
func (p *pipeRawSocket) Close() error        { return p.conn.Close() }
func (p *pipeRawSocket) Stream() bool        { return true }
func (p *pipeRawSocket) Family() Family      { return FamilyTCP }
func (p *pipeRawSocket) LocalAddr() string   { return p.conn.LocalAddr().String() }
