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
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Compression wraps an inner Protocol, snappy-compressing each outgoing
// message and decompressing each incoming one. Unlike the teacher's
// CompStream, which snappy-frames a continuous net.Conn byte stream, this
// operates per message: Inner already gives each Send/Receive a message
// boundary, so compression is a block Encode/Decode around that boundary
// rather than a buffered streaming writer.
type Compression struct {
	Inner Protocol
}

// NewCompression wraps inner with snappy block compression.
func NewCompression(inner Protocol) *Compression {
	return &Compression{Inner: inner}
}

func (p *Compression) Socket() (RawSocket, error) { return p.Inner.Socket() }

func (p *Compression) Accept(conn RawSocket) (RawSocket, string, error) {
	return p.Inner.Accept(conn)
}

func (p *Compression) Send(conn RawSocket, data []byte) (int, error) {
	return p.Inner.Send(conn, snappy.Encode(nil, data))
}

func (p *Compression) SendTo(conn RawSocket, data []byte, addr string) (int, error) {
	return p.Inner.SendTo(conn, snappy.Encode(nil, data), addr)
}

func (p *Compression) Receive(conn RawSocket) ([]byte, error) {
	raw, err := p.Inner.Receive(conn)
	if err != nil {
		return nil, err
	}
	out, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}

func (p *Compression) ReceiveFrom(conn RawSocket) ([]byte, string, error) {
	raw, addr, err := p.Inner.ReceiveFrom(conn)
	if err != nil {
		return nil, "", err
	}
	out, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, "", errors.WithStack(err)
	}
	return out, addr, nil
}
