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
	"fmt"

	"github.com/xtaci/streamsock/xerr"
)

// DefaultChunkSize bounds a single BCP read/write to the wire.
const DefaultChunkSize = 4096

// BCP (byte chunk protocol) is BHP's same length-header framing, but reads
// and writes the body in fixed-size chunks instead of handing the whole
// payload to one Send/Recv call. It trades a few extra syscalls for a
// bounded per-call buffer, which matters once messages grow past what a
// caller wants sitting in one socket write.
type BCP struct {
	Inner     Protocol
	ChunkSize int
}

// NewBCP wraps inner with chunked length-header framing at the default
// chunk size.
func NewBCP(inner Protocol) *BCP {
	return &BCP{Inner: inner, ChunkSize: DefaultChunkSize}
}

func (p *BCP) chunkSize() int {
	if p.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return p.ChunkSize
}

func (p *BCP) Socket() (RawSocket, error) {
	return p.Inner.Socket()
}

func (p *BCP) Accept(conn RawSocket) (RawSocket, string, error) {
	return p.Inner.Accept(conn)
}

func (p *BCP) writeChunked(conn RawSocket, data []byte) (int, error) {
	chunk := p.chunkSize()
	written := 0
	for written < len(data) {
		end := written + chunk
		if end > len(data) {
			end = len(data)
		}
		n, err := conn.Send(data[written:end])
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func (p *BCP) readChunked(conn RawSocket, n int) ([]byte, error) {
	chunk := p.chunkSize()
	buf := make([]byte, 0, n)
	for len(buf) < n {
		want := n - len(buf)
		if want > chunk {
			want = chunk
		}
		part, err := conn.Recv(want)
		if err != nil {
			return nil, err
		}
		if len(part) == 0 {
			return nil, xerr.IO(fmt.Errorf("connection closed after %d/%d bytes", len(buf), n))
		}
		buf = append(buf, part...)
	}
	return buf, nil
}

func (p *BCP) Send(conn RawSocket, data []byte) (int, error) {
	header := encodeHeader(len(data))
	hn, err := p.writeChunked(conn, header)
	if err != nil {
		return hn, err
	}
	n, err := p.writeChunked(conn, data)
	return hn + n, err
}

func (p *BCP) SendTo(conn RawSocket, data []byte, addr string) (int, error) {
	framed := append(encodeHeader(len(data)), data...)
	return conn.SendTo(framed, addr)
}

func (p *BCP) Receive(conn RawSocket) ([]byte, error) {
	header, err := p.readChunked(conn, HeaderSize)
	if err != nil {
		return nil, err
	}
	n, err := decodeHeader(header)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	return p.readChunked(conn, n)
}

func (p *BCP) ReceiveFrom(conn RawSocket) ([]byte, string, error) {
	raw, addr, err := conn.RecvFrom(HeaderSize + p.chunkSize())
	if err != nil {
		return nil, "", err
	}
	if len(raw) < HeaderSize {
		return nil, "", xerr.Malformed("datagram shorter than bcp header")
	}
	n, err := decodeHeader(raw[:HeaderSize])
	if err != nil {
		return nil, "", err
	}
	body := raw[HeaderSize:]
	if len(body) < n {
		return nil, "", xerr.Malformed("datagram shorter than its bcp length")
	}
	return body[:n], addr, nil
}
