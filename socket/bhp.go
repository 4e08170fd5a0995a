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
	"strconv"
	"strings"

	"github.com/xtaci/streamsock/xerr"
)

// HeaderSize is the width of a BHP length header: 32 ASCII digits,
// zero-padded, holding the decimal byte length of the message that follows.
const HeaderSize = 32

// BHP (byte header protocol) prefixes every message with a fixed-width
// ASCII length header, giving stream sockets the message boundaries TCP
// itself doesn't provide. It wraps any inner Protocol purely for Socket/
// Accept; Send/Receive talk to the RawSocket directly so the exact header
// and payload byte counts are honored.
type BHP struct {
	Inner Protocol
}

// NewBHP wraps inner with length-header framing.
func NewBHP(inner Protocol) *BHP {
	return &BHP{Inner: inner}
}

func (p *BHP) Socket() (RawSocket, error) {
	return p.Inner.Socket()
}

func (p *BHP) Accept(conn RawSocket) (RawSocket, string, error) {
	return p.Inner.Accept(conn)
}

func encodeHeader(n int) []byte {
	return []byte(fmt.Sprintf("%0*d", HeaderSize, n))
}

func decodeHeader(header []byte) (int, error) {
	n, err := strconv.Atoi(strings.TrimLeft(string(header), "0"))
	if err != nil {
		// an all-zero header (empty message) trims to "", Atoi("") fails;
		// treat that as zero rather than malformed.
		if strings.Trim(string(header), "0") == "" {
			return 0, nil
		}
		return 0, xerr.Malformed("bhp header is not a decimal length: " + string(header))
	}
	return n, nil
}

func readFull(conn RawSocket, n int) ([]byte, error) {
	buf := make([]byte, 0, n)
	for len(buf) < n {
		chunk, err := conn.Recv(n - len(buf))
		if err != nil {
			return nil, err
		}
		if len(chunk) == 0 {
			return nil, xerr.IO(fmt.Errorf("connection closed after %d/%d bytes", len(buf), n))
		}
		buf = append(buf, chunk...)
	}
	return buf, nil
}

func (p *BHP) Send(conn RawSocket, data []byte) (int, error) {
	header := encodeHeader(len(data))
	if _, err := conn.Send(header); err != nil {
		return 0, err
	}
	n, err := conn.Send(data)
	return n + HeaderSize, err
}

func (p *BHP) SendTo(conn RawSocket, data []byte, addr string) (int, error) {
	framed := append(encodeHeader(len(data)), data...)
	return conn.SendTo(framed, addr)
}

func (p *BHP) Receive(conn RawSocket) ([]byte, error) {
	header, err := readFull(conn, HeaderSize)
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
	return readFull(conn, n)
}

func (p *BHP) ReceiveFrom(conn RawSocket) ([]byte, string, error) {
	// a datagram arrives whole in a single read, so the header and the
	// payload both come back from one RecvFrom rather than two.
	raw, addr, err := conn.RecvFrom(HeaderSize + DefaultBufferSize)
	if err != nil {
		return nil, "", err
	}
	if len(raw) < HeaderSize {
		return nil, "", xerr.Malformed("datagram shorter than bhp header")
	}
	n, err := decodeHeader(raw[:HeaderSize])
	if err != nil {
		return nil, "", err
	}
	body := raw[HeaderSize:]
	if len(body) < n {
		return nil, "", xerr.Malformed("datagram shorter than its bhp length")
	}
	return body[:n], addr, nil
}
