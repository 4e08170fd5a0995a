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

package transport

import "github.com/xtaci/streamsock/socket"

// ServerSideClient is the Socket a Server hands to a Handler for one
// accepted connection. Unlike Client, it is never reusable and never
// reconnects: closing it closes the accepted RawSocket for good, there is
// no "dial again" for a connection the peer initiated.
type ServerSideClient struct {
	*socket.Socket
	addr string
}

func newServerSideClient(s *socket.Socket, addr string) *ServerSideClient {
	return &ServerSideClient{Socket: s, addr: addr}
}

// RemoteAddr is the address the client connected from.
func (c *ServerSideClient) RemoteAddr() string {
	return c.addr
}
