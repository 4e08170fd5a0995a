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

// Package transport implements C4/C5: Client, Server and ServerSideClient,
// the connection-oriented and listening shapes built on top of a
// socket.Socket.
package transport

import (
	"github.com/xtaci/streamsock/socket"
	"github.com/xtaci/streamsock/xerr"
)

// Client is a Socket that dials a single remote address, reconnecting on
// demand when Reusable is set.
type Client struct {
	*socket.Socket
	addr string
}

// NewClient builds a Client around protocol, dialing addr. Reusable
// controls whether a closed Client may reconnect via Reconnect.
func NewClient(protocol socket.Protocol, addr string, reusable bool, hooks socket.Hooks) *Client {
	return &Client{
		Socket: socket.NewSocket(protocol, reusable, hooks),
		addr:   addr,
	}
}

// Connect dials the Client's configured address.
func (c *Client) Connect() error {
	if c.addr == "" {
		return xerr.Usage("client has no address to connect to")
	}
	return c.Socket.Connect(c.addr)
}

// Reconnect closes the current connection, if any, and dials again. It
// requires the Client to have been built with Reusable true.
func (c *Client) Reconnect() error {
	_ = c.Socket.Close()
	return c.Connect()
}
