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

// Package config loads a Streaming configuration from JSON, the same way
// the teacher's server/client Config types do, and builds the socket
// Protocol chain it describes.
package config

import (
	"encoding/json"
	"os"

	"github.com/fatih/color"

	"github.com/xtaci/streamsock/socket"
	"github.com/xtaci/streamsock/xerr"
)

// Streaming is the JSON-loadable description of one endpoint's protocol
// stack: which RawSocket family to use, what framing to wrap it in, and
// whether to layer compression on top.
type Streaming struct {
	Listen      string `json:"listen"`
	Target      string `json:"target"`
	Family      string `json:"family"`      // "tcp", "udp", or "bt-rfcomm"
	Framing     string `json:"framing"`      // "none", "bhp", or "bcp"
	Compression bool   `json:"compression"`
	Encryption  bool   `json:"encryption"`
	BufferSize  int    `json:"buffer"`
	ChunkSize   int    `json:"chunk"`
	Passphrase  string `json:"passphrase"`
	StoreLimit  int    `json:"store_limit"`
	Log         string `json:"log"`
	Quiet       bool   `json:"quiet"`
}

// Load reads and decodes a Streaming config from path, the same
// encoding/json-over-os.Open pattern the teacher's parseJSONConfig uses.
func Load(path string) (*Streaming, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, xerr.IO(err)
	}
	defer file.Close()

	var cfg Streaming
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, xerr.Malformed("cannot decode config: " + err.Error())
	}
	return &cfg, nil
}

// BuildProtocol translates the Family/Framing/Compression fields into a
// composed socket.Protocol, in the same leaf-then-wrap order the sockets
// package itself builds chains in: a leaf RawSocket protocol, optionally
// BHP/BCP framed, optionally compressed.
func (c *Streaming) BuildProtocol() (socket.Protocol, error) {
	var leaf socket.Protocol
	switch c.Family {
	case "", "tcp":
		leaf = &socket.TCP{BufferSize: c.BufferSize}
	case "udp":
		leaf = &socket.UDP{BufferSize: c.BufferSize}
	case "bt-rfcomm":
		leaf = &rfcommProtocol{bufferSize: c.bufferSize()}
	default:
		return nil, xerr.Usage("unknown family: " + c.Family)
	}

	var framed socket.Protocol
	switch c.Framing {
	case "", "none":
		framed = socket.NewIdentity(leaf)
	case "bhp":
		framed = socket.NewBHP(leaf)
	case "bcp":
		bcp := socket.NewBCP(leaf)
		if c.ChunkSize > 0 {
			bcp.ChunkSize = c.ChunkSize
		}
		framed = bcp
	default:
		return nil, xerr.Usage("unknown framing: " + c.Framing)
	}

	protocol := framed
	if c.Compression {
		protocol = socket.NewCompression(protocol)
	}
	if c.Encryption && c.Passphrase != "" {
		enc, err := socket.NewEncryption(protocol, []byte(c.Passphrase))
		if err != nil {
			return nil, err
		}
		protocol = enc
	}
	return protocol, nil
}

// Validate prints non-fatal warnings for parameter combinations that are
// legal but likely a mistake, the same role the teacher's QPP/scavenge
// sanity checks play in client/main.go: these never stop the process, they
// just color.Red the terminal so an operator notices before it bites them.
func (c *Streaming) Validate() {
	if c.Encryption && c.Passphrase == "" {
		color.Red("WARNING: encryption is enabled but passphrase is empty, frames will be sent unencrypted")
	}
	if c.Framing == "bcp" && c.ChunkSize > 0 && c.ChunkSize < socket.HeaderSize {
		color.Red("WARNING: chunk size %d is smaller than the BCP header size %d", c.ChunkSize, socket.HeaderSize)
	}
	if c.StoreLimit < 0 {
		color.Red("WARNING: store_limit %d is negative, treating buckets as unbounded", c.StoreLimit)
	}
}

func (c *Streaming) bufferSize() int {
	if c.BufferSize <= 0 {
		return socket.DefaultBufferSize
	}
	return c.BufferSize
}

// rfcommProtocol is the leaf Protocol for RFCOMM, reusing TCP's unframed
// Send/Receive behavior since RFCOMM is connection-oriented the same way
// TCP is; only Socket differs, in which RawSocket family it allocates.
type rfcommProtocol struct {
	bufferSize int
}

func (p *rfcommProtocol) Socket() (socket.RawSocket, error) {
	return socket.NewRFCOMMRawSocket(), nil
}

func (p *rfcommProtocol) Send(conn socket.RawSocket, data []byte) (int, error) {
	return conn.Send(data)
}

func (p *rfcommProtocol) SendTo(conn socket.RawSocket, data []byte, addr string) (int, error) {
	return conn.SendTo(data, addr)
}

func (p *rfcommProtocol) Receive(conn socket.RawSocket) ([]byte, error) {
	return conn.Recv(p.bufferSize)
}

func (p *rfcommProtocol) ReceiveFrom(conn socket.RawSocket) ([]byte, string, error) {
	return conn.RecvFrom(p.bufferSize)
}

func (p *rfcommProtocol) Accept(conn socket.RawSocket) (socket.RawSocket, string, error) {
	return conn.Accept()
}
