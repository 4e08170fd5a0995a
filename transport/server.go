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

import (
	"context"
	"sync"

	"github.com/xtaci/streamsock/socket"
	"github.com/xtaci/streamsock/xerr"
)

// Handler processes one accepted connection. It owns the ServerSideClient
// for the lifetime of the connection and is responsible for closing it.
type Handler func(client *ServerSideClient, addr string)

// Server binds and listens on one address, accepting connections and
// handing each off to a Handler. Sequential handling processes one
// connection at a time on the Serve goroutine, matching a strict
// request/response protocol; background handling spawns a goroutine per
// connection, matching a long-lived streaming protocol where clients
// overlap in time.
type Server struct {
	*socket.Socket
	addr string

	mu      sync.Mutex
	clients map[string]*ServerSideClient
}

// NewServer builds a Server around protocol, bound to addr once Listen is
// called.
func NewServer(protocol socket.Protocol, addr string, hooks socket.Hooks) *Server {
	return &Server{
		Socket:  socket.NewSocket(protocol, false, hooks),
		addr:    addr,
		clients: make(map[string]*ServerSideClient),
	}
}

// Listen binds the server's address and starts listening.
func (s *Server) Listen() error {
	if s.addr == "" {
		return xerr.Usage("server has no address to bind to")
	}
	if err := s.Socket.Bind(s.addr); err != nil {
		return err
	}
	return s.Socket.Listen()
}

// Serve accepts connections until ctx is cancelled or Accept fails,
// dispatching each to handler. If sequential, Serve blocks handler-to-
// handler: the next Accept only runs after the previous handler returns.
// Otherwise each handler runs in its own goroutine. Cancelling ctx closes
// the listening socket, which unblocks the in-flight Accept with an I/O
// error that Serve treats as a clean shutdown.
func (s *Server) Serve(ctx context.Context, handler Handler, sequential bool) error {
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.Socket.Close()
		case <-stopped:
		}
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		accepted, addr, err := s.Socket.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}

		client := newServerSideClient(accepted, addr)
		s.track(client)

		if sequential {
			handler(client, addr)
			s.untrack(addr)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			handler(client, addr)
			s.untrack(addr)
		}()
	}
}

func (s *Server) track(c *ServerSideClient) {
	s.mu.Lock()
	s.clients[c.addr] = c
	s.mu.Unlock()
}

func (s *Server) untrack(addr string) {
	s.mu.Lock()
	delete(s.clients, addr)
	s.mu.Unlock()
}

// Clients returns the addresses of currently connected clients.
func (s *Server) Clients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	addrs := make([]string, 0, len(s.clients))
	for addr := range s.clients {
		addrs = append(addrs, addr)
	}
	return addrs
}
