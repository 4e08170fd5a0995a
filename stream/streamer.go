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

package stream

import (
	"context"
	"sync"

	"github.com/xtaci/streamsock/store"
	"github.com/xtaci/streamsock/transport"
	"github.com/xtaci/streamsock/xerr"
)

// SenderFunc is one controller's periodic outbound tick: produce whatever
// this addr should be sent right now, or do nothing. Streamer itself never
// sets one (a bare Streamer only ever replies to requests); SubscriptionStreamer
// installs one that pushes subscribed deltas.
type SenderFunc func(ctrl *StreamController, addr string) error

// Streamer is a Server that speaks the Data{name,time,data} protocol:
// every incoming message's Name selects an Endpoint, its Data is that
// endpoint's payload. Endpoints other than "authenticate" are refused
// with xerr.Unauthenticated until the client's controller has
// authenticated, unless Authenticator is nil (no auth required).
type Streamer struct {
	Server        *transport.Server
	Endpoints     *Endpoints
	Hooks         Hooks
	Authenticator Authenticator
	Clock         Clock
	SenderFunc    SenderFunc

	mu      sync.Mutex
	clients map[string]*StreamController
}

// NewStreamer builds a Streamer around server with the default endpoint
// set (authenticate/pause/unpause/close) installed. auth may be nil to
// accept every client without a credential check.
func NewStreamer(server *transport.Server, auth Authenticator, hooks Hooks, clock Clock) *Streamer {
	s := &Streamer{
		Server:        server,
		Endpoints:     &Endpoints{},
		Hooks:         hooks,
		Authenticator: auth,
		Clock:         clock,
		clients:       make(map[string]*StreamController),
	}
	registerDefaultStreamerEndpoints(s.Endpoints, auth, hooks, clock)
	return s
}

// Serve listens and accepts clients until ctx is cancelled. sequential is
// forwarded to the underlying transport.Server.Serve.
func (s *Streamer) Serve(ctx context.Context, sequential bool) error {
	if err := s.Server.Listen(); err != nil {
		return err
	}
	return s.Server.Serve(ctx, s.handle, sequential)
}

func (s *Streamer) handle(client *transport.ServerSideClient, addr string) {
	receiver := func(ctrl *StreamController) error {
		return s.receiverTick(ctrl, addr)
	}

	var sender TickFunc
	if s.SenderFunc != nil {
		sender = func(ctrl *StreamController) error {
			return s.SenderFunc(ctrl, addr)
		}
	}

	onError := func(err error) bool {
		s.Hooks.onDisconnect(addr, err)
		return false
	}

	ctrl := NewStreamController(client.Socket, sender, receiver, onError)

	s.track(addr, ctrl)
	s.Hooks.onJoin(addr)

	ctrl.Run(true)

	s.untrack(addr)
	s.Hooks.onLeave(addr)
}

// receiverTick reads one frame, decodes it, and dispatches it to the named
// endpoint. A read error is returned so the controller's Handler can decide
// whether to disconnect; a malformed frame or failed endpoint call instead
// gets a reply on the wire and the loop keeps running.
func (s *Streamer) receiverTick(ctrl *StreamController, addr string) error {
	raw, err := ctrl.Socket.Receive()
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}

	d, err := store.Decode(raw)
	if err != nil {
		s.Hooks.onInvalid(addr, err)
		s.respond(ctrl, "response", nil, err.Error())
		return nil
	}

	if s.Authenticator != nil && d.Name != "authenticate" && !ctrl.Authenticated() {
		s.Hooks.onUnauthenticated(addr)
		s.respond(ctrl, d.Name, d.Data, xerr.Unauthenticated(d.Name).Error())
		return nil
	}

	if err := s.Endpoints.Dispatch(d.Name, ctrl, addr, d.Data); err != nil {
		s.respond(ctrl, d.Name, d.Data, err.Error())
	}
	return nil
}

// respond sends {name, time, data: {response, request}}. name is the
// request's own name when one could be parsed, or "response" for a frame
// too malformed to carry one.
func (s *Streamer) respond(ctrl *StreamController, name string, request, response interface{}) {
	payload := map[string]interface{}{"response": response, "request": request}
	_ = send(ctrl, Envelope(s.Clock, name, payload))
}

func (s *Streamer) track(addr string, ctrl *StreamController) {
	s.mu.Lock()
	s.clients[addr] = ctrl
	s.mu.Unlock()
}

func (s *Streamer) untrack(addr string) {
	s.mu.Lock()
	delete(s.clients, addr)
	s.mu.Unlock()
}

// Client returns the controller for addr, if connected.
func (s *Streamer) Client(addr string) (*StreamController, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[addr]
	return c, ok
}

func registerDefaultStreamerEndpoints(e *Endpoints, auth Authenticator, hooks Hooks, clock Clock) {
	e.Register(authenticationEndpoint(auth, hooks, clock))
	e.Register(pauseEndpoint())
	e.Register(unpauseEndpoint())
	e.Register(closeEndpoint())
}

func authenticationEndpoint(auth Authenticator, hooks Hooks, clock Clock) Endpoint {
	return Endpoint{
		Name:        "authenticate",
		Description: "validates a client-supplied credential and marks the controller authenticated",
		Fn: func(ctrl *StreamController, addr string, payload interface{}) error {
			authorized := auth == nil || auth.Authenticate(payload)
			if authorized {
				ctrl.Authenticate()
				hooks.onAuthorized(addr)
			} else {
				hooks.onUnauthorized(addr)
			}
			_ = send(ctrl, Envelope(clock, "authenticate", map[string]interface{}{
				"response":   authorized,
				"request":    payload,
				"authorized": authorized,
			}))
			return nil
		},
	}
}

// pauseEndpoint toggles only the caller's sender operator. The receiver
// keeps running so the same connection can still send an "unpause" -
// pausing the whole controller here would strand it.
func pauseEndpoint() Endpoint {
	return Endpoint{
		Name:        "pause",
		Description: "pauses the caller's outbound sender",
		Fn: func(ctrl *StreamController, addr string, payload interface{}) error {
			ctrl.PauseSender()
			return nil
		},
	}
}

func unpauseEndpoint() Endpoint {
	return Endpoint{
		Name:        "unpause",
		Description: "resumes the caller's outbound sender",
		Fn: func(ctrl *StreamController, addr string, payload interface{}) error {
			ctrl.UnpauseSender()
			return nil
		},
	}
}

func closeEndpoint() Endpoint {
	return Endpoint{
		Name:        "close",
		Description: "closes the caller's controller",
		Fn: func(ctrl *StreamController, addr string, payload interface{}) error {
			// Close blocks until all three loops exit, including the one
			// running this very endpoint call; run it from its own
			// goroutine so this tick can return and let that happen.
			go func() { _ = ctrl.Close() }()
			return nil
		},
	}
}
