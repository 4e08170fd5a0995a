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

import "github.com/xtaci/streamsock/xerr"

// EndpointFunc handles one endpoint call: ctrl is the caller's controller,
// addr its address, and payload the decoded Data.Data of the request.
type EndpointFunc func(ctrl *StreamController, addr string, payload interface{}) error

// Endpoint names and documents one EndpointFunc.
type Endpoint struct {
	Name        string
	Description string
	Fn          EndpointFunc
}

func (e Endpoint) registered() bool { return e.Fn != nil }

// Endpoints is a Streamer's dispatch table. The six default endpoints
// (authenticate/pause/unpause/subscribe/unsubscribe/close) are named
// fields rather than map entries, so the common case never allocates or
// hashes a string; anything else a caller registers lands in overflow.
// The original this was ported from kept every endpoint, default or not,
// in one dict keyed by name.
type Endpoints struct {
	Authenticate Endpoint
	Pause        Endpoint
	Unpause      Endpoint
	Subscribe    Endpoint
	Unsubscribe  Endpoint
	Close        Endpoint

	overflow map[string]Endpoint
}

// Lookup returns the endpoint registered under name, if any.
func (e *Endpoints) Lookup(name string) (Endpoint, bool) {
	switch name {
	case "authenticate":
		return e.Authenticate, e.Authenticate.registered()
	case "pause":
		return e.Pause, e.Pause.registered()
	case "unpause":
		return e.Unpause, e.Unpause.registered()
	case "subscribe":
		return e.Subscribe, e.Subscribe.registered()
	case "unsubscribe":
		return e.Unsubscribe, e.Unsubscribe.registered()
	case "close":
		return e.Close, e.Close.registered()
	default:
		ep, ok := e.overflow[name]
		return ep, ok
	}
}

// Register installs ep under ep.Name, replacing any prior endpoint with
// that name.
func (e *Endpoints) Register(ep Endpoint) {
	switch ep.Name {
	case "authenticate":
		e.Authenticate = ep
	case "pause":
		e.Pause = ep
	case "unpause":
		e.Unpause = ep
	case "subscribe":
		e.Subscribe = ep
	case "unsubscribe":
		e.Unsubscribe = ep
	case "close":
		e.Close = ep
	default:
		if e.overflow == nil {
			e.overflow = make(map[string]Endpoint)
		}
		e.overflow[ep.Name] = ep
	}
}

// Dispatch looks up name and, if found, invokes it; otherwise it returns
// xerr.UnknownEndpoint.
func (e *Endpoints) Dispatch(name string, ctrl *StreamController, addr string, payload interface{}) error {
	ep, ok := e.Lookup(name)
	if !ok {
		return xerr.UnknownEndpoint(name)
	}
	return ep.Fn(ctrl, addr, payload)
}
