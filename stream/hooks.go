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

// Hooks are the lifecycle callbacks a Streamer fires as clients join,
// authenticate, and leave. Every field is nil-safe to call.
type Hooks struct {
	OnJoin            func(addr string)
	OnAuthorized      func(addr string)
	OnUnauthorized    func(addr string)
	OnUnauthenticated func(addr string)
	OnInvalid         func(addr string, err error)
	OnLeave           func(addr string)
	OnDisconnect      func(addr string, err error)
}

func (h Hooks) onJoin(addr string) {
	if h.OnJoin != nil {
		h.OnJoin(addr)
	}
}

func (h Hooks) onAuthorized(addr string) {
	if h.OnAuthorized != nil {
		h.OnAuthorized(addr)
	}
}

func (h Hooks) onUnauthorized(addr string) {
	if h.OnUnauthorized != nil {
		h.OnUnauthorized(addr)
	}
}

func (h Hooks) onUnauthenticated(addr string) {
	if h.OnUnauthenticated != nil {
		h.OnUnauthenticated(addr)
	}
}

func (h Hooks) onInvalid(addr string, err error) {
	if h.OnInvalid != nil {
		h.OnInvalid(addr, err)
	}
}

func (h Hooks) onLeave(addr string) {
	if h.OnLeave != nil {
		h.OnLeave(addr)
	}
}

func (h Hooks) onDisconnect(addr string, err error) {
	if h.OnDisconnect != nil {
		h.OnDisconnect(addr, err)
	}
}
