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
	"sync"

	"github.com/xtaci/streamsock/store"
	"github.com/xtaci/streamsock/transport"
	"github.com/xtaci/streamsock/xerr"
)

// ServerSubscriber tracks one client's subscription state on the server
// side: which event names it wants, and the last Data per name it was
// sent, so the next send only transmits what changed.
type ServerSubscriber struct {
	mu     sync.Mutex
	events map[string]bool
	last   map[string]store.Data
}

func newServerSubscriber() *ServerSubscriber {
	return &ServerSubscriber{events: make(map[string]bool), last: make(map[string]store.Data)}
}

// Subscribe adds name to the set of events this subscriber wants.
func (sub *ServerSubscriber) Subscribe(name string) {
	sub.mu.Lock()
	sub.events[name] = true
	sub.mu.Unlock()
}

// Unsubscribe removes name from the set of events this subscriber wants.
func (sub *ServerSubscriber) Unsubscribe(name string) {
	sub.mu.Lock()
	delete(sub.events, name)
	delete(sub.last, name)
	sub.mu.Unlock()
}

// Subscribed reports whether name is currently subscribed.
func (sub *ServerSubscriber) Subscribed(name string) bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.events[name]
}

// names returns a snapshot of every currently subscribed event name.
func (sub *ServerSubscriber) names() []string {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	out := make([]string, 0, len(sub.events))
	for n := range sub.events {
		out = append(out, n)
	}
	return out
}

// delta reports whether d's Time differs from the last Data sent for its
// Name, recording d as the new last value when it does. Equality of two
// events for the same name is decided by time, not by the payload body: a
// re-published value with an unchanged body but a newer time still counts
// as a change.
func (sub *ServerSubscriber) delta(d store.Data) bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if !sub.events[d.Name] {
		return false
	}
	prev, ok := sub.last[d.Name]
	if ok && prev.Time == d.Time {
		return false
	}
	sub.last[d.Name] = d
	return true
}

// SubscriptionStreamer is a Streamer whose default sender pushes only the
// subscribed, changed entries of a shared DataStore to each client; a
// bare Streamer has no sender and only replies to requests. It adds the
// subscribe/unsubscribe endpoints on top of Streamer's defaults.
type SubscriptionStreamer struct {
	*Streamer
	Storage *store.DataStore

	mu          sync.Mutex
	subscribers map[string]*ServerSubscriber
}

// NewSubscriptionStreamer builds a SubscriptionStreamer around server and
// storage. Every entry inserted into storage is a candidate to push to
// subscribed clients; each connected controller's sender tick (see
// senderTick) re-checks storage and pushes whatever changed.
func NewSubscriptionStreamer(server *transport.Server, storage *store.DataStore, auth Authenticator, hooks Hooks, clock Clock) *SubscriptionStreamer {
	ss := &SubscriptionStreamer{
		Storage:     storage,
		subscribers: make(map[string]*ServerSubscriber),
	}
	onLeave := hooks.OnLeave
	hooks.OnLeave = func(addr string) {
		ss.dropSubscriber(addr)
		if onLeave != nil {
			onLeave(addr)
		}
	}
	ss.Streamer = NewStreamer(server, auth, hooks, clock)
	ss.Streamer.SenderFunc = ss.senderTick
	ss.Endpoints.Register(ss.subscribeEndpoint())
	ss.Endpoints.Register(ss.unsubscribeEndpoint())
	return ss
}

func (ss *SubscriptionStreamer) subscriberFor(addr string) *ServerSubscriber {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	sub, ok := ss.subscribers[addr]
	if !ok {
		sub = newServerSubscriber()
		ss.subscribers[addr] = sub
	}
	return sub
}

func (ss *SubscriptionStreamer) dropSubscriber(addr string) {
	ss.mu.Lock()
	delete(ss.subscribers, addr)
	ss.mu.Unlock()
}

// senderTick is installed as the Streamer's SenderFunc: on every tick of a
// client's sender operator, it re-fetches the freshest Data for each event
// that client is subscribed to, keeps only the ones that changed since the
// last tick, and - if any did - pushes all of them in a single "data"
// message keyed by event name. A client that has nothing new this tick
// gets nothing sent.
func (ss *SubscriptionStreamer) senderTick(ctrl *StreamController, addr string) error {
	if ss.Authenticator != nil && !ctrl.Authenticated() {
		return nil
	}

	sub := ss.subscriberFor(addr)
	names := sub.names()
	if len(names) == 0 {
		return nil
	}

	changed := make(map[string]store.Data, len(names))
	for _, name := range names {
		d, err := ss.Storage.Fetch(name)
		if err != nil {
			continue
		}
		if sub.delta(d) {
			changed[name] = d
		}
	}
	if len(changed) == 0 {
		return nil
	}
	return send(ctrl, Envelope(ss.Clock, "data", changed))
}

func (ss *SubscriptionStreamer) subscribeEndpoint() Endpoint {
	return Endpoint{
		Name:        "subscribe",
		Description: "adds one or more event names to the caller's subscription set",
		Fn: func(ctrl *StreamController, addr string, payload interface{}) error {
			names, err := asNameList(payload)
			if err != nil {
				return err
			}
			sub := ss.subscriberFor(addr)
			for _, n := range names {
				sub.Subscribe(n)
			}
			return nil
		},
	}
}

func (ss *SubscriptionStreamer) unsubscribeEndpoint() Endpoint {
	return Endpoint{
		Name:        "unsubscribe",
		Description: "removes one or more event names from the caller's subscription set",
		Fn: func(ctrl *StreamController, addr string, payload interface{}) error {
			names, err := asNameList(payload)
			if err != nil {
				return err
			}
			sub := ss.subscriberFor(addr)
			for _, n := range names {
				sub.Unsubscribe(n)
			}
			return nil
		},
	}
}

func asNameList(payload interface{}) ([]string, error) {
	switch v := payload.(type) {
	case string:
		return []string{v}, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, xerr.Malformed("subscription payload must be a string or list of strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, xerr.Malformed("subscription payload must be a string or list of strings")
	}
}
