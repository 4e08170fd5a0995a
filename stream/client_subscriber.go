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
	"encoding/json"
	"sync"

	"github.com/xtaci/streamsock/store"
	"github.com/xtaci/streamsock/transport"
)

// ClientSubscriber is the client side of the subscribe/unsubscribe
// protocol: it sends the control messages and keeps a local DataStore
// mirror of whatever the server has pushed back, so a caller can read the
// latest value for a name without tracking replies itself.
type ClientSubscriber struct {
	Client  *transport.Client
	Storage *store.DataStore
	Clock   Clock

	mu   sync.Mutex
	ctrl *StreamController
}

// NewClientSubscriber builds a ClientSubscriber around client, mirroring
// received Data into storage. It has no periodic sender tick of its own;
// every outbound message is enqueued on demand by Subscribe/Authenticate/etc.
func NewClientSubscriber(client *transport.Client, storage *store.DataStore, clock Clock) *ClientSubscriber {
	cs := &ClientSubscriber{Client: client, Storage: storage, Clock: clock}
	cs.ctrl = NewStreamController(client.Socket, nil, cs.receiverTick, nil)
	return cs
}

// receiverTick reads one frame and mirrors it into Storage. A batched
// "data" push (one message, many event names) is unpacked entry by entry;
// any other named message (an authenticate/pause/unpause/close response,
// for instance) is stored whole under its own name.
func (cs *ClientSubscriber) receiverTick(ctrl *StreamController) error {
	raw, err := ctrl.Socket.Receive()
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}

	d, err := store.Decode(raw)
	if err != nil {
		return nil
	}

	if d.Name != "data" {
		cs.Storage.Insert(d)
		return nil
	}

	entries, ok := d.Data.(map[string]interface{})
	if !ok {
		return nil
	}
	for _, v := range entries {
		encoded, err := json.Marshal(v)
		if err != nil {
			continue
		}
		inner, err := store.Decode(encoded)
		if err != nil {
			continue
		}
		cs.Storage.Insert(inner)
	}
	return nil
}

// Run starts the controller's receive and send loops.
func (cs *ClientSubscriber) Run(block bool) { cs.ctrl.Run(block) }

// Close closes the controller and its underlying connection.
func (cs *ClientSubscriber) Close() error { return cs.ctrl.Close() }

// Authenticate sends an authenticate request with credential as payload.
func (cs *ClientSubscriber) Authenticate(credential interface{}) error {
	return send(cs.ctrl, Envelope(cs.Clock, "authenticate", credential))
}

// Subscribe requests the server start pushing updates for the given names.
func (cs *ClientSubscriber) Subscribe(names ...string) error {
	return send(cs.ctrl, Envelope(cs.Clock, "subscribe", namesPayload(names)))
}

// Unsubscribe requests the server stop pushing updates for the given
// names.
func (cs *ClientSubscriber) Unsubscribe(names ...string) error {
	return send(cs.ctrl, Envelope(cs.Clock, "unsubscribe", namesPayload(names)))
}

// Pause requests the server pause this connection's sender.
func (cs *ClientSubscriber) Pause() error {
	return send(cs.ctrl, Envelope(cs.Clock, "pause", nil))
}

// Unpause requests the server resume this connection's sender.
func (cs *ClientSubscriber) Unpause() error {
	return send(cs.ctrl, Envelope(cs.Clock, "unpause", nil))
}

// RequestClose requests the server close this connection's controller.
func (cs *ClientSubscriber) RequestClose() error {
	return send(cs.ctrl, Envelope(cs.Clock, "close", nil))
}

func namesPayload(names []string) interface{} {
	if len(names) == 1 {
		return names[0]
	}
	out := make([]interface{}, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
