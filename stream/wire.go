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
	"time"

	"github.com/xtaci/streamsock/store"
)

// Clock supplies the timestamp stamped on outgoing Data. It exists as a
// seam so tests can fix time instead of racing on time.Now.
type Clock func() float64

// SystemClock reports seconds since the Unix epoch, as a float64, matching
// the wire format's "time" field.
func SystemClock() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return SystemClock
	}
	return c
}

// Envelope builds the Data this package sends for a named event.
func Envelope(clock Clock, name string, payload interface{}) store.Data {
	return store.Data{Name: name, Time: clockOrDefault(clock)(), Data: payload}
}

// send JSON-encodes d and enqueues it on ctrl's send queue.
func send(ctrl *StreamController, d store.Data) error {
	raw, err := d.Encode()
	if err != nil {
		return err
	}
	ctrl.Queue.Enqueue(raw)
	return nil
}
