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

// Package store implements C7 DataStore: keyed ring buffers of published
// events.
package store

import (
	"encoding/json"

	"github.com/xtaci/streamsock/xerr"
)

// Data is one published event: a name identifying its stream, the instant
// it was produced, and an arbitrary JSON-able payload. The wire encoding
// is flat UTF-8 JSON with "name"/"time"/"data" fields, matching what a
// ClientSubscriber on the other end decodes.
type Data struct {
	Name string      `json:"name"`
	Time float64     `json:"time"`
	Data interface{} `json:"data"`
}

// Encode marshals d to its wire JSON form.
func (d Data) Encode() ([]byte, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, xerr.Malformed("cannot encode data: " + err.Error())
	}
	return b, nil
}

// Decode unmarshals the wire JSON form of a Data.
func Decode(raw []byte) (Data, error) {
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return Data{}, xerr.Malformed("cannot decode data: " + err.Error())
	}
	return d, nil
}
