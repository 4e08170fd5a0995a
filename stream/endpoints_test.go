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
	"errors"
	"testing"

	"github.com/xtaci/streamsock/xerr"
)

func TestEndpointsLookupNamedFields(t *testing.T) {
	e := &Endpoints{}
	called := false
	e.Register(Endpoint{Name: "authenticate", Fn: func(*StreamController, string, interface{}) error {
		called = true
		return nil
	}})

	ep, ok := e.Lookup("authenticate")
	if !ok {
		t.Fatal("authenticate should be registered")
	}
	if err := ep.Fn(nil, "", nil); err != nil {
		t.Fatalf("Fn: %v", err)
	}
	if !called {
		t.Fatal("registered Fn was not the one invoked")
	}
}

func TestEndpointsLookupUnregisteredNamedFieldIsAbsent(t *testing.T) {
	e := &Endpoints{}
	if _, ok := e.Lookup("pause"); ok {
		t.Fatal("pause should not be registered on a bare Endpoints")
	}
}

func TestEndpointsOverflowForUnknownNames(t *testing.T) {
	e := &Endpoints{}
	e.Register(Endpoint{Name: "custom", Fn: func(*StreamController, string, interface{}) error { return nil }})

	ep, ok := e.Lookup("custom")
	if !ok {
		t.Fatal("custom endpoint should be found via overflow")
	}
	if ep.Name != "custom" {
		t.Fatalf("Name = %q, want custom", ep.Name)
	}
}

func TestEndpointsDispatchUnknownReturnsUnknownEndpoint(t *testing.T) {
	e := &Endpoints{}
	err := e.Dispatch("nope", nil, "addr", nil)
	if !errors.Is(err, xerr.ErrUnknownEndpoint) {
		t.Fatalf("Dispatch(unknown) = %v, want ErrUnknownEndpoint", err)
	}
}

func TestEndpointsDispatchInvokesRegistered(t *testing.T) {
	e := &Endpoints{}
	var gotAddr string
	var gotPayload interface{}
	e.Register(Endpoint{Name: "subscribe", Fn: func(_ *StreamController, addr string, payload interface{}) error {
		gotAddr = addr
		gotPayload = payload
		return nil
	}})

	if err := e.Dispatch("subscribe", nil, "1.2.3.4", "AAPL"); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if gotAddr != "1.2.3.4" || gotPayload != "AAPL" {
		t.Fatalf("got addr=%q payload=%v, want 1.2.3.4/AAPL", gotAddr, gotPayload)
	}
}

func TestEndpointsRegisterReplacesPriorNamedField(t *testing.T) {
	e := &Endpoints{}
	e.Register(Endpoint{Name: "close", Description: "first"})
	e.Register(Endpoint{Name: "close", Description: "second"})

	ep, _ := e.Lookup("close")
	if ep.Description != "second" {
		t.Fatalf("Description = %q, want second (re-registration should replace)", ep.Description)
	}
}
