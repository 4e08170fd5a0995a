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

package socket

import "testing"

func TestEncodeDecodeHeader(t *testing.T) {
	cases := []int{0, 1, 42, 1024, 999999}
	for _, n := range cases {
		header := encodeHeader(n)
		if len(header) != HeaderSize {
			t.Fatalf("encodeHeader(%d): got %d bytes, want %d", n, len(header), HeaderSize)
		}
		got, err := decodeHeader(header)
		if err != nil {
			t.Fatalf("decodeHeader(%q): %v", header, err)
		}
		if got != n {
			t.Fatalf("decodeHeader(%q) = %d, want %d", header, got, n)
		}
	}
}

func TestDecodeHeaderMalformed(t *testing.T) {
	if _, err := decodeHeader([]byte("not-a-number-padded-to-32-bytes")); err == nil {
		t.Fatal("expected a malformed header to error")
	}
}

func TestBHPSendReceiveRoundTrip(t *testing.T) {
	a, b := newPipePair()
	bhp := NewBHP(&TCP{})

	want := []byte("hello over bhp framing")
	done := make(chan error, 1)
	go func() {
		_, err := bhp.Send(a, want)
		done <- err
	}()

	got, err := bhp.Receive(b)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Send: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBHPEmptyMessage(t *testing.T) {
	a, b := newPipePair()
	bhp := NewBHP(&TCP{})

	done := make(chan error, 1)
	go func() {
		_, err := bhp.Send(a, []byte{})
		done <- err
	}()

	got, err := bhp.Receive(b)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %q, want empty", got)
	}
}
