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

package store

import (
	"errors"
	"testing"

	"github.com/xtaci/streamsock/xerr"
)

func TestFetchReturnsFreshest(t *testing.T) {
	s := New(0)
	s.Insert(Data{Name: "AAPL", Time: 1, Data: 100})
	s.Insert(Data{Name: "AAPL", Time: 2, Data: 101})
	s.Insert(Data{Name: "AAPL", Time: 3, Data: 102})

	got, err := s.Fetch("AAPL")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Time != 3 {
		t.Fatalf("Fetch returned time %v, want the freshest (3)", got.Time)
	}
}

func TestPopRemovesFreshest(t *testing.T) {
	s := New(0)
	s.Insert(Data{Name: "AAPL", Time: 1, Data: 100})
	s.Insert(Data{Name: "AAPL", Time: 2, Data: 101})

	popped, err := s.Pop("AAPL")
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if popped.Time != 2 {
		t.Fatalf("Pop returned time %v, want the freshest (2)", popped.Time)
	}
	remaining, err := s.Fetch("AAPL")
	if err != nil {
		t.Fatalf("Fetch after Pop: %v", err)
	}
	if remaining.Time != 1 {
		t.Fatalf("remaining entry has time %v, want 1", remaining.Time)
	}
}

func TestInsertEvictsOldestAtLimit(t *testing.T) {
	s := New(2)
	s.Insert(Data{Name: "k", Time: 1})
	s.Insert(Data{Name: "k", Time: 2})
	s.Insert(Data{Name: "k", Time: 3})

	bucket, err := s.Bucket("k")
	if err != nil {
		t.Fatalf("Bucket: %v", err)
	}
	if len(bucket) != 2 {
		t.Fatalf("bucket has %d entries, want 2", len(bucket))
	}
	if bucket[0].Time != 2 || bucket[1].Time != 3 {
		t.Fatalf("bucket = %v, want [2,3] (oldest evicted)", bucket)
	}
}

func TestFetchMissingAndEmptyKey(t *testing.T) {
	s := New(0)
	if _, err := s.Fetch("missing"); !errors.Is(err, xerr.ErrMissingKey) {
		t.Fatalf("Fetch(missing) = %v, want ErrMissingKey", err)
	}

	s.Insert(Data{Name: "k", Time: 1})
	if _, err := s.Pop("k"); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if _, err := s.Fetch("k"); !errors.Is(err, xerr.ErrEmptyBucket) {
		t.Fatalf("Fetch(empty) = %v, want ErrEmptyBucket", err)
	}
}

func TestIsValidKeyPolarity(t *testing.T) {
	s := New(0)
	if s.IsValidKey("k") {
		t.Fatal("a key with no bucket yet should not be valid")
	}
	s.Insert(Data{Name: "k", Time: 1})
	if !s.IsValidKey("k") {
		t.Fatal("a key with a bucket should be valid")
	}
	if err := s.ValidateKey("missing"); !errors.Is(err, xerr.ErrMissingKey) {
		t.Fatalf("ValidateKey(missing) = %v, want ErrMissingKey", err)
	}
}

func TestFetchAllAdjustSkipsMissingAndStale(t *testing.T) {
	s := New(0)
	s.Insert(Data{Name: "AAPL", Time: 10})
	s.Insert(Data{Name: "MSFT", Time: 1})

	out, err := s.FetchAll([]string{"AAPL", "MSFT", "GOOG"}, true, 10, 5)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if _, ok := out["AAPL"]; !ok {
		t.Fatal("AAPL within maxAge should be present")
	}
	if _, ok := out["MSFT"]; ok {
		t.Fatal("MSFT older than maxAge should be omitted when adjust=true")
	}
	if _, ok := out["GOOG"]; ok {
		t.Fatal("GOOG has no bucket and should be omitted when adjust=true")
	}
}

func TestFetchAllNoAdjustReturnsFirstError(t *testing.T) {
	s := New(0)
	s.Insert(Data{Name: "AAPL", Time: 1})

	if _, err := s.FetchAll([]string{"AAPL", "GOOG"}, false, 1, 0); !errors.Is(err, xerr.ErrMissingKey) {
		t.Fatalf("FetchAll(adjust=false) = %v, want ErrMissingKey", err)
	}
}

func TestCopyIsIndependentOfSource(t *testing.T) {
	s := New(0)
	s.Insert(Data{Name: "k", Time: 1})

	snapshot := s.Copy()
	s.Insert(Data{Name: "k", Time: 2})

	if len(snapshot["k"]) != 1 {
		t.Fatalf("snapshot should not observe inserts made after Copy, got %v", snapshot["k"])
	}
}
