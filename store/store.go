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
	"sync"

	"github.com/xtaci/streamsock/xerr"
)

// DataStore holds a keyed set of FIFO buckets of Data events. Each key's
// bucket is capped at Limit entries (0 means unbounded); once full, the
// oldest entry is evicted to make room for the newest, same as a ring
// buffer.
//
// IsValidKey/ValidateKey consider a key valid when its bucket exists. The
// original implementation this was ported from had that check inverted
// (a key was "valid" when absent); every caller here, and the wire
// protocol's error responses, depend on the corrected polarity.
type DataStore struct {
	mu      sync.RWMutex
	limit   int
	buckets map[string][]Data
}

// New builds an empty DataStore. limit bounds each key's bucket; 0 means
// unbounded.
func New(limit int) *DataStore {
	return &DataStore{limit: limit, buckets: make(map[string][]Data)}
}

// IsValidKey reports whether key has a bucket in the store.
func (s *DataStore) IsValidKey(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.buckets[key]
	return ok
}

// ValidateKey returns nil if key has a bucket, xerr.MissingKey otherwise.
func (s *DataStore) ValidateKey(key string) error {
	if !s.IsValidKey(key) {
		return xerr.MissingKey(key)
	}
	return nil
}

// Insert appends d to its bucket (keyed by d.Name), evicting the oldest
// entry first if the bucket is at Limit.
func (s *DataStore) Insert(d Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(d)
}

func (s *DataStore) insertLocked(d Data) {
	bucket := s.buckets[d.Name]
	if s.limit > 0 && len(bucket) >= s.limit {
		bucket = bucket[1:]
	}
	s.buckets[d.Name] = append(bucket, d)
}

// InsertAll inserts every item in items, each keyed by its own Name.
func (s *DataStore) InsertAll(items []Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range items {
		s.insertLocked(d)
	}
}

// Empty reports whether key's bucket is missing or has no entries.
func (s *DataStore) Empty(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buckets[key]) == 0
}

// Fetch returns the freshest (last-inserted) entry in key's bucket without
// removing it.
func (s *DataStore) Fetch(key string) (Data, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket, ok := s.buckets[key]
	if !ok {
		return Data{}, xerr.MissingKey(key)
	}
	if len(bucket) == 0 {
		return Data{}, xerr.EmptyBucket(key)
	}
	return bucket[len(bucket)-1], nil
}

// FetchAll fetches the freshest entry for every key in keys. If maxAge is
// positive, an entry older than maxAge relative to now is treated the same
// as a missing one. When adjust is true, keys with no qualifying entry are
// silently omitted from the result; when false, the first such key's error
// (MissingKey or EmptyBucket) is returned immediately and the result is
// nil.
func (s *DataStore) FetchAll(keys []string, adjust bool, now, maxAge float64) (map[string]Data, error) {
	out := make(map[string]Data, len(keys))
	for _, key := range keys {
		d, err := s.Fetch(key)
		if err != nil {
			if adjust {
				continue
			}
			return nil, err
		}
		if maxAge > 0 && now-d.Time > maxAge {
			if adjust {
				continue
			}
			return nil, xerr.EmptyBucket(key)
		}
		out[key] = d
	}
	return out, nil
}

// Bucket returns a copy of every entry currently in key's bucket, oldest
// first. Unlike Fetch/FetchAll, it is not part of the freshest-entry
// contract; it exists for callers (tests, diagnostics) that need the whole
// history of a key.
func (s *DataStore) Bucket(key string) ([]Data, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket, ok := s.buckets[key]
	if !ok {
		return nil, xerr.MissingKey(key)
	}
	out := make([]Data, len(bucket))
	copy(out, bucket)
	return out, nil
}

// Pop removes and returns the freshest (last-inserted) entry in key's
// bucket, the same entry Fetch would have returned.
func (s *DataStore) Pop(key string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.buckets[key]
	if !ok {
		return Data{}, xerr.MissingKey(key)
	}
	if len(bucket) == 0 {
		return Data{}, xerr.EmptyBucket(key)
	}
	last := len(bucket) - 1
	d := bucket[last]
	s.buckets[key] = bucket[:last]
	return d, nil
}

// PopAll removes and returns every entry in key's bucket, oldest first,
// leaving the bucket empty but present.
func (s *DataStore) PopAll(key string) ([]Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.buckets[key]
	if !ok {
		return nil, xerr.MissingKey(key)
	}
	s.buckets[key] = nil
	return bucket, nil
}

// Clear removes key's bucket entirely.
func (s *DataStore) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
}

// ClearAll removes every bucket from the store.
func (s *DataStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = make(map[string][]Data)
}

// EmptyAll empties every bucket's entries while leaving their keys present,
// distinct from ClearAll, which drops the keys themselves.
func (s *DataStore) EmptyAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.buckets {
		s.buckets[k] = nil
	}
}

// Copy returns a deep-per-key clone of the store's contents: the outer map
// and every bucket slice are fresh, though the Data values themselves are
// shared.
func (s *DataStore) Copy() map[string][]Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]Data, len(s.buckets))
	for k, bucket := range s.buckets {
		cloned := make([]Data, len(bucket))
		copy(cloned, bucket)
		out[k] = cloned
	}
	return out
}

// Keys returns every key currently present in the store.
func (s *DataStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.buckets))
	for k := range s.buckets {
		keys = append(keys, k)
	}
	return keys
}
