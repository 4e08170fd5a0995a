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

// Package xerr collects the sentinel error kinds shared by every layer of
// streamsock, so that callers can use errors.Is against one small vocabulary
// instead of each package inventing its own.
package xerr

import "github.com/pkg/errors"

// Sentinel kinds. Compare with errors.Is; use the constructors below to
// attach context while keeping the sentinel reachable through the chain.
var (
	// ErrUsage marks an invalid state transition: send on a closed socket,
	// UDP send without an address, TCP send on a server socket, listen
	// before bind, a second connect on a non-reusable socket.
	ErrUsage = errors.New("usage error")

	// ErrIO marks a failure surfaced by the underlying OS socket.
	ErrIO = errors.New("io error")

	// ErrMalformed marks a request whose bytes did not decode into a
	// well-formed Data wire message.
	ErrMalformed = errors.New("malformed request")

	// ErrUnknownEndpoint marks a request whose name has no registered
	// endpoint.
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrUnauthenticated marks a non-authenticate request arriving on an
	// unauthenticated controller.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrMissingKey marks a DataStore fetch/pop against an absent key.
	ErrMissingKey = errors.New("missing key")

	// ErrEmptyBucket marks a DataStore fetch/pop against a key whose
	// bucket has no entries.
	ErrEmptyBucket = errors.New("empty bucket")
)

// kindError pairs a sentinel with caller-supplied context so that
// errors.Is(err, xerr.ErrUsage) keeps working after wrapping.
type kindError struct {
	kind error
	msg  string
	err  error
}

func (e *kindError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() error {
	if e.err != nil {
		return e.err
	}
	return e.kind
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

// Usage builds a UsageError with the given message.
func Usage(msg string) error {
	return errors.WithStack(&kindError{kind: ErrUsage, msg: msg})
}

// Usagef builds a UsageError with a formatted message.
func Usagef(format string, args ...interface{}) error {
	return errors.WithStack(&kindError{kind: ErrUsage, msg: errors.Errorf(format, args...).Error()})
}

// IO wraps cause as an IOError, preserving it for errors.Unwrap/errors.Is.
func IO(cause error) error {
	if cause == nil {
		return nil
	}
	return errors.WithStack(&kindError{kind: ErrIO, msg: "io error", err: cause})
}

// Malformed builds a MalformedRequest error.
func Malformed(msg string) error {
	return &kindError{kind: ErrMalformed, msg: msg}
}

// UnknownEndpoint builds an UnknownEndpoint error naming the request.
func UnknownEndpoint(name string) error {
	return &kindError{kind: ErrUnknownEndpoint, msg: "unknown endpoint: " + name}
}

// Unauthenticated builds an Unauthenticated error naming the request.
func Unauthenticated(name string) error {
	return &kindError{kind: ErrUnauthenticated, msg: "unauthenticated request: " + name}
}

// MissingKey builds a MissingKey error naming the key.
func MissingKey(key string) error {
	return &kindError{kind: ErrMissingKey, msg: "missing key: " + key}
}

// EmptyBucket builds an EmptyBucket error naming the key.
func EmptyBucket(key string) error {
	return &kindError{kind: ErrEmptyBucket, msg: "empty bucket: " + key}
}
