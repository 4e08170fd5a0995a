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

//go:build !linux
// +build !linux

package socket

// NewRFCOMMRawSocket is unavailable outside linux; BlueZ RFCOMM sockets are
// a linux kernel facility. Callers should check the returned RawSocket
// against ErrUnsupported on first use.
func NewRFCOMMRawSocket() RawSocket {
	return &unsupportedRawSocket{family: FamilyRFCOMM}
}

// unsupportedRawSocket implements RawSocket by failing every operation with
// ErrUnsupported, so callers that build one speculatively (e.g. a config
// that requests "bt-rfcomm" on a non-linux build) get a clean error instead
// of a nil-pointer panic.
type unsupportedRawSocket struct {
	family Family
}

func (s *unsupportedRawSocket) Connect(addr string) error { return ErrUnsupported }
func (s *unsupportedRawSocket) Bind(addr string) error    { return ErrUnsupported }
func (s *unsupportedRawSocket) Listen() error             { return ErrUnsupported }
func (s *unsupportedRawSocket) Accept() (RawSocket, string, error) {
	return nil, "", ErrUnsupported
}
func (s *unsupportedRawSocket) Send(data []byte) (int, error) { return 0, ErrUnsupported }
func (s *unsupportedRawSocket) SendTo(data []byte, addr string) (int, error) {
	return 0, ErrUnsupported
}
func (s *unsupportedRawSocket) Recv(n int) ([]byte, error) { return nil, ErrUnsupported }
func (s *unsupportedRawSocket) RecvFrom(n int) ([]byte, string, error) {
	return nil, "", ErrUnsupported
}
func (s *unsupportedRawSocket) Close() error   { return nil }
func (s *unsupportedRawSocket) Stream() bool   { return true }
func (s *unsupportedRawSocket) Family() Family { return s.family }
func (s *unsupportedRawSocket) LocalAddr() string { return "" }
