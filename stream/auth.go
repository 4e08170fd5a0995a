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
	"crypto/sha1"
	"crypto/subtle"

	"golang.org/x/crypto/pbkdf2"
)

// pbkdf2Salt matches the teacher's own key-expansion salt, reused here for
// deriving a comparison key from a client-supplied passphrase rather than
// a cipher key.
const pbkdf2Salt = "kcp-go"

// Authenticator decides whether a client's authenticate payload is valid.
// credential is whatever the "authenticate" endpoint's Data.Data carries,
// already JSON-decoded.
type Authenticator interface {
	Authenticate(credential interface{}) bool
}

// PBKDF2Authenticator authenticates clients by deriving a key from their
// supplied passphrase with the same PBKDF2 parameters the teacher used for
// its cipher key expansion, and comparing it to a pre-derived key in
// constant time.
type PBKDF2Authenticator struct {
	key []byte
}

// NewPBKDF2Authenticator derives the comparison key from passphrase once,
// up front, so Authenticate itself only pays for the peer's derivation.
func NewPBKDF2Authenticator(passphrase string) *PBKDF2Authenticator {
	return &PBKDF2Authenticator{key: deriveKey(passphrase)}
}

func deriveKey(passphrase string) []byte {
	return pbkdf2.Key([]byte(passphrase), []byte(pbkdf2Salt), 4096, 32, sha1.New)
}

// Authenticate reports whether credential derives the same key this
// Authenticator was built with. credential is either the passphrase string
// or a {name, password} object whose password field is the passphrase; the
// name field is not checked.
func (a *PBKDF2Authenticator) Authenticate(credential interface{}) bool {
	if m, ok := credential.(map[string]interface{}); ok {
		credential = m["password"]
	}
	pass, ok := credential.(string)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare(deriveKey(pass), a.key) == 1
}
