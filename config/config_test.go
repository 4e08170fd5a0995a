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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xtaci/streamsock/socket"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDecodesConfig(t *testing.T) {
	path := writeConfig(t, `{
		"listen": "127.0.0.1:9000",
		"family": "udp",
		"framing": "bhp",
		"compression": true,
		"passphrase": "secret"
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9000" || cfg.Family != "udp" || cfg.Framing != "bhp" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if !cfg.Compression {
		t.Fatal("Compression should be true")
	}
	if cfg.Passphrase != "secret" {
		t.Fatalf("Passphrase = %q, want secret", cfg.Passphrase)
	}
}

func TestLoadMissingFileReturnsIOError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error loading a missing file")
	}
}

func TestLoadMalformedJSONReturnsMalformedError(t *testing.T) {
	path := writeConfig(t, `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error loading malformed JSON")
	}
}

func TestBuildProtocolDefaultsToUnframedTCP(t *testing.T) {
	cfg := &Streaming{}
	p, err := cfg.BuildProtocol()
	if err != nil {
		t.Fatalf("BuildProtocol: %v", err)
	}
	if _, ok := p.(*socket.Identity); !ok {
		t.Fatalf("protocol = %T, want *socket.Identity wrapping TCP", p)
	}
}

func TestBuildProtocolBHPFraming(t *testing.T) {
	cfg := &Streaming{Framing: "bhp"}
	p, err := cfg.BuildProtocol()
	if err != nil {
		t.Fatalf("BuildProtocol: %v", err)
	}
	if _, ok := p.(*socket.BHP); !ok {
		t.Fatalf("protocol = %T, want *socket.BHP", p)
	}
}

func TestBuildProtocolBCPFramingWithChunkSize(t *testing.T) {
	cfg := &Streaming{Framing: "bcp", ChunkSize: 512}
	p, err := cfg.BuildProtocol()
	if err != nil {
		t.Fatalf("BuildProtocol: %v", err)
	}
	bcp, ok := p.(*socket.BCP)
	if !ok {
		t.Fatalf("protocol = %T, want *socket.BCP", p)
	}
	if bcp.ChunkSize != 512 {
		t.Fatalf("ChunkSize = %d, want 512", bcp.ChunkSize)
	}
}

func TestBuildProtocolUDPFamily(t *testing.T) {
	cfg := &Streaming{Family: "udp"}
	p, err := cfg.BuildProtocol()
	if err != nil {
		t.Fatalf("BuildProtocol: %v", err)
	}
	if _, ok := p.(*socket.Identity); !ok {
		t.Fatalf("protocol = %T, want *socket.Identity", p)
	}
}

func TestBuildProtocolUnknownFamilyErrors(t *testing.T) {
	cfg := &Streaming{Family: "carrier-pigeon"}
	if _, err := cfg.BuildProtocol(); err == nil {
		t.Fatal("expected an error for an unknown family")
	}
}

func TestBuildProtocolUnknownFramingErrors(t *testing.T) {
	cfg := &Streaming{Framing: "morse"}
	if _, err := cfg.BuildProtocol(); err == nil {
		t.Fatal("expected an error for an unknown framing")
	}
}

func TestBuildProtocolCompressionWraps(t *testing.T) {
	cfg := &Streaming{Compression: true}
	p, err := cfg.BuildProtocol()
	if err != nil {
		t.Fatalf("BuildProtocol: %v", err)
	}
	if _, ok := p.(*socket.Compression); !ok {
		t.Fatalf("protocol = %T, want *socket.Compression", p)
	}
}

func TestBuildProtocolEncryptionWrapsWhenPassphraseSet(t *testing.T) {
	cfg := &Streaming{Encryption: true, Passphrase: "correct horse"}
	p, err := cfg.BuildProtocol()
	if err != nil {
		t.Fatalf("BuildProtocol: %v", err)
	}
	if _, ok := p.(*socket.Encryption); !ok {
		t.Fatalf("protocol = %T, want *socket.Encryption", p)
	}
}

func TestBuildProtocolEncryptionSkippedWithoutPassphrase(t *testing.T) {
	cfg := &Streaming{Encryption: true}
	p, err := cfg.BuildProtocol()
	if err != nil {
		t.Fatalf("BuildProtocol: %v", err)
	}
	if _, ok := p.(*socket.Encryption); ok {
		t.Fatal("encryption should not wrap the chain without a passphrase")
	}
}

func TestBuildProtocolCompressionThenEncryptionOrder(t *testing.T) {
	cfg := &Streaming{Compression: true, Encryption: true, Passphrase: "k"}
	p, err := cfg.BuildProtocol()
	if err != nil {
		t.Fatalf("BuildProtocol: %v", err)
	}
	enc, ok := p.(*socket.Encryption)
	if !ok {
		t.Fatalf("outermost protocol = %T, want *socket.Encryption", p)
	}
	if _, ok := enc.Inner.(*socket.Compression); !ok {
		t.Fatalf("Encryption.Inner = %T, want *socket.Compression", enc.Inner)
	}
}

func TestValidateDoesNotPanicOnEveryWarningCondition(t *testing.T) {
	cases := []*Streaming{
		{Encryption: true, Passphrase: ""},
		{Framing: "bcp", ChunkSize: 1},
		{StoreLimit: -1},
		{},
	}
	for _, cfg := range cases {
		cfg.Validate()
	}
}
