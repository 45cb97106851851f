// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

import "testing"

func TestHeaderNameMatcher(t *testing.T) {
	for _, tc := range []struct {
		name string
		want headerKind
	}{
		{"Connection", hkConnection},
		{"CONNECTION", hkConnection},
		{"connection", hkConnection},
		{"Proxy-Connection", hkProxyConnection},
		{"Content-Length", hkContentLength},
		{"content-length", hkContentLength},
		{"Transfer-Encoding", hkTransferEncoding},
		{"Upgrade", hkUpgrade},
		{"X-Custom-Header", hkOther},
		{"Content-Type", hkOther},
		{"Content-Len", hkOther},
	} {
		hm := newHeaderNameMatcher()
		for _, c := range []byte(tc.name) {
			hm.feed(c)
		}
		if got := hm.kind(); got != tc.want {
			t.Errorf("headerNameMatcher(%q).kind() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContentLengthAcc(t *testing.T) {
	var a contentLengthAcc
	for _, c := range []byte("12345") {
		if !a.feed(c) {
			t.Fatalf("feed(%q) rejected", c)
		}
	}
	if a.val != 12345 || !a.sawDigit {
		t.Errorf("val = %d, sawDigit = %v", a.val, a.sawDigit)
	}
}

func TestContentLengthAccRejectsNonDigit(t *testing.T) {
	var a contentLengthAcc
	a.feed('1')
	if a.feed('x') {
		t.Error("feed('x') should be rejected after digits")
	}
}

func TestContentLengthAccRejectsDigitsAfterSpace(t *testing.T) {
	var a contentLengthAcc
	a.feed('1')
	a.feed(' ')
	if a.feed('2') {
		t.Error("digits resuming after whitespace should be rejected")
	}
}

func TestContentLengthAccOverflow(t *testing.T) {
	var a contentLengthAcc
	ok := true
	for _, c := range []byte("99999999999999999999999999") {
		if !a.feed(c) {
			ok = false
			break
		}
	}
	if ok {
		t.Error("expected overflow to be rejected")
	}
}

func TestTokenListAccChunked(t *testing.T) {
	var a tokenListAcc
	a.reset(true)
	for _, c := range []byte("chunked") {
		if !a.feed(c) {
			t.Fatalf("feed(%q) rejected", c)
		}
	}
	a.finalizeToken()
	if !a.lastEquals("chunked") {
		t.Error("expected last token to equal \"chunked\"")
	}
}

func TestTokenListAccMultiToken(t *testing.T) {
	var a tokenListAcc
	a.reset(false)
	for _, c := range []byte("gzip, chunked") {
		if !a.feed(c) {
			t.Fatalf("feed(%q) rejected", c)
		}
	}
	a.finalizeToken()
	if !a.lastEquals("chunked") {
		t.Error("only the final token should be the \"last\" one")
	}
}

// TestTokenListAccStrictAsymmetry exercises the intentional STRICT_TOKEN
// asymmetry: the strict (Transfer-Encoding) accumulator rejects a stray
// non-token byte mid-token, while the non-strict (Connection) one accepts
// it (see DESIGN.md).
func TestTokenListAccStrictAsymmetry(t *testing.T) {
	var strict tokenListAcc
	strict.reset(true)
	strict.feed('a')
	if strict.feed('@') {
		t.Error("strict accumulator should reject a non-token byte")
	}

	var lenient tokenListAcc
	lenient.reset(false)
	lenient.feed('a')
	if !lenient.feed('@') {
		t.Error("non-strict accumulator should accept a non-token byte")
	}
}

func TestUpgradeProtoResolve(t *testing.T) {
	for _, tc := range []struct {
		tok  string
		want UpgradeProto
	}{
		{"websocket", UpgradeProtoWebSocket},
		{"WebSocket", UpgradeProtoWebSocket},
		{"h2c", UpgradeProtoHTTP2},
		{"HTTP/2.0", UpgradeProtoHTTP2},
		{"IRC/6.9", UpgradeProtoOther},
	} {
		if got := ResolveUpgradeProto([]byte(tc.tok)); got != tc.want {
			t.Errorf("ResolveUpgradeProto(%q) = %v, want %v", tc.tok, got, tc.want)
		}
	}
}
