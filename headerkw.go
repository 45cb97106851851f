// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

import (
	"github.com/intuitivelabs/bytescase"
)

// headerKind classifies a header name the parser has interpreted
// mid-stream, without ever buffering the name itself (spec §2 item 5,
// §4.4). Narrowed from the teacher's broader HdrT (parse_headers.go) down
// to the five names framing actually depends on.
type headerKind uint8

const (
	hkOther headerKind = iota
	hkConnection
	hkProxyConnection
	hkContentLength
	hkTransferEncoding
	hkUpgrade
)

var framingHeaderNames = [...]struct {
	name []byte
	kind headerKind
}{
	{[]byte("connection"), hkConnection},
	{[]byte("proxy-connection"), hkProxyConnection},
	{[]byte("content-length"), hkContentLength},
	{[]byte("transfer-encoding"), hkTransferEncoding},
	{[]byte("upgrade"), hkUpgrade},
}

// headerNameMatcher narrows the set of candidate framing-header names as
// header-name bytes arrive, the same prefix-narrowing idiom as
// methodMatcher, applied case-insensitively via bytescase. It classifies a
// header without ever storing the header name in a buffer (spec §4.4
// bullet 5, §4.5).
type headerNameMatcher struct {
	idx        int
	candidates []int // indices into framingHeaderNames
	dead       bool
}

func newHeaderNameMatcher() headerNameMatcher {
	all := make([]int, len(framingHeaderNames))
	for i := range all {
		all[i] = i
	}
	return headerNameMatcher{candidates: all}
}

// feed narrows the candidate set by one (lowercased) header-name byte.
func (hm *headerNameMatcher) feed(c byte) {
	if hm.dead {
		return
	}
	lc := bytescase.ByteToLower(c)
	out := hm.candidates[:0]
	for _, ci := range hm.candidates {
		name := framingHeaderNames[ci].name
		if hm.idx < len(name) && name[hm.idx] == lc {
			out = append(out, ci)
		}
	}
	hm.candidates = out
	hm.idx++
	if len(out) == 0 {
		hm.dead = true
	}
}

// kind reports the classified header kind once the name is complete
// (caller calls this at ':'); returns hkOther if no exact match.
func (hm *headerNameMatcher) kind() headerKind {
	for _, ci := range hm.candidates {
		if len(framingHeaderNames[ci].name) == hm.idx {
			return framingHeaderNames[ci].kind
		}
	}
	return hkOther
}

// contentLengthAcc accumulates a Content-Length header's decimal digits one
// byte at a time, with the overflow guard spec §4.4 names explicitly:
// reject before a multiply/add that would wrap a uint64.
type contentLengthAcc struct {
	val       uint64
	sawDigit  bool
	sawSpace  bool // whitespace seen after at least one digit (line fold)
}

func (a *contentLengthAcc) reset() { *a = contentLengthAcc{} }

// feed processes one content-length value byte. ok is false on a grammar
// violation (non-digit, or digits after trailing whitespace, or overflow).
func (a *contentLengthAcc) feed(c byte) (ok bool) {
	if isNum(c) {
		if a.sawSpace {
			return false // digits are not allowed to resume after whitespace
		}
		d := uint64(c - '0')
		const maxDiv10 = (^uint64(0) - 10) / 10
		if a.val > maxDiv10 {
			return false // would overflow on the next multiply
		}
		a.val = a.val*10 + d
		a.sawDigit = true
		return true
	}
	if c == ' ' || c == '\t' {
		if !a.sawDigit {
			return false
		}
		a.sawSpace = true
		return true
	}
	return false
}

// tokenListAcc incrementally scans a comma-separated token list (used for
// Transfer-Encoding and Connection values) without ever buffering the whole
// header value, only the current token (bounded, since every token of
// interest here -- "chunked", "keep-alive", "close", "upgrade" -- is short).
// STRICT_TOKEN asymmetry (spec §9): the Transfer-Encoding variant rejects
// any non-token, non-OWS, non-comma byte inside a token; the Connection
// variant (used for the same struct with strict=false) does not apply that
// restriction and simply ignores bytes that don't extend a token -- this
// mirrors original_source's h_matching_transfer_encoding_token_start
// asymmetry and is preserved intentionally, not "fixed".
type tokenListAcc struct {
	scratch    [24]byte
	n          int
	overflowed bool
	lastTok    [24]byte
	lastN      int
	anyToken   bool
	strict     bool
}

func (t *tokenListAcc) reset(strict bool) {
	*t = tokenListAcc{strict: strict}
}

func (t *tokenListAcc) finalizeToken() {
	if t.n > 0 && !t.overflowed {
		copy(t.lastTok[:], t.scratch[:t.n])
		t.lastN = t.n
		t.anyToken = true
	} else if t.overflowed {
		t.lastN = 0 // an overlong token matches none of the short literals
	}
	t.n = 0
	t.overflowed = false
}

// feed processes one value byte; call finalizeToken at end-of-value too.
func (t *tokenListAcc) feed(c byte) (ok bool) {
	switch {
	case c == ',':
		t.finalizeToken()
		return true
	case c == ' ' || c == '\t':
		return true
	case isToken(c):
		if t.n < len(t.scratch) {
			t.scratch[t.n] = tokenLower(c)
			t.n++
		} else {
			t.overflowed = true
		}
		return true
	default:
		return !t.strict
	}
}

func (t *tokenListAcc) lastEquals(lit string) bool {
	return t.lastN == len(lit) && string(t.lastTok[:t.lastN]) == lit
}

func (t *tokenListAcc) anyEquals(cur []byte, lit string) bool {
	return len(cur) == len(lit) && string(cur) == lit
}
