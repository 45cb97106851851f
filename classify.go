// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

import (
	"github.com/intuitivelabs/bytescase"
)

// tokenTable[c] is 0 for non-token bytes (CTLs, separators, SP) and the
// lowercased byte otherwise, letting header-name matching fold case in one
// table lookup (spec §4.1 "token(c)").
var tokenTable [256]byte

const tchar = "!#$%&'*+-.^_`|~0123456789" +
	"abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func init() {
	for _, c := range []byte(tchar) {
		tokenTable[c] = bytescase.ByteToLower(c)
	}
}

// isToken reports whether c is a valid HTTP token character.
func isToken(c byte) bool {
	return tokenTable[c] != 0
}

// tokenLower returns the lowercased byte for a token character, or 0 if c
// isn't a token character at all.
func tokenLower(c byte) byte {
	return tokenTable[c]
}

// isHeaderChar reports whether c may appear inside a header value: visible
// US-ASCII plus HTAB and SP (CR/LF are only legal as part of line folding,
// handled separately by the caller). In lenient mode, bytes with the high
// bit set are additionally accepted for interop with non-conformant peers.
func isHeaderChar(c byte, lenient bool) bool {
	if c == '\t' || c == ' ' {
		return true
	}
	if c >= 0x21 && c <= 0x7e {
		return true
	}
	if lenient && c >= 0x80 {
		return true
	}
	return false
}

// isURLChar reports whether c may appear in a request-target, per RFC 3986
// plus the query/fragment extensions RFC 7230 allows in a request line. In
// strict mode (the default) TAB/FF are rejected and bytes with the high bit
// set are rejected; lenient mode accepts both for interop.
func isURLChar(c byte, lenient bool) bool {
	if c == ' ' || c == '\r' || c == '\n' {
		return false
	}
	if !lenient && (c == '\t' || c == '\f') {
		return false
	}
	if c < 0x20 && c != '\t' && c != '\f' {
		return false
	}
	if c == 0x7f {
		return false
	}
	if c >= 0x80 {
		return lenient
	}
	return true
}

// isHostChar reports whether c may appear in a reg-name/IPv4 host
// component (RFC 3986 reg-name minus pct-encoded, handled by the caller).
func isHostChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.' || c == '-' || c == '_' || c == '~':
		return true
	case c == '!' || c == '$' || c == '&' || c == '\'' || c == '(' || c == ')':
		return true
	case c == '*' || c == '+' || c == ',' || c == ';' || c == '=':
		return true
	case c == '%':
		return true
	}
	return false
}

// isUserinfoChar reports whether c may appear in the userinfo component
// before an '@' in an authority (RFC 3986 userinfo minus pct-encoded).
func isUserinfoChar(c byte) bool {
	return isHostChar(c) || c == ':'
}

// isHex reports whether c is an ASCII hex digit.
func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isNum reports whether c is an ASCII decimal digit.
func isNum(c byte) bool {
	return c >= '0' && c <= '9'
}

// isAlpha reports whether c is an ASCII letter.
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// unhex returns the value of hex digit c (0-15), or -1 if c isn't one.
func unhex(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// skipToken advances i while buf[i] is a token character, stopping at the
// first non-token byte or end of buf. Mirrors the teacher's skipToken
// helper (parse_tok.go).
func skipToken(buf []byte, i int) int {
	for i < len(buf) && isToken(buf[i]) {
		i++
	}
	return i
}

// skipWS advances i over SP/HTAB.
func skipWS(buf []byte, i int) int {
	for i < len(buf) && (buf[i] == ' ' || buf[i] == '\t') {
		i++
	}
	return i
}
