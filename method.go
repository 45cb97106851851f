// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

import (
	"github.com/intuitivelabs/bytescase"
)

// Method is the type used to hold the numeric HTTP request method.
type Method uint8

// The 34 recognized methods (RFC 7231 + WebDAV/RFC 4918 + versioning
// extensions/RFC 3253 + UPnP + RFC 5789 + CalDAV/RFC 4791 + RFC 2068 +
// icecast's SOURCE), matching the original_source HTTP_METHOD_MAP table.
const (
	MUndef Method = iota
	MDelete
	MGet
	MHead
	MPost
	MPut
	MConnect
	MOptions
	MTrace
	MCopy
	MLock
	MMkcol
	MMove
	MPropfind
	MProppatch
	MSearch
	MUnlock
	MBind
	MRebind
	MUnbind
	MAcl
	MReport
	MMkactivity
	MCheckout
	MMerge
	MMSearch
	MNotify
	MSubscribe
	MUnsubscribe
	MPatch
	MPurge
	MMkcalendar
	MLink
	MUnlink
	MSource
	mMethodMax
)

// Method2Name translates a numeric Method to its ASCII wire name.
var Method2Name = [mMethodMax][]byte{
	MUndef:      []byte(""),
	MDelete:     []byte("DELETE"),
	MGet:        []byte("GET"),
	MHead:       []byte("HEAD"),
	MPost:       []byte("POST"),
	MPut:        []byte("PUT"),
	MConnect:    []byte("CONNECT"),
	MOptions:    []byte("OPTIONS"),
	MTrace:      []byte("TRACE"),
	MCopy:       []byte("COPY"),
	MLock:       []byte("LOCK"),
	MMkcol:      []byte("MKCOL"),
	MMove:       []byte("MOVE"),
	MPropfind:   []byte("PROPFIND"),
	MProppatch:  []byte("PROPPATCH"),
	MSearch:     []byte("SEARCH"),
	MUnlock:     []byte("UNLOCK"),
	MBind:       []byte("BIND"),
	MRebind:     []byte("REBIND"),
	MUnbind:     []byte("UNBIND"),
	MAcl:        []byte("ACL"),
	MReport:     []byte("REPORT"),
	MMkactivity: []byte("MKACTIVITY"),
	MCheckout:   []byte("CHECKOUT"),
	MMerge:      []byte("MERGE"),
	MMSearch:    []byte("M-SEARCH"),
	MNotify:     []byte("NOTIFY"),
	MSubscribe:  []byte("SUBSCRIBE"),
	MUnsubscribe: []byte("UNSUBSCRIBE"),
	MPatch:      []byte("PATCH"),
	MPurge:      []byte("PURGE"),
	MMkcalendar: []byte("MKCALENDAR"),
	MLink:       []byte("LINK"),
	MUnlink:     []byte("UNLINK"),
	MSource:     []byte("SOURCE"),
}

// Name returns the ASCII wire name for the method.
func (m Method) Name() []byte {
	if m >= mMethodMax {
		return Method2Name[MUndef]
	}
	return Method2Name[m]
}

// String implements fmt.Stringer.
func (m Method) String() string {
	return string(m.Name())
}

// hash bucket sized to keep max bucket occupancy small (re-verify with the
// method_test.go bucket-size check after adding methods).
const (
	mthBitsLen   uint = 3
	mthBitsFChar uint = 5
)

type mth2Type struct {
	n []byte
	t Method
}

var mthNameLookup [1 << (mthBitsLen + mthBitsFChar)][]mth2Type

func hashMthName(firstByte byte, length int) int {
	const (
		mC = (1 << mthBitsFChar) - 1
		mL = (1 << mthBitsLen) - 1
	)
	return (int(bytescase.ByteToLower(firstByte)) & mC) |
		((length & mL) << mthBitsFChar)
}

func init() {
	for i := MUndef + 1; i < mMethodMax; i++ {
		name := Method2Name[i]
		h := hashMthName(name[0], len(name))
		mthNameLookup[h] = append(mthNameLookup[h], mth2Type{name, i})
	}
}

// GetMethodNo converts an ASCII method name (as seen on the wire, exact
// case) to its numeric Method, or MUndef if unrecognized (callers treat
// MUndef in a request line as InvalidMethod).
func GetMethodNo(buf []byte) Method {
	if len(buf) == 0 {
		return MUndef
	}
	h := hashMthName(buf[0], len(buf))
	for _, m := range mthNameLookup[h] {
		if string(buf) == string(m.n) {
			return m.t
		}
	}
	return MUndef
}

// methodMatcher incrementally narrows the set of candidate methods as bytes
// of the request-line method token arrive, one byte at a time. It replaces
// the teacher's (and original_source's) giant per-byte switch of explicit
// (method, index, byte) -> method transitions with a small generic
// prefix-narrowing search over the same method table: at each byte, every
// candidate whose name doesn't match at that index is dropped. This is the
// "table instead of switch" dispatch the design notes explicitly allow.
type methodMatcher struct {
	candidates []mth2Type
	idx        int
}

func newMethodMatcher() methodMatcher {
	all := make([]mth2Type, 0, mMethodMax-1)
	for i := MUndef + 1; i < mMethodMax; i++ {
		all = append(all, mth2Type{Method2Name[i], i})
	}
	return methodMatcher{candidates: all}
}

// feed narrows the candidate set by one byte. It reports false if no method
// name has this byte at this index (caller should report InvalidMethod).
func (mm *methodMatcher) feed(c byte) bool {
	out := mm.candidates[:0]
	for _, cand := range mm.candidates {
		if mm.idx < len(cand.n) && cand.n[mm.idx] == c {
			out = append(out, cand)
		}
	}
	mm.candidates = out
	mm.idx++
	return len(out) > 0
}

// match reports the unique method whose full name has been matched exactly
// (len(name) == idx), or MUndef if ambiguous/incomplete.
func (mm *methodMatcher) match() Method {
	for _, cand := range mm.candidates {
		if len(cand.n) == mm.idx {
			return cand.t
		}
	}
	return MUndef
}
