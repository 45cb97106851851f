// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

// Flags packs the small set of framing-relevant booleans the parser tracks
// while consuming a message (spec §3 "flags"). Bit-flag idiom ported from
// the teacher's HdrFlags (parse_headers.go), repurposed to framing instead
// of SIP header presence.
type Flags uint16

const (
	FlagChunked Flags = 1 << iota
	FlagConnKeepAlive
	FlagConnClose
	FlagConnUpgrade
	FlagTrailing
	FlagUpgrade
	FlagSkipBody
	FlagContentLengthSeen
)

// Set sets f in the flag set.
func (fl *Flags) Set(f Flags) { *fl |= f }

// Clear clears f from the flag set.
func (fl *Flags) Clear(f Flags) { *fl &^= f }

// Has reports whether all bits of f are set.
func (fl Flags) Has(f Flags) bool { return fl&f == f }

// Kind discriminates whether a Document/Parser is handling a request or a
// response. KindEither is only legal before the first disambiguating byte
// is seen (spec §3).
type Kind uint8

const (
	KindEither Kind = iota
	KindRequest
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindResponse:
		return "response"
	default:
		return "either"
	}
}
