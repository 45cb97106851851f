// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

import "strings"

// HeaderField is one accumulated (name, value) pair, in the exact order
// and case it appeared on the wire; duplicates are kept as separate
// entries rather than merged (spec §3 "headers are an ordered list").
type HeaderField struct {
	Name  string
	Value string
}

// Document is the fully-materialized message model a Driver builds up from
// parser callbacks (spec §3). Unlike Parser, which never retains input
// bytes, Document owns copies of everything it holds, so it outlives the
// buffer Feed was called with. Grounded on the teacher's PMsg (parse_msg.go)
// restructured around owned strings instead of Field views, since the
// driver layer's whole job is to outlive the caller's buffer.
type Document struct {
	Kind   Kind
	Major  uint8
	Minor  uint8
	Method Method // requests only; MUndef for responses

	StatusCode uint16 // responses only

	// TargetOrReason is the request-target for requests, the reason
	// phrase for responses (spec §3's single shared field, mirroring the
	// wire's on_url/on_status role symmetry).
	TargetOrReason string

	Headers []HeaderField
	Body    []byte

	Upgrade bool
}

// Reset clears the document back to its zero value, reusing the
// underlying Headers/Body slices' storage.
func (d *Document) Reset() {
	d.Kind = KindEither
	d.Major, d.Minor = 0, 0
	d.Method = MUndef
	d.StatusCode = 0
	d.TargetOrReason = ""
	d.Headers = d.Headers[:0]
	d.Body = d.Body[:0]
	d.Upgrade = false
}

// HeaderValues returns every value of headers named name (case-sensitive;
// the driver lowercases nothing, since the spec's header model preserves
// wire case exactly). Callers doing case-insensitive lookups should use
// HeaderValuesFold.
func (d *Document) HeaderValues(name string) []string {
	var out []string
	for _, h := range d.Headers {
		if h.Name == name {
			out = append(out, h.Value)
		}
	}
	return out
}

// HeaderValuesFold is like HeaderValues but compares names ASCII
// case-insensitively, as HTTP field names require (RFC 7230 §3.2).
func (d *Document) HeaderValuesFold(name string) []string {
	var out []string
	for _, h := range d.Headers {
		if len(h.Name) == len(name) && foldEqual(h.Name, name) {
			out = append(out, h.Value)
		}
	}
	return out
}

func foldEqual(a, b string) bool {
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// ResolvedUpgradeProto classifies the Upgrade header's first value, when
// Upgrade is true, using ResolveUpgradeProto (upgradeproto.go). Returns
// UpgradeProtoOther if there is no Upgrade header or the message wasn't an
// upgrade handoff.
func (d *Document) ResolvedUpgradeProto() UpgradeProto {
	if !d.Upgrade {
		return UpgradeProtoOther
	}
	vals := d.HeaderValuesFold("upgrade")
	if len(vals) == 0 {
		return UpgradeProtoOther
	}
	first := vals[0]
	if i := strings.IndexByte(first, ','); i >= 0 {
		first = first[:i]
	}
	return ResolveUpgradeProto([]byte(strings.TrimSpace(first)))
}

// CopyFrom deep-copies other into d. Unlike the teacher/original_source's
// first-line copy (which assigned the destination's Minor from the
// source's Major -- a transcription bug reproduced faithfully by
// original_source but deliberately NOT carried over here, see DESIGN.md),
// this copies every field from its like-named counterpart.
func (d *Document) CopyFrom(other *Document) {
	d.Kind = other.Kind
	d.Major = other.Major
	d.Minor = other.Minor
	d.Method = other.Method
	d.StatusCode = other.StatusCode
	d.TargetOrReason = other.TargetOrReason
	d.Upgrade = other.Upgrade

	d.Headers = append(d.Headers[:0], other.Headers...)
	d.Body = append(d.Body[:0], other.Body...)
}
