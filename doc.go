// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package httpwire implements an incremental, zero-copy parser and
// serializer for HTTP/1.x messages (requests and responses, including the
// HTTP/0.9 degenerate request).
//
// The parser consumes arbitrarily chunked byte slices and drives a small
// state machine one byte at a time, resuming across call boundaries. It
// does not perform any I/O, does not buffer input itself, and delivers
// parsed fields as (offset, length) views into the caller's buffer via
// callbacks. A Document type and a Driver shell are provided on top of the
// raw Parser for callers that want an owned, structured result instead of
// raw callbacks.
package httpwire
