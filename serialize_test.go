// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

import "testing"

func TestSerializeRequestRoundTrip(t *testing.T) {
	d := Document{
		Kind:           KindRequest,
		Major:          1,
		Minor:          1,
		Method:         MGet,
		TargetOrReason: "/foo?a=1",
		Headers: []HeaderField{
			{"Host", "example.com"},
			{"Accept", "*/*"},
		},
	}
	size := d.ByteSize()
	if size <= 0 {
		t.Fatalf("ByteSize() = %d, want > 0", size)
	}
	buf := make([]byte, size)
	n, ok := d.Serialize(buf)
	if !ok || n != size {
		t.Fatalf("Serialize() = (%d, %v), want (%d, true)", n, ok, size)
	}

	parsed := NewDriver(KindRequest)
	parsed.Feed(buf[:n])
	if err := parsed.P.Err(); err != OK {
		t.Fatalf("re-parse error: %v", err)
	}
	if !parsed.Done {
		t.Fatal("re-parsed message did not complete")
	}
	if parsed.Doc.Method != d.Method || parsed.Doc.TargetOrReason != d.TargetOrReason {
		t.Errorf("round-trip mismatch: got method=%v target=%q", parsed.Doc.Method, parsed.Doc.TargetOrReason)
	}
	if got := parsed.Doc.HeaderValuesFold("host"); len(got) != 1 || got[0] != "example.com" {
		t.Errorf("round-trip Host header = %v", got)
	}
}

func TestSerializeResponseRoundTrip(t *testing.T) {
	d := Document{
		Kind:           KindResponse,
		Major:          1,
		Minor:          1,
		StatusCode:     404,
		TargetOrReason: "Not Found",
		Headers:        []HeaderField{{"Content-Length", "0"}},
	}
	size := d.ByteSize()
	buf := make([]byte, size)
	n, ok := d.Serialize(buf)
	if !ok || n != size {
		t.Fatalf("Serialize() = (%d, %v), want (%d, true)", n, ok, size)
	}

	parsed := NewDriver(KindResponse)
	parsed.Feed(buf[:n])
	if err := parsed.P.Err(); err != OK {
		t.Fatalf("re-parse error: %v", err)
	}
	if parsed.Doc.StatusCode != 404 || parsed.Doc.TargetOrReason != "Not Found" {
		t.Errorf("round-trip mismatch: got status=%d reason=%q", parsed.Doc.StatusCode, parsed.Doc.TargetOrReason)
	}
}

func TestSerializeWithBody(t *testing.T) {
	d := Document{
		Kind:           KindRequest,
		Major:          1,
		Minor:          1,
		Method:         MPost,
		TargetOrReason: "/submit",
		Headers:        []HeaderField{{"Content-Length", "5"}},
		Body:           []byte("hello"),
	}
	size := d.ByteSize()
	buf := make([]byte, size)
	n, ok := d.Serialize(buf)
	if !ok {
		t.Fatal("Serialize failed")
	}
	if string(buf[n-5:n]) != "hello" {
		t.Errorf("serialized body = %q", buf[n-5:n])
	}
}

func TestByteSizeRejectsUnserializable(t *testing.T) {
	var d Document
	d.Kind = KindRequest
	d.Method = MUndef
	if size := d.ByteSize(); size != -1 {
		t.Errorf("ByteSize() = %d, want -1 for a method-less request", size)
	}

	d2 := Document{Kind: KindResponse, StatusCode: 0}
	if size := d2.ByteSize(); size != -1 {
		t.Errorf("ByteSize() = %d, want -1 for an out-of-range status", size)
	}
}

func TestSerializeRejectsTooSmallBuffer(t *testing.T) {
	d := Document{Kind: KindRequest, Method: MGet, Major: 1, Minor: 1, TargetOrReason: "/"}
	buf := make([]byte, 1)
	if _, ok := d.Serialize(buf); ok {
		t.Error("Serialize should fail with a too-small buffer")
	}
}

func TestByteSizeRejectsTargetWithoutSlash(t *testing.T) {
	d := Document{Kind: KindRequest, Method: MGet, Major: 1, Minor: 1, TargetOrReason: "foo"}
	if size := d.ByteSize(); size != -1 {
		t.Errorf("ByteSize() = %d, want -1 for a non-origin-form GET target", size)
	}
}

func TestSerializeHTTP09Request(t *testing.T) {
	d := Document{Kind: KindRequest, Major: 0, Minor: 9, Method: MGet, TargetOrReason: "/index.html"}
	size := d.ByteSize()
	want := len("GET /index.html\r\n")
	if size != want {
		t.Fatalf("ByteSize() = %d, want %d", size, want)
	}
	buf := make([]byte, size)
	n, ok := d.Serialize(buf)
	if !ok || n != size {
		t.Fatalf("Serialize() = (%d, %v), want (%d, true)", n, ok, size)
	}
	if string(buf) != "GET /index.html\r\n" {
		t.Errorf("Serialize() wrote %q", buf)
	}
}

func TestByteSizeExactness(t *testing.T) {
	d := Document{
		Kind:           KindRequest,
		Major:          1,
		Minor:          1,
		Method:         MGet,
		TargetOrReason: "/",
	}
	want := len("GET / HTTP/1.1\r\n\r\n")
	if got := d.ByteSize(); got != want {
		t.Errorf("ByteSize() = %d, want %d", got, want)
	}
}
