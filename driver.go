// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

// Driver binds a Parser's zero-copy callbacks to a Document, accumulating
// the byte runs Feed hands out (each possibly partial) into owned buffers
// and flushing a completed (name, value) pair whenever the next
// header_field run signals the previous header ended (spec §4.6 "driver
// shell"). It is the glue between the teacher-derived resumable FSM and
// application code that just wants a finished message.
type Driver struct {
	P   Parser
	Doc Document

	pendingName  []byte
	pendingValue []byte
	inValue      bool

	Done bool
}

// NewDriver builds a Driver ready to parse one message of the given kind.
func NewDriver(kind Kind) *Driver {
	d := &Driver{}
	d.init(kind)
	return d
}

func (d *Driver) init(kind Kind) {
	settings := &Settings{
		OnMessageBegin:    d.onMessageBegin,
		OnURL:             d.onURL,
		OnStatus:          d.onStatus,
		OnHeaderField:     d.onHeaderField,
		OnHeaderValue:     d.onHeaderValue,
		OnHeadersComplete: d.onHeadersComplete,
		OnBody:            d.onBody,
		OnChunkHeader:     d.onChunkHeader,
		OnChunkComplete:   d.onChunkComplete,
		OnMessageComplete: d.onMessageComplete,
	}
	d.P.Init(kind, settings)
	d.Doc.Reset()
	d.pendingName = d.pendingName[:0]
	d.pendingValue = d.pendingValue[:0]
	d.inValue = false
	d.Done = false
}

// Reset prepares the driver (and its underlying Parser) for the next
// message of the given kind, e.g. the next pipelined request on a
// keep-alive connection.
func (d *Driver) Reset(kind Kind) {
	d.init(kind)
}

// Feed drives the parser forward, returning the number of input bytes
// consumed (spec §6). Check d.P.Err() for a latched error afterwards.
func (d *Driver) Feed(data []byte) int {
	n, _ := d.P.Feed(data)
	return n
}

// FeedEOF signals end-of-stream; see Parser.FeedEOF.
func (d *Driver) FeedEOF() ErrorCode {
	return d.P.FeedEOF()
}

func (d *Driver) onMessageBegin(p *Parser) int {
	d.Doc.Reset()
	d.Doc.Kind = p.Kind
	d.pendingName = d.pendingName[:0]
	d.pendingValue = d.pendingValue[:0]
	d.inValue = false
	return 0
}

func (d *Driver) onURL(p *Parser, data []byte) ErrorCode {
	d.Doc.TargetOrReason = d.Doc.TargetOrReason + string(data)
	return OK
}

func (d *Driver) onStatus(p *Parser, data []byte) ErrorCode {
	d.Doc.TargetOrReason = d.Doc.TargetOrReason + string(data)
	return OK
}

func (d *Driver) onHeaderField(p *Parser, data []byte) ErrorCode {
	if d.inValue {
		d.flushHeader()
	}
	d.pendingName = append(d.pendingName, data...)
	return OK
}

func (d *Driver) onHeaderValue(p *Parser, data []byte) ErrorCode {
	d.pendingValue = append(d.pendingValue, data...)
	d.inValue = true
	return OK
}

func (d *Driver) flushHeader() {
	if len(d.pendingName) == 0 {
		return
	}
	d.Doc.Headers = append(d.Doc.Headers, HeaderField{
		Name:  string(d.pendingName),
		Value: string(d.pendingValue),
	})
	d.pendingName = d.pendingName[:0]
	d.pendingValue = d.pendingValue[:0]
	d.inValue = false
}

func (d *Driver) onHeadersComplete(p *Parser) int {
	d.flushHeader()
	d.Doc.Kind = p.Kind
	d.Doc.Major, d.Doc.Minor = p.Major, p.Minor
	d.Doc.Method = p.Method
	d.Doc.StatusCode = p.StatusCode
	return 0
}

func (d *Driver) onBody(p *Parser, data []byte) ErrorCode {
	d.Doc.Body = append(d.Doc.Body, data...)
	return OK
}

func (d *Driver) onChunkHeader(p *Parser) int  { return 0 }
func (d *Driver) onChunkComplete(p *Parser) int { return 0 }

func (d *Driver) onMessageComplete(p *Parser) int {
	d.flushHeader() // trailers, if any
	// HTTP/0.9 requests complete without a headers_complete event, so the
	// start-line results are copied here as well.
	d.Doc.Kind = p.Kind
	d.Doc.Major, d.Doc.Minor = p.Major, p.Minor
	d.Doc.Method = p.Method
	d.Doc.Upgrade = p.Upgrade
	d.Done = true
	return 0
}
