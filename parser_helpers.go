// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

// beginMessage fires message_begin. Called the instant the first
// non-CRLF byte of a new message is seen, before any method/URL/version
// byte is processed, so callback ordering matches Settings' documented
// contract (spec §5).
func (p *Parser) beginMessage() ErrorCode {
	if p.settings == nil {
		return OK
	}
	if p.settings.callNotify(p, p.settings.OnMessageBegin) != 0 {
		return ErrCBMessageBegin
	}
	return OK
}

func (p *Parser) notifyMessageComplete() ErrorCode {
	if p.settings == nil {
		return OK
	}
	if p.settings.callNotify(p, p.settings.OnMessageComplete) != 0 {
		return ErrCBMessageComplete
	}
	return OK
}

func (p *Parser) notifyChunkHeader() ErrorCode {
	if p.settings == nil {
		return OK
	}
	if p.settings.callNotify(p, p.settings.OnChunkHeader) != 0 {
		return ErrCBChunkHeader
	}
	return OK
}

func (p *Parser) notifyChunkComplete() ErrorCode {
	if p.settings == nil {
		return OK
	}
	if p.settings.callNotify(p, p.settings.OnChunkComplete) != 0 {
		return ErrCBChunkComplete
	}
	return OK
}

// beginHeaderValueAccumulator resets whichever scratch accumulator the
// just-classified header name needs, called once at the ':' that ends the
// header field (spec §4.4 bullet 5).
func (p *Parser) beginHeaderValueAccumulator() {
	switch p.curHdrKind {
	case hkContentLength:
		p.clAcc.reset()
	case hkTransferEncoding:
		p.teAcc.reset(true) // STRICT_TOKEN: reject stray bytes inside a token
	case hkConnection, hkProxyConnection:
		p.connAcc.reset(false)
	}
}

// feedHeaderValueByte routes one header-value byte into the relevant
// framing accumulator, if the current header is one framing cares about.
func (p *Parser) feedHeaderValueByte(c byte) ErrorCode {
	switch p.curHdrKind {
	case hkContentLength:
		if !p.clAcc.feed(c) {
			return ErrInvalidContentLength
		}
	case hkTransferEncoding:
		if !p.teAcc.feed(c) {
			return ErrInvalidTransferEncoding
		}
	case hkConnection, hkProxyConnection:
		if !p.connAcc.feed(c) {
			return ErrInvalidHeaderToken
		}
		if c == ',' {
			p.checkConnToken()
		}
	}
	return OK
}

// checkConnToken applies the "any occurrence" rule for Connection/
// Proxy-Connection tokens: every comma-delimited token is checked as it
// finalizes, not just the last one (spec §4.4, in contrast with
// Transfer-Encoding's "only the final token matters" rule for "chunked").
func (p *Parser) checkConnToken() {
	if p.connAcc.lastEquals("keep-alive") {
		p.Flags.Set(FlagConnKeepAlive)
	}
	if p.connAcc.lastEquals("close") {
		p.Flags.Set(FlagConnClose)
	}
	if p.connAcc.lastEquals("upgrade") {
		p.Flags.Set(FlagConnUpgrade)
	}
}

// finishHeader is called once a header's value run is complete (at the
// CRLF that isn't followed by a fold), applying the framing-relevant
// header's accumulated effect (spec §4.4).
func (p *Parser) finishHeader() ErrorCode {
	switch p.curHdrKind {
	case hkContentLength:
		if !p.clAcc.sawDigit {
			return ErrInvalidContentLength
		}
		if p.UsesTransferEncoding && !p.AllowChunkedLength {
			return ErrUnexpectedContentLength
		}
		if p.Flags.Has(FlagContentLengthSeen) && p.ContentLength != p.clAcc.val {
			return ErrUnexpectedContentLength // conflicting duplicate Content-Length
		}
		p.ContentLength = p.clAcc.val
		p.Flags.Set(FlagContentLengthSeen)

	case hkTransferEncoding:
		p.teAcc.finalizeToken()
		if p.Flags.Has(FlagContentLengthSeen) && !p.AllowChunkedLength {
			return ErrUnexpectedContentLength
		}
		p.UsesTransferEncoding = true
		if p.teAcc.lastEquals("chunked") {
			p.Flags.Set(FlagChunked)
		}

	case hkConnection, hkProxyConnection:
		p.connAcc.finalizeToken()
		p.checkConnToken()

	case hkUpgrade:
		p.Flags.Set(FlagUpgrade)
	}
	return OK
}

// chooseBodyFraming implements the body-framing priority table (spec
// §4.4): callback override, CONNECT/upgrade handoff, no-body statuses,
// chunked, Content-Length, then identity-to-EOF for responses, else no
// body. Grounded directly on original_source's s_headers_almost_done /
// s_headers_done pair (layer.hpp ~2270-2340).
func (p *Parser) chooseBodyFraming() ErrorCode {
	if p.Kind == KindRequest && p.UsesTransferEncoding && !p.Flags.Has(FlagChunked) && !p.Lenient {
		return ErrInvalidTransferEncoding
	}

	// Set before the headers_complete callback runs, so the callback can
	// observe it. For responses, Upgrade+Connection:upgrade are binding
	// only on a 101 Switching Protocols response; on any other response
	// they are purely informational (spec §4.4).
	if p.Flags.Has(FlagUpgrade) && p.Flags.Has(FlagConnUpgrade) {
		p.Upgrade = p.Kind == KindRequest || p.StatusCode == 101
	} else {
		p.Upgrade = p.Kind == KindRequest && p.Method == MConnect
	}

	rv := 0
	if p.settings != nil {
		rv = p.settings.callNotify(p, p.settings.OnHeadersComplete)
	}
	if rv != 0 && rv != 1 && rv != 2 {
		return ErrCBHeadersComplete
	}
	if rv == 2 {
		p.Upgrade = true
	}
	if rv == 1 || rv == 2 {
		p.Flags.Set(FlagSkipBody)
	}

	if p.Kind == KindResponse && statusRequiresNoBody(int(p.StatusCode)) {
		p.Flags.Set(FlagSkipBody)
	}

	// hasDeclaredBody mirrors the original's "hasBody": a body is declared
	// only by chunked framing or a nonzero Content-Length, never merely by
	// Transfer-Encoding's presence.
	hasDeclaredBody := p.Flags.Has(FlagChunked) ||
		(p.Flags.Has(FlagContentLengthSeen) && p.ContentLength != 0)

	if p.Upgrade && (p.Method == MConnect || p.Flags.Has(FlagSkipBody) || !hasDeclaredBody) {
		// Exit: the rest of the message, if any, is a different protocol.
		p.state = sMessageDone
		return p.notifyMessageComplete()
	}

	switch {
	case p.Flags.Has(FlagSkipBody):
		p.state = sMessageDone
		return p.notifyMessageComplete()
	case p.Flags.Has(FlagChunked):
		p.state = sChunkSizeStart
		return OK
	case p.UsesTransferEncoding && (p.Kind == KindResponse || p.Lenient):
		// TE present without a final "chunked" coding: lenient requests and
		// all responses fall back to identity-to-EOF framing (spec §4.4
		// body-framing table); strict requests already failed above.
		p.state = sBodyIdentityEOF
		return OK
	case p.Flags.Has(FlagContentLengthSeen):
		if p.ContentLength == 0 {
			p.state = sMessageDone
			return p.notifyMessageComplete()
		}
		p.state = sBodyIdentity
		return OK
	case p.Kind == KindResponse:
		p.state = sBodyIdentityEOF
		return OK
	default:
		// request with neither Content-Length nor Transfer-Encoding: no body.
		p.state = sMessageDone
		return p.notifyMessageComplete()
	}
}
