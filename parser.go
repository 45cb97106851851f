// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

// pState is the main parser state (spec §4.4's ~60-state machine,
// consolidated here into the states that actually differ in behavior; a
// few of the teacher's/original_source's narrowly single-purpose states
// are folded into a shared one plus a mode flag, per the design notes'
// "the contract is the transition set, not the dispatch technique").
type pState uint8

const (
	sStartReqOrRes pState = iota
	sStartReq
	sStartRes
	sReqMethod
	sReqSpacesBeforeURL
	sReqURL
	sReqHTTPOrCRLF // after URL: either "HTTP/" (or "ICE/" for SOURCE) or CR/LF (0.9)
	sVersionLiteral
	sVersionMajor
	sVersionDot
	sVersionMinor
	sReqLineCR
	sReqLineLF

	sResSpacesBeforeStatus
	sResStatusCode
	sResReason
	sResLineCR
	sResLineLF

	sHeaderFieldStart
	sHeaderField
	sHeaderValueDiscardWS
	sHeaderValueStart
	sHeaderValue
	sHeaderValueCR
	sHeaderValueLF
	sHeaderFieldStartOrFold // disambiguates obs-fold continuation from end-of-header
	sHeaderAlmostDone       // blank-line CR seen at a field-start position
	sHeadersDone

	sBodyIdentity
	sBodyIdentityEOF
	sChunkSizeStart
	sChunkSize
	sChunkSizeExt
	sChunkSizeCR
	sChunkSizeLF
	sChunkData
	sChunkDataCR
	sChunkDataLF

	sMessageDone
	sDead
)

// runKind identifies which data callback an active byte-run belongs to.
type runKind uint8

const (
	runNone runKind = iota
	runURL
	runStatus
	runHeaderField
	runHeaderValue
	runBody
)

// ContentLengthUnset is the sentinel content-length value meaning "no
// Content-Length header has been seen" (spec §3: "initialized to ALL-ONES
// meaning unset").
const ContentLengthUnset = ^uint64(0)

// DefaultMaxHeaderSize is the process-wide default header-block byte
// ceiling new parsers adopt unless SetMaxHeaderSize overrides it on a
// specific instance (spec §4.4, §9 design note).
var DefaultMaxHeaderSize uint32 = 80 * 1024

// SetDefaultMaxHeaderSize changes the process-wide default for parsers
// created after this call. It does not affect already-initialized parsers.
func SetDefaultMaxHeaderSize(n uint32) { DefaultMaxHeaderSize = n }

// Parser is a streaming, resumable HTTP/1.x message recognizer (spec §4.4).
// It owns no I/O and retains no input bytes: fields it wants to preserve
// across Feed calls must be copied out by the caller's callbacks (spec §3
// "Ownership"). Zero value is not usable; call Init first.
type Parser struct {
	Kind   Kind
	Major  uint8
	Minor  uint8
	Method Method

	StatusCode uint16

	Flags                Flags
	UsesTransferEncoding bool
	Nread                uint32
	ContentLength        uint64
	Upgrade              bool

	Lenient            bool
	AllowChunkedLength bool
	MaxHeaderSize      uint32

	UserData interface{}

	errCode ErrorCode
	paused  bool

	state pState

	methodM  methodMatcher
	urlState urlState

	hdrName      headerNameMatcher
	curHdrKind   headerKind
	clAcc        contentLengthAcc
	teAcc        tokenListAcc
	connAcc      tokenListAcc
	inTrailer bool

	chunkHex     uint64
	chunkHexSeen bool
	chunkRemain  uint64

	verLitIdx   int
	usingIceLit bool

	ambigBegun    bool
	ambigLitIdx   int
	ambigLitAlive bool

	run      runKind
	runStart int

	settings *Settings
}

// Init (re)initializes the parser for a new message of the given kind.
// Settings may be nil (no callbacks fire, but framing is still tracked).
func (p *Parser) Init(kind Kind, settings *Settings) {
	maxHdr := p.MaxHeaderSize
	if maxHdr == 0 {
		maxHdr = DefaultMaxHeaderSize
	}
	lenient := p.Lenient
	allowCL := p.AllowChunkedLength
	ud := p.UserData
	*p = Parser{}
	p.Kind = kind
	p.Major, p.Minor = 1, 1
	p.ContentLength = ContentLengthUnset
	p.MaxHeaderSize = maxHdr
	p.Lenient = lenient
	p.AllowChunkedLength = allowCL
	p.UserData = ud
	p.settings = settings
	switch kind {
	case KindRequest:
		p.state = sStartReq
	case KindResponse:
		p.state = sStartRes
	default:
		p.state = sStartReqOrRes
	}
}

// Reset re-initializes the parser, preserving Kind, UserData, Lenient,
// AllowChunkedLength and MaxHeaderSize (spec §6 "reset()").
func (p *Parser) Reset() {
	p.Init(p.Kind, p.settings)
}

// SetMaxHeaderSize overrides the process-wide DefaultMaxHeaderSize for this
// parser instance alone. Call before Init (or before the first Feed).
func (p *Parser) SetMaxHeaderSize(n uint32) { p.MaxHeaderSize = n }

// FeedEOF signals that the transport reached end-of-stream. It completes an
// identity-EOF-framed message, accepts EOF between messages, and fails with
// ErrInvalidEOFState if EOF arrives mid-header or mid-body (spec §4.4, §6).
func (p *Parser) FeedEOF() ErrorCode {
	if p.errCode != OK {
		return p.errCode
	}
	switch p.state {
	case sMessageDone, sStartReqOrRes, sStartReq, sStartRes:
		return OK
	case sBodyIdentityEOF:
		p.state = sMessageDone
		if err := p.notifyMessageComplete(); err != OK {
			p.fail(err)
			return err
		}
		return OK
	default:
		p.fail(ErrInvalidEOFState)
		return ErrInvalidEOFState
	}
}

// Err returns the latched error code (OK if none).
func (p *Parser) Err() ErrorCode { return p.errCode }

// BodyIsFinal reports whether the message is fully parsed.
func (p *Parser) BodyIsFinal() bool { return p.state == sMessageDone }

// ShouldKeepAlive reports whether the connection should remain open for a
// further message, per spec §4.4.
func (p *Parser) ShouldKeepAlive() bool {
	if p.state == sBodyIdentityEOF {
		return false // framing requires EOF, can't keep the connection
	}
	if p.Major > 1 || (p.Major == 1 && p.Minor >= 1) {
		return !p.Flags.Has(FlagConnClose)
	}
	return p.Flags.Has(FlagConnKeepAlive)
}

// Pause sets or clears the PAUSED condition (spec §4.4, §7). Feed is a
// no-op (returns 0 bytes consumed, no error-state change) while paused.
func (p *Parser) Pause(on bool) {
	if on {
		if p.errCode == OK {
			p.paused = true
		}
	} else {
		p.paused = false
	}
}

func (p *Parser) fail(e ErrorCode) {
	p.errCode = e
}

func (p *Parser) startRun(kind runKind, i int) {
	if p.run == runNone {
		p.run = kind
		p.runStart = i
	}
}

func (p *Parser) emit(kind runKind, chunk []byte) ErrorCode {
	if p.settings == nil {
		return OK
	}
	var cb DataCallback
	cbErr := OK
	switch kind {
	case runURL:
		cb, cbErr = p.settings.OnURL, ErrCBURL
	case runStatus:
		cb, cbErr = p.settings.OnStatus, ErrCBStatus
	case runHeaderField:
		cb, cbErr = p.settings.OnHeaderField, ErrCBHeaderField
	case runHeaderValue:
		cb, cbErr = p.settings.OnHeaderValue, ErrCBHeaderValue
	case runBody:
		cb, cbErr = p.settings.OnBody, ErrCBBody
	}
	if p.settings.callData(p, cb, chunk) != OK {
		return cbErr
	}
	return OK
}

func (p *Parser) endRun(data []byte, i int) ErrorCode {
	if p.run == runNone {
		return OK
	}
	kind := p.run
	chunk := data[p.runStart:i]
	p.run = runNone
	return p.emit(kind, chunk)
}

// headerAccounted reports whether state counts toward Nread (spec §4.4:
// "every byte traversed while PARSING_HEADER(state) is true").
func headerAccounted(s pState) bool {
	switch s {
	case sStartReqOrRes, sStartReq, sStartRes,
		sReqMethod, sReqSpacesBeforeURL, sReqURL, sReqHTTPOrCRLF,
		sVersionLiteral, sVersionMajor, sVersionDot, sVersionMinor,
		sReqLineCR, sReqLineLF,
		sResSpacesBeforeStatus, sResStatusCode, sResReason,
		sResLineCR, sResLineLF,
		sHeaderFieldStart, sHeaderField, sHeaderValueDiscardWS, sHeaderValueStart,
		sHeaderValue, sHeaderValueCR, sHeaderValueLF, sHeaderFieldStartOrFold, sHeaderAlmostDone,
		sChunkSizeStart, sChunkSize, sChunkSizeExt, sChunkSizeCR, sChunkSizeLF:
		return true
	}
	return false
}

// Feed drives the state machine over data, returning the number of bytes
// consumed. It stops early on error or once the message is complete
// (including headers that complete with an upgrade handoff pending, spec
// §4.4 "feed"). The paused state is checked only on entry: a Pause(true)
// made from inside a callback does not stop the current call.
func (p *Parser) Feed(data []byte) (int, ErrorCode) {
	if p.paused {
		return 0, OK
	}
	if p.errCode != OK {
		return 0, p.errCode
	}
	n := len(data)
	if p.run != runNone {
		p.runStart = 0
	}

	i := 0
feedLoop:
	for i < n {
		if p.state == sMessageDone || p.state == sDead {
			break feedLoop
		}

		if headerAccounted(p.state) {
			p.Nread++
			if p.Nread > p.MaxHeaderSize {
				p.fail(ErrHeaderOverflow)
				break feedLoop
			}
		}

		c := data[i]
		consumed := true

		switch p.state {
		case sStartReqOrRes:
			// Kind is not yet known: a response starts with the literal
			// "HTTP/" and a request starts with a method token, and both
			// can share a prefix (e.g. none of our methods collide with
			// "HTTP/", but disambiguation still needs a few bytes of
			// lookahead, tracked byte-by-byte rather than buffered).
			if c == '\r' || c == '\n' {
				break // tolerate leading blank lines between messages
			}
			if !p.ambigBegun {
				if err := p.beginMessage(); err != OK {
					p.fail(err)
					break feedLoop
				}
				p.ambigBegun = true
				p.methodM = newMethodMatcher()
				p.ambigLitIdx = 0
				p.ambigLitAlive = true
			}
			methodAlive := p.methodM.feed(c)
			const lit = "HTTP/"
			if p.ambigLitAlive {
				if p.ambigLitIdx < len(lit) && c == lit[p.ambigLitIdx] {
					p.ambigLitIdx++
				} else {
					p.ambigLitAlive = false
				}
			}
			switch {
			case !methodAlive && !p.ambigLitAlive:
				p.fail(ErrInvalidMethod)
				break feedLoop
			case !methodAlive:
				p.Kind = KindResponse
				p.verLitIdx = p.ambigLitIdx
				p.usingIceLit = false
				p.state = sVersionLiteral
			case !p.ambigLitAlive:
				p.Kind = KindRequest
				p.state = sReqMethod
			default:
				// still ambiguous; wait for the next byte
			}

		case sStartReq:
			if c == '\r' || c == '\n' {
				break // tolerate leading blank lines
			}
			if err := p.beginMessage(); err != OK {
				p.fail(err)
				break feedLoop
			}
			p.methodM = newMethodMatcher()
			p.state = sReqMethod
			consumed = false

		case sStartRes:
			if c == '\r' || c == '\n' {
				break
			}
			if err := p.beginMessage(); err != OK {
				p.fail(err)
				break feedLoop
			}
			p.state = sVersionLiteral
			p.verLitIdx = 0
			consumed = false

		case sReqMethod:
			if c == ' ' {
				p.Method = p.methodM.match()
				if p.Method == MUndef {
					p.fail(ErrInvalidMethod)
					break feedLoop
				}
				p.state = sReqSpacesBeforeURL
			} else {
				if !p.methodM.feed(c) {
					p.fail(ErrInvalidMethod)
					break feedLoop
				}
			}

		case sReqSpacesBeforeURL:
			switch {
			case c == ' ':
				// tolerate extra spaces
			case c == '\r' || c == '\n':
				p.fail(ErrInvalidURL)
				break feedLoop
			default:
				p.urlState = uStart
				if p.Method == MConnect {
					p.urlState = uServerStart
				}
				p.state = sReqURL
				consumed = false
			}

		case sReqURL:
			switch c {
			case ' ', '\r', '\n':
				if err := p.endRun(data, i); err != OK {
					p.fail(err)
					break feedLoop
				}
				if c == ' ' {
					p.state = sReqHTTPOrCRLF
				} else {
					// HTTP/0.9: terminated without a version.
					p.Major, p.Minor = 0, 9
					p.state = sReqLineCR
					consumed = false
				}
			default:
				ns := urlStep(p.urlState, c, p.Lenient)
				if ns == uDead {
					p.fail(ErrInvalidURL)
					break feedLoop
				}
				p.urlState = ns
				p.startRun(runURL, i)
			}

		case sReqHTTPOrCRLF:
			switch {
			case c == '\r' || c == '\n':
				p.Major, p.Minor = 0, 9
				p.state = sReqLineCR
				consumed = false
			default:
				p.state = sVersionLiteral
				p.verLitIdx = 0
				consumed = false
			}

		case sVersionLiteral:
			if err := p.feedVersionLiteral(c); err != OK {
				p.fail(err)
				break feedLoop
			}
			target := 5
			if p.usingIceLit {
				target = 4
			}
			if p.verLitIdx == target {
				p.state = sVersionMajor
			}

		case sVersionMajor:
			if !isNum(c) {
				p.fail(ErrInvalidVersion)
				break feedLoop
			}
			p.Major = c - '0'
			p.state = sVersionDot

		case sVersionDot:
			if c != '.' {
				p.fail(ErrInvalidVersion)
				break feedLoop
			}
			p.state = sVersionMinor

		case sVersionMinor:
			if !isNum(c) {
				p.fail(ErrInvalidVersion)
				break feedLoop
			}
			p.Minor = c - '0'
			if p.Kind == KindRequest {
				p.state = sReqLineCR
			} else {
				p.state = sResSpacesBeforeStatus
			}

		case sReqLineCR:
			if c == '\r' {
				p.state = sReqLineLF
			} else if c == '\n' {
				p.state = sReqLineLF
				consumed = false
			} else {
				p.fail(ErrInvalidVersion)
				break feedLoop
			}

		case sReqLineLF:
			if c != '\n' {
				p.fail(ErrLFExpected)
				break feedLoop
			}
			if p.Major == 0 && p.Minor == 9 {
				// HTTP/0.9 has no header block and no body: the
				// request-line's CRLF ends the message outright.
				p.state = sMessageDone
				if err := p.notifyMessageComplete(); err != OK {
					p.fail(err)
					break feedLoop
				}
			} else {
				p.state = sHeaderFieldStart
			}

		case sResSpacesBeforeStatus:
			switch {
			case c == ' ':
			case isNum(c):
				p.StatusCode = 0
				p.state = sResStatusCode
				consumed = false
			default:
				p.fail(ErrInvalidStatus)
				break feedLoop
			}

		case sResStatusCode:
			if isNum(c) {
				p.StatusCode = p.StatusCode*10 + uint16(c-'0')
				if p.StatusCode > 999 {
					p.fail(ErrInvalidStatus)
					break feedLoop
				}
			} else if c == ' ' {
				if p.StatusCode < 100 {
					p.fail(ErrInvalidStatus)
					break feedLoop
				}
				p.state = sResReason
			} else {
				p.fail(ErrInvalidStatus)
				break feedLoop
			}

		case sResReason:
			switch c {
			case '\r', '\n':
				if err := p.endRun(data, i); err != OK {
					p.fail(err)
					break feedLoop
				}
				p.state = sResLineCR
				consumed = false
			default:
				p.startRun(runStatus, i)
			}

		case sResLineCR:
			if c == '\r' {
				p.state = sResLineLF
			} else if c == '\n' {
				p.state = sResLineLF
				consumed = false
			} else {
				p.fail(ErrInvalidStatus)
				break feedLoop
			}

		case sResLineLF:
			if c != '\n' {
				p.fail(ErrLFExpected)
				break feedLoop
			}
			p.state = sHeaderFieldStart

		case sHeaderFieldStart:
			if c == '\r' {
				p.state = sHeaderAlmostDone
			} else if c == '\n' {
				p.state = sHeaderAlmostDone
				consumed = false
			} else {
				p.hdrName = newHeaderNameMatcher()
				p.curHdrKind = hkOther
				p.state = sHeaderField
				consumed = false
			}

		case sHeaderField:
			if c == ':' {
				p.curHdrKind = p.hdrName.kind()
				if err := p.endRun(data, i); err != OK {
					p.fail(err)
					break feedLoop
				}
				p.beginHeaderValueAccumulator()
				p.state = sHeaderValueDiscardWS
			} else if isToken(c) {
				p.startRun(runHeaderField, i)
				// Bulk-advance fast path (spec §9 design notes): the
				// classifier has already certified data[i] a token byte, so
				// scan ahead for the run of further token bytes in this
				// buffer and feed/account for all of them at once instead
				// of re-entering the dispatch switch per byte.
				j := skipToken(data, i+1)
				for k := i; k < j; k++ {
					p.hdrName.feed(data[k])
				}
				if extra := j - i - 1; extra > 0 {
					p.Nread += uint32(extra)
					if p.Nread > p.MaxHeaderSize {
						p.fail(ErrHeaderOverflow)
						break feedLoop
					}
				}
				i = j
				consumed = false
				continue feedLoop
			} else {
				p.fail(ErrInvalidHeaderToken)
				break feedLoop
			}

		case sHeaderValueDiscardWS:
			switch c {
			case ' ', '\t':
				// discard OWS before the value; bulk-skip the rest of the
				// run in this buffer rather than looping byte by byte.
				j := skipWS(data, i+1)
				if extra := j - i - 1; extra > 0 {
					p.Nread += uint32(extra)
					if p.Nread > p.MaxHeaderSize {
						p.fail(ErrHeaderOverflow)
						break feedLoop
					}
				}
				i = j
				consumed = false
				continue feedLoop
			case '\r', '\n':
				p.state = sHeaderValueCR
				consumed = false
			default:
				p.state = sHeaderValueStart
				consumed = false
			}

		case sHeaderValueStart:
			p.state = sHeaderValue
			consumed = false

		case sHeaderValue:
			switch c {
			case '\r', '\n':
				if err := p.endRun(data, i); err != OK {
					p.fail(err)
					break feedLoop
				}
				p.state = sHeaderValueCR
				consumed = false
			default:
				if !isHeaderChar(c, p.Lenient) {
					p.fail(ErrInvalidHeaderToken)
					break feedLoop
				}
				if err := p.feedHeaderValueByte(c); err != OK {
					p.fail(err)
					break feedLoop
				}
				p.startRun(runHeaderValue, i)
			}

		case sHeaderValueCR:
			if c == '\r' {
				p.state = sHeaderValueLF
			} else if c == '\n' {
				p.state = sHeaderValueLF
				consumed = false
			} else {
				p.fail(ErrInvalidHeaderToken)
				break feedLoop
			}

		case sHeaderValueLF:
			if c != '\n' {
				p.fail(ErrLFExpected)
				break feedLoop
			}
			// peek-like handling of folding is done at next iteration: a
			// following SP/HTAB means this CRLF was a fold, not the end of
			// the header.
			p.state = sHeaderFieldStartOrFold

		case sHeaderFieldStartOrFold:
			switch c {
			case ' ', '\t':
				// obs-fold: this CRLF was a continuation, not the header's
				// end. The fold's whitespace is itself a legal value byte
				// (RFC 7230 §3.2.4) and must be preserved, so feed it
				// through the normal value-accumulation path rather than
				// the post-colon OWS-discard state sHeaderValueDiscardWS
				// shares with the first byte after ':'.
				p.state = sHeaderValue
				consumed = false
			default:
				if err := p.finishHeader(); err != OK {
					p.fail(err)
					break feedLoop
				}
				p.state = sHeaderFieldStart
				consumed = false
			}

		case sHeaderAlmostDone:
			if c != '\n' {
				p.fail(ErrLFExpected)
				break feedLoop
			}
			if p.inTrailer {
				// The trailer's blank line completes the last (zero-size) chunk.
				if err := p.notifyChunkComplete(); err != OK {
					p.fail(err)
					break feedLoop
				}
				p.state = sMessageDone
				if err := p.notifyMessageComplete(); err != OK {
					p.fail(err)
					break feedLoop
				}
			} else {
				if err := p.chooseBodyFraming(); err != OK {
					p.fail(err)
					break feedLoop
				}
			}

		case sBodyIdentity:
			avail := n - i
			take := avail
			if uint64(take) > p.ContentLength {
				take = int(p.ContentLength)
			}
			p.startRun(runBody, i)
			if err := p.endRun(data, i+take); err != OK {
				p.fail(err)
				break feedLoop
			}
			p.ContentLength -= uint64(take)
			i += take
			consumed = false
			if p.ContentLength == 0 {
				p.state = sMessageDone
				if err := p.notifyMessageComplete(); err != OK {
					p.fail(err)
					break feedLoop
				}
			}
			continue feedLoop

		case sBodyIdentityEOF:
			p.startRun(runBody, i)
			if err := p.endRun(data, n); err != OK {
				p.fail(err)
				break feedLoop
			}
			i = n
			consumed = false
			continue feedLoop

		case sChunkSizeStart:
			if !isHex(c) {
				p.fail(ErrInvalidChunkSize)
				break feedLoop
			}
			p.chunkHex = 0
			p.chunkHexSeen = false
			p.state = sChunkSize
			consumed = false

		case sChunkSize:
			if isHex(c) {
				const maxDiv16 = (^uint64(0) - 15) / 16
				if p.chunkHex > maxDiv16 {
					p.fail(ErrInvalidChunkSize)
					break feedLoop
				}
				p.chunkHex = p.chunkHex*16 + uint64(unhex(c))
				p.chunkHexSeen = true
			} else if c == ';' {
				p.state = sChunkSizeExt
			} else if c == '\r' || c == '\n' {
				if !p.chunkHexSeen {
					p.fail(ErrInvalidChunkSize)
					break feedLoop
				}
				p.state = sChunkSizeCR
				consumed = false
			} else {
				p.fail(ErrInvalidChunkSize)
				break feedLoop
			}

		case sChunkSizeExt:
			switch c {
			case '\r', '\n':
				p.state = sChunkSizeCR
				consumed = false
			default:
				// chunk-extension bytes are recognized structurally and
				// skipped, never decoded (spec §1 Non-goals).
			}

		case sChunkSizeCR:
			if c == '\r' {
				p.state = sChunkSizeLF
			} else if c == '\n' {
				p.state = sChunkSizeLF
				consumed = false
			} else {
				p.fail(ErrInvalidChunkSize)
				break feedLoop
			}

		case sChunkSizeLF:
			if c != '\n' {
				p.fail(ErrLFExpected)
				break feedLoop
			}
			p.Nread = 0 // reset header-style accounting after each chunk-size line
			if err := p.notifyChunkHeader(); err != OK {
				p.fail(err)
				break feedLoop
			}
			if p.chunkHex == 0 {
				p.inTrailer = true
				p.state = sHeaderFieldStart
			} else {
				p.chunkRemain = p.chunkHex
				p.state = sChunkData
			}

		case sChunkData:
			avail := n - i
			take := avail
			if uint64(take) > p.chunkRemain {
				take = int(p.chunkRemain)
			}
			p.startRun(runBody, i)
			if err := p.endRun(data, i+take); err != OK {
				p.fail(err)
				break feedLoop
			}
			p.chunkRemain -= uint64(take)
			i += take
			consumed = false
			if p.chunkRemain == 0 {
				p.state = sChunkDataCR
			}
			continue feedLoop

		case sChunkDataCR:
			if c == '\r' {
				p.state = sChunkDataLF
			} else if c == '\n' {
				p.state = sChunkDataLF
				consumed = false
			} else {
				p.fail(ErrInvalidChunkSize)
				break feedLoop
			}

		case sChunkDataLF:
			if c != '\n' {
				p.fail(ErrLFExpected)
				break feedLoop
			}
			if err := p.notifyChunkComplete(); err != OK {
				p.fail(err)
				break feedLoop
			}
			p.state = sChunkSizeStart

		default:
			p.fail(ErrInvalidInternalState)
			break feedLoop
		}

		if consumed {
			i++
		}
	}

	if p.errCode == OK && p.run != runNone && i == n {
		if err := p.endRunPartial(data, n); err != OK {
			p.fail(err)
		}
	}
	return i, p.errCode
}

// endRunPartial flushes an in-progress run at buffer exhaustion without
// clearing p.run, so the next Feed call knows to continue it from offset 0.
func (p *Parser) endRunPartial(data []byte, n int) ErrorCode {
	if p.run == runNone {
		return OK
	}
	chunk := data[p.runStart:n]
	return p.emit(p.run, chunk)
}

// feedVersionLiteral matches "HTTP/" byte by byte, with the icecast
// interop exemption: for SOURCE requests, "ICE/" is also accepted in its
// place (spec §4.4, §9, original_source's SOURCE handling).
func (p *Parser) feedVersionLiteral(c byte) ErrorCode {
	if p.verLitIdx == 0 {
		p.usingIceLit = c == 'I' && p.Kind == KindRequest && p.Method == MSource
	}
	lit := "HTTP/"
	if p.usingIceLit {
		lit = "ICE/"
	}
	if p.verLitIdx >= len(lit) || c != lit[p.verLitIdx] {
		return ErrInvalidConstant
	}
	p.verLitIdx++
	return OK
}
