// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

// ErrorCode is the flat, closed enumeration of parser outcomes. It plays
// the role the teacher's ErrorHdr plays for httpsp: a small integer that
// latches the parser on failure, distinct from Go's error interface. OK is
// the zero value so a freshly zeroed Parser reports no error.
type ErrorCode uint8

const (
	OK ErrorCode = iota

	// Callback-related errors: a non-zero return from a callback aborts
	// parsing with the matching CB_* code (spec §4.5, §7).
	ErrCBMessageBegin
	ErrCBURL
	ErrCBHeaderField
	ErrCBHeaderValue
	ErrCBHeadersComplete
	ErrCBBody
	ErrCBMessageComplete
	ErrCBStatus
	ErrCBChunkHeader
	ErrCBChunkComplete

	// Parsing-related errors.
	ErrInvalidEOFState
	ErrHeaderOverflow
	ErrClosedConnection
	ErrInvalidVersion
	ErrInvalidStatus
	ErrInvalidMethod
	ErrInvalidURL
	ErrInvalidHost
	ErrInvalidPort
	ErrInvalidPath
	ErrInvalidQueryString
	ErrInvalidFragment
	ErrLFExpected
	ErrInvalidHeaderToken
	ErrInvalidContentLength
	ErrUnexpectedContentLength
	ErrInvalidChunkSize
	ErrInvalidConstant
	ErrInvalidInternalState
	ErrStrict
	ErrPaused
	ErrUnknown
	ErrInvalidTransferEncoding

	errMax
)

var errDescriptions = [errMax]string{
	OK:                         "success",
	ErrCBMessageBegin:          "the message_begin callback failed",
	ErrCBURL:                   "the url callback failed",
	ErrCBHeaderField:           "the header_field callback failed",
	ErrCBHeaderValue:           "the header_value callback failed",
	ErrCBHeadersComplete:       "the headers_complete callback failed",
	ErrCBBody:                  "the body callback failed",
	ErrCBMessageComplete:       "the message_complete callback failed",
	ErrCBStatus:                "the status callback failed",
	ErrCBChunkHeader:           "the chunk_header callback failed",
	ErrCBChunkComplete:         "the chunk_complete callback failed",
	ErrInvalidEOFState:         "stream ended at an unexpected time",
	ErrHeaderOverflow:          "too many header bytes seen; overflow detected",
	ErrClosedConnection:        "data received after completed connection: close message",
	ErrInvalidVersion:          "invalid HTTP version",
	ErrInvalidStatus:           "invalid HTTP status code",
	ErrInvalidMethod:           "invalid HTTP method",
	ErrInvalidURL:              "invalid URL",
	ErrInvalidHost:             "invalid host",
	ErrInvalidPort:             "invalid port",
	ErrInvalidPath:             "invalid path",
	ErrInvalidQueryString:      "invalid query string",
	ErrInvalidFragment:         "invalid fragment",
	ErrLFExpected:              "LF character expected",
	ErrInvalidHeaderToken:      "invalid character in header",
	ErrInvalidContentLength:    "invalid character in content-length header",
	ErrUnexpectedContentLength: "unexpected content-length header",
	ErrInvalidChunkSize:        "invalid character in chunk size header",
	ErrInvalidConstant:         "invalid constant string",
	ErrInvalidInternalState:    "encountered unexpected internal state",
	ErrStrict:                  "strict mode assertion failed",
	ErrPaused:                  "parser is paused",
	ErrUnknown:                 "an unknown error occurred",
	ErrInvalidTransferEncoding: "invalid transfer-encoding",
}

// String returns the human-readable description of the error code.
func (e ErrorCode) String() string {
	if int(e) >= len(errDescriptions) {
		return "unknown error"
	}
	return errDescriptions[e]
}

// Error implements the error interface so ErrorCode can be handed to callers
// that expect one; the parser itself never allocates one of these on its
// own hot path, see Parser.Err.
func (e ErrorCode) Error() string {
	return e.String()
}

// IsCallbackError reports whether e originated from a user callback
// returning non-zero, as opposed to a framing/grammar violation.
func (e ErrorCode) IsCallbackError() bool {
	return e >= ErrCBMessageBegin && e <= ErrCBChunkComplete
}
