package wire

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ContentType is the canonical JSON-RPC media type used by the LSP base
// protocol.
const ContentType = "application/vscode-jsonrpc; charset=utf-8"

// deprecatedContentType is accepted for backward compatibility with peers
// that never adopted the corrected charset spelling.
const deprecatedContentType = "application/vscode-jsonrpc; charset=utf8"

const (
	contentLengthHeaderName = "Content-Length"
	contentTypeHeaderName   = "Content-Type"
	headerTerminator        = "\r\n\r\n"
)

// headers is the parsed, validated header block of one frame.
type headers struct {
	contentLength int
}

// splitHeaderBlock locates the \r\n\r\n terminator. ok is false when the
// buffer does not yet contain a complete header block.
func splitHeaderBlock(buf []byte) (block []byte, rest []byte, ok bool) {
	idx := bytes.Index(buf, []byte(headerTerminator))
	if idx < 0 {
		return nil, nil, false
	}
	return buf[:idx], buf[idx+len(headerTerminator):], true
}

// parseHeaders validates a raw header block (without the trailing blank
// line) and extracts the Content-Length. Returns (headers, MissingContentLength)
// when the block was otherwise well-formed but carried no length line --
// callers treat that as "need more bytes", tolerating a peer that has not
// yet produced it.
func parseHeaders(block []byte) (headers, error) {
	if !utf8.Valid(block) {
		return headers{}, &HeaderError{Kind: Utf8}
	}
	lines := strings.Split(string(block), "\r\n")

	var haveLength, haveType bool
	var contentLength int

	for _, line := range lines {
		if line == "" {
			continue
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			return headers{}, &HeaderError{Kind: InvalidHeader, Header: line}
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		switch name {
		case contentLengthHeaderName:
			if haveLength {
				return headers{}, &HeaderError{Kind: DuplicateOfValidHeader, Header: name}
			}
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return headers{}, &HeaderError{Kind: ContentLengthParse, Header: value, Err: err}
			}
			contentLength = n
			haveLength = true
		case contentTypeHeaderName:
			if haveType {
				return headers{}, &HeaderError{Kind: DuplicateOfValidHeader, Header: name}
			}
			if value != ContentType && value != deprecatedContentType {
				return headers{}, &HeaderError{Kind: InvalidContentType, Header: value}
			}
			haveType = true
		default:
			return headers{}, &HeaderError{Kind: InvalidHeader, Header: name}
		}
	}

	if !haveLength {
		return headers{}, &HeaderError{Kind: MissingContentLength}
	}

	return headers{contentLength: contentLength}, nil
}

// isMissingContentLength reports whether err is the tolerated
// "header block present but length line not yet written" case.
func isMissingContentLength(err error) bool {
	he, ok := err.(*HeaderError)
	return ok && he.Kind == MissingContentLength
}
