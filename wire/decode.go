package wire

import (
	"encoding/json"
)

// Decoder is a stateful, streaming decoder for the LSP base protocol. It
// accumulates bytes across calls to Push and yields one message per
// complete frame from Decode.
//
// Not safe for concurrent use; callers serialize access (the Frontend owns
// exactly one Decoder per connection).
type Decoder struct {
	buf []byte

	// knownLength is the Content-Length parsed from the current frame's
	// header block, or nil if no header block has been parsed yet.
	knownLength *int
}

// NewDecoder returns an empty Decoder, ready to have bytes pushed into it.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Push appends bytes read from the underlying source to the decoder's
// internal buffer. It never blocks and never fails.
func (d *Decoder) Push(b []byte) {
	d.buf = append(d.buf, b...)
}

// Decode attempts to extract one complete message from the buffer.
//
// It returns ErrIncomplete when the buffer does not yet hold a full frame;
// callers should Push more bytes and call Decode again. A non-nil,
// non-ErrIncomplete error is always recoverable (see IsRecoverable). On a
// header error the decoder discards the header block only; any body bytes
// that followed it stay in the buffer and are parsed as the start of the
// next frame. On a body error the whole frame has been consumed.
func (d *Decoder) Decode(into func(body []byte) error) error {
	if d.knownLength == nil {
		block, rest, ok := splitHeaderBlock(d.buf)
		if !ok {
			return ErrIncomplete
		}

		h, err := parseHeaders(block)
		if err != nil {
			if isMissingContentLength(err) {
				return ErrIncomplete
			}
			// The header block is malformed beyond repair (an unknown
			// header, a duplicate, a bad Content-Length value); discard it
			// rather than re-parsing the same broken block forever. Its
			// body, if any, is left in the buffer.
			d.buf = rest
			return err
		}

		d.buf = rest
		length := h.contentLength
		d.knownLength = &length
		return d.Decode(into)
	}

	length := *d.knownLength
	if len(d.buf) < length {
		return ErrIncomplete
	}

	body := d.buf[:length]
	// Retain any bytes past this frame's boundary as the start of the
	// next one, rather than treating an over-long buffer as an error.
	d.buf = d.buf[length:]
	d.knownLength = nil

	if err := into(body); err != nil {
		return &DeserializeError{Err: err}
	}
	return nil
}

// DecodeJSON is a convenience wrapper over Decode that unmarshals the body
// into v.
func (d *Decoder) DecodeJSON(v any) error {
	return d.Decode(func(body []byte) error {
		return json.Unmarshal(body, v)
	})
}
