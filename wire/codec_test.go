package wire

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func encodeFrame(t *testing.T, body string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodeRaw(&buf, []byte(body)); err != nil {
		t.Fatalf("EncodeRaw: %v", err)
	}
	return buf.String()
}

func TestEncode_WritesContentLengthAndType(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, map[string]string{"jsonrpc": "2.0"}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("Content-Length:")) {
		t.Errorf("missing Content-Length header in %q", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte(ContentType)) {
		t.Errorf("missing Content-Type header in %q", out)
	}
}

func TestDecoder_DecodesSingleMessage(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"shutdown"}`
	frame := encodeFrame(t, body)

	d := NewDecoder()
	d.Push([]byte(frame))

	var got map[string]any
	if err := d.DecodeJSON(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got["method"] != "shutdown" {
		t.Errorf("method = %v, want shutdown", got["method"])
	}
}

func TestDecoder_PartialHeaders_NeedsMoreBytes(t *testing.T) {
	d := NewDecoder()
	d.Push([]byte("Cont"))

	err := d.DecodeJSON(new(any))
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
}

func TestDecoder_MissingContentLengthAlone_NeedsMoreBytes(t *testing.T) {
	d := NewDecoder()
	d.Push([]byte(fmt.Sprintf("Content-Type: %s\r\n\r\n", ContentType)))

	err := d.DecodeJSON(new(any))
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
}

func TestDecoder_PartialContent_NeedsMoreBytes(t *testing.T) {
	d := NewDecoder()
	d.Push([]byte("Content-Length: 100\r\n\r\n{\"partial"))

	err := d.DecodeJSON(new(any))
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
}

func TestDecoder_DuplicateContentLength_IsHeaderError(t *testing.T) {
	d := NewDecoder()
	d.Push([]byte("Content-Length: 5\r\nContent-Length: 5\r\n\r\nhello"))

	err := d.DecodeJSON(new(any))
	var he *HeaderError
	if !errors.As(err, &he) || he.Kind != DuplicateOfValidHeader {
		t.Fatalf("err = %v, want DuplicateOfValidHeader", err)
	}
	if !IsRecoverable(err) {
		t.Errorf("duplicate content-length should be recoverable")
	}
}

func TestDecoder_UnknownHeaderName_IsHeaderError(t *testing.T) {
	d := NewDecoder()
	d.Push([]byte("Content-Length: 5\r\nX-Bogus: 1\r\n\r\nhello"))

	err := d.DecodeJSON(new(any))
	var he *HeaderError
	if !errors.As(err, &he) || he.Kind != InvalidHeader {
		t.Fatalf("err = %v, want InvalidHeader", err)
	}
}

func TestDecoder_InvalidUtf8HeaderBlock_IsHeaderError(t *testing.T) {
	d := NewDecoder()
	block := append([]byte("Content-Length: 5\r\nX-"), 0xff, 0xfe)
	block = append(block, []byte(": 1\r\n\r\nhello")...)
	d.Push(block)

	err := d.DecodeJSON(new(any))
	var he *HeaderError
	if !errors.As(err, &he) || he.Kind != Utf8 {
		t.Fatalf("err = %v, want Utf8", err)
	}
	if !IsRecoverable(err) {
		t.Errorf("invalid utf-8 header block should be recoverable")
	}
}

func TestDecoder_DeprecatedCharsetUtf8_IsAccepted(t *testing.T) {
	body := `{"jsonrpc":"2.0","method":"initialized"}`
	frame := fmt.Sprintf("Content-Length: %d\r\nContent-Type: application/vscode-jsonrpc; charset=utf8\r\n\r\n%s", len(body), body)

	d := NewDecoder()
	d.Push([]byte(frame))

	var got map[string]any
	if err := d.DecodeJSON(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestDecoder_StreamingAcrossSplitBoundary(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":2,"method":"shutdown"}`
	frame := encodeFrame(t, body)

	for split := 1; split < len(frame); split++ {
		d := NewDecoder()
		d.Push([]byte(frame[:split]))

		var got map[string]any
		err := d.DecodeJSON(&got)
		if err == nil {
			// A message can only complete once all bytes are delivered.
			if split != len(frame) {
				t.Fatalf("split %d: decoded early", split)
			}
			continue
		}
		if !errors.Is(err, ErrIncomplete) {
			t.Fatalf("split %d: err = %v, want ErrIncomplete", split, err)
		}

		d.Push([]byte(frame[split:]))
		if err := d.DecodeJSON(&got); err != nil {
			t.Fatalf("split %d: final Decode: %v", split, err)
		}
		if got["id"] != float64(2) {
			t.Errorf("split %d: id = %v, want 2", split, got["id"])
		}
	}
}

func TestDecoder_MultiMessage_DecodesInOrder(t *testing.T) {
	frame1 := encodeFrame(t, `{"jsonrpc":"2.0","id":1,"method":"a"}`)
	frame2 := encodeFrame(t, `{"jsonrpc":"2.0","id":2,"method":"b"}`)

	d := NewDecoder()
	d.Push([]byte(frame1 + frame2))

	var first, second map[string]any
	if err := d.DecodeJSON(&first); err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	if err := d.DecodeJSON(&second); err != nil {
		t.Fatalf("second Decode: %v", err)
	}

	if first["method"] != "a" || second["method"] != "b" {
		t.Errorf("got %v, %v, want a then b", first["method"], second["method"])
	}
}

func TestDecoder_OverlongBuffer_RetainsTrailingBytes(t *testing.T) {
	frame1 := encodeFrame(t, `{"jsonrpc":"2.0","id":1,"method":"a"}`)
	frame2 := encodeFrame(t, `{"jsonrpc":"2.0","id":2,"method":"b"}`)

	// Push both frames at once -- the buffer holds strictly more than
	// the first frame's Content-Length once headers are parsed.
	d := NewDecoder()
	d.Push([]byte(frame1 + frame2))

	var first map[string]any
	if err := d.DecodeJSON(&first); err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	if first["method"] != "a" {
		t.Fatalf("first method = %v, want a", first["method"])
	}

	var second map[string]any
	if err := d.DecodeJSON(&second); err != nil {
		t.Fatalf("second Decode: %v", err)
	}
	if second["method"] != "b" {
		t.Fatalf("second method = %v, want b", second["method"])
	}
}
