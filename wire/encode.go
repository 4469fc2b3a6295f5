package wire

import (
	"encoding/json"
	"fmt"
	"io"
)

// Encode serializes v as JSON and writes it to w framed with the LSP base
// protocol headers.
func Encode(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return &SerializeError{Err: err}
	}
	return writeFrame(w, body)
}

// EncodeRaw writes an already-serialized JSON body framed with the LSP
// base protocol headers, skipping the marshal step.
func EncodeRaw(w io.Writer, body json.RawMessage) error {
	return writeFrame(w, body)
}

func writeFrame(w io.Writer, body []byte) error {
	header := fmt.Sprintf("%s: %d\r\n%s: %s\r\n\r\n", contentLengthHeaderName, len(body), contentTypeHeaderName, ContentType)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	return nil
}
