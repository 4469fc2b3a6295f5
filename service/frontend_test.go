package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gibbz00/language-service-go/protocol"
	"github.com/gibbz00/language-service-go/wire"
)

func frame(t *testing.T, body string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, wire.EncodeRaw(&buf, json.RawMessage(body)))
	return buf.String()
}

// decodeOneResponse reads exactly one framed UntypedResponseMessage from
// an output buffer produced by a Frontend.
func decodeOneResponse(t *testing.T, out []byte) protocol.UntypedResponseMessage {
	t.Helper()
	dec := wire.NewDecoder()
	dec.Push(out)
	var u protocol.UntypedResponseMessage
	require.NoError(t, dec.DecodeJSON(&u))
	return u
}

func TestFrontend_ShutdownRoundTrip(t *testing.T) {
	input := frame(t, `{"jsonrpc":"2.0","id":0,"method":"shutdown"}`)
	var out bytes.Buffer

	filter := NewFilter(ServerRole, nil)
	fe := NewFrontend(strings.NewReader(input), &out, filter, nil)
	toBackend, fromBackend := fe.Channels()
	handle := NewHandle(toBackend, fromBackend)

	require.NoError(t, fe.Run(context.Background()))

	msg, ok := handle.AwaitIncoming()
	require.True(t, ok)
	require.NotNil(t, msg.Request)
	assert.Equal(t, protocol.MethodShutdown, msg.Request.MethodName())
	assert.Equal(t, int64(0), msg.Request.RequestID().Int())

	_, ok = handle.AwaitIncoming()
	assert.False(t, ok, "toBackend should be closed once Run returns")
	assert.Empty(t, out.Bytes(), "a valid, accepted request produces no output on its own")
}

func TestFrontend_InvalidDirection_EmitsErrorResponse(t *testing.T) {
	input := frame(t, `{"jsonrpc":"2.0","id":1,"method":"window/showDocument","params":{"uri":"file:///a"}}`)
	var out bytes.Buffer

	filter := NewFilter(ServerRole, nil)
	fe := NewFrontend(strings.NewReader(input), &out, filter, nil)
	toBackend, fromBackend := fe.Channels()
	handle := NewHandle(toBackend, fromBackend)

	require.NoError(t, fe.Run(context.Background()))

	_, ok := handle.AwaitIncoming()
	assert.False(t, ok, "backend receives nothing for a rejected direction")

	resp := decodeOneResponse(t, out.Bytes())
	require.True(t, resp.HasError())
	assert.Equal(t, protocol.InternalError, resp.Err.Code)
	assert.Contains(t, resp.Err.Message, "invalid message")
	id, ok := resp.ID.AsRequestID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id.Int())
}

func TestFrontend_DecodeError_EmitsNullIDParseError(t *testing.T) {
	input := "Content-Length: 9\r\nContent-Type: application/vscode-jsonrpc; charset=utf-8\r\n\r\n{\"name\":10}"
	var out bytes.Buffer

	filter := NewFilter(ServerRole, nil)
	fe := NewFrontend(strings.NewReader(input), &out, filter, nil)
	toBackend, fromBackend := fe.Channels()
	handle := NewHandle(toBackend, fromBackend)

	require.NoError(t, fe.Run(context.Background()))

	_, ok := handle.AwaitIncoming()
	assert.False(t, ok)

	resp := decodeOneResponse(t, out.Bytes())
	require.True(t, resp.HasError())
	assert.Equal(t, protocol.ParseError, resp.Err.Code)
	assert.True(t, resp.ID.IsNull())
}

// partialReader yields its payload in small fixed chunks, forcing the
// Frontend to reassemble a frame split across multiple Read calls.
type partialReader struct {
	data      []byte
	chunkSize int
	pos       int
}

func (r *partialReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, nil // never EOF; the test cancels the context instead
	}
	n := r.chunkSize
	if remaining := len(r.data) - r.pos; n > remaining {
		n = remaining
	}
	n = copy(p, r.data[r.pos:r.pos+n])
	r.pos += n
	return n, nil
}

func TestFrontend_PartialFrame_DeliveredAcrossReads(t *testing.T) {
	input := []byte(frame(t, `{"jsonrpc":"2.0","id":0,"method":"shutdown"}`))
	r := &partialReader{data: input, chunkSize: 10}
	var out bytes.Buffer

	filter := NewFilter(ServerRole, nil)
	fe := NewFrontend(r, &out, filter, nil)
	toBackend, fromBackend := fe.Channels()
	handle := NewHandle(toBackend, fromBackend)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		fe.Run(ctx)
		close(runDone)
	}()

	msg, ok := handle.AwaitIncoming()
	require.True(t, ok)
	require.NotNil(t, msg.Request)
	assert.Equal(t, protocol.MethodShutdown, msg.Request.MethodName())

	cancel()
	<-runDone
}
