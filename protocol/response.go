package protocol

import (
	"encoding/json"
	"fmt"
)

// ResponseErrorCode is either one of the reserved JSON-RPC/LSP codes or
// any other signed 64-bit integer; it always serializes as a bare int.
type ResponseErrorCode int64

const (
	ParseError           ResponseErrorCode = -32700
	InvalidRequest       ResponseErrorCode = -32600
	MethodNotFound       ResponseErrorCode = -32601
	InvalidParams        ResponseErrorCode = -32602
	InternalError        ResponseErrorCode = -32603
	ServerNotInitialized ResponseErrorCode = -32002
	UnknownErrorCode     ResponseErrorCode = -32001
	RequestFailed        ResponseErrorCode = -32803
	RequestCancelled     ResponseErrorCode = -32800
	ContentModified      ResponseErrorCode = -32801
)

// ResponseError is the JSON-RPC error envelope.
type ResponseError struct {
	Code    ResponseErrorCode `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data,omitempty"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("protocol: response error %d: %s", e.Code, e.Message)
}

// UntypedResponseMessage is how every response arrives off the wire: the
// result is still raw JSON, because the wire format carries no schema
// information and the receiving side must look the outstanding request
// up (via the TypeStore) before it can choose a decode target.
type UntypedResponseMessage struct {
	ID     ResponseID
	Result json.RawMessage
	Err    *ResponseError
}

func (u UntypedResponseMessage) isMessage() {}

// HasError reports whether this is an error response.
func (u UntypedResponseMessage) HasError() bool { return u.Err != nil }

type untypedResponseWire struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      ResponseID      `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

func (u UntypedResponseMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(untypedResponseWire{JSONRPC: jsonrpcVersion, ID: u.ID, Result: u.Result, Error: u.Err})
}

func (u *UntypedResponseMessage) UnmarshalJSON(data []byte) error {
	var w untypedResponseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	u.ID, u.Result, u.Err = w.ID, w.Result, w.Error
	return nil
}

// AnyResponse is implemented by every Response[R] instantiation, letting
// the Filter convert a backend's typed reply back to wire form without
// knowing R.
type AnyResponse interface {
	ToUntyped() (UntypedResponseMessage, error)
}

// Response is a response reconstituted against its method's result type
// R, once the TypeStore has identified which method the originating
// request used.
type Response[R any] struct {
	ID     ResponseID
	Result *R
	Err    *ResponseError
}

// ToUntyped implements AnyResponse.
func (r Response[R]) ToUntyped() (UntypedResponseMessage, error) { return ToUntyped(r) }

// DecodeResponse types an UntypedResponseMessage against R. It is the
// function shape the TypeStore stores per outstanding request id (spec.md
// Sec.4.4, Sec.9): "(UntypedResponse) -> Result<IncomingResponses, DecodeError>".
func DecodeResponse[R any](u UntypedResponseMessage) (Response[R], error) {
	if u.Err != nil {
		return Response[R]{ID: u.ID, Err: u.Err}, nil
	}
	var result R
	if len(u.Result) > 0 && string(u.Result) != "null" {
		if err := json.Unmarshal(u.Result, &result); err != nil {
			return Response[R]{}, fmt.Errorf("protocol: decode result: %w", err)
		}
	}
	return Response[R]{ID: u.ID, Result: &result}, nil
}

// ToUntyped converts a typed outbound response back to the wire shape.
func ToUntyped[R any](r Response[R]) (UntypedResponseMessage, error) {
	if r.Err != nil {
		return UntypedResponseMessage{ID: r.ID, Err: r.Err}, nil
	}
	raw, err := json.Marshal(r.Result)
	if err != nil {
		return UntypedResponseMessage{}, fmt.Errorf("protocol: encode result: %w", err)
	}
	return UntypedResponseMessage{ID: r.ID, Result: raw}, nil
}
