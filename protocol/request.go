package protocol

import (
	"encoding/json"
	"fmt"
)

// AnyRequest is implemented by every Request[P] instantiation. It lets
// code that only needs the envelope (id, method) operate without knowing
// P, the same way the reference implementation's trait objects do.
type AnyRequest interface {
	RequestID() RequestID
	MethodName() string
	isMessage()
}

// Request is a JSON-RPC request parameterized over its params schema P.
// Every concrete LSP request method instantiates this with its own P
// (see lsptypes.go for the modeled subset, and method.go for the
// registry binding a method name to one instantiation).
type Request[P any] struct {
	ID     RequestID
	Method string
	Params *P
}

// NewRequest builds a Request, asserting method is non-empty. There are
// no per-method constructors; callers pass one of the Method* constants
// from method.go (or any other method name) together with its params.
func NewRequest[P any](id RequestID, method string, params *P) Request[P] {
	if method == "" {
		panic("protocol: request method must not be empty")
	}
	return Request[P]{ID: id, Method: method, Params: params}
}

func (r Request[P]) RequestID() RequestID { return r.ID }
func (r Request[P]) MethodName() string   { return r.Method }
func (r Request[P]) isMessage()           {}

type requestWire[P any] struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      RequestID `json:"id"`
	Method  string    `json:"method"`
	Params  *P        `json:"params,omitempty"`
}

func (r Request[P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(requestWire[P]{JSONRPC: jsonrpcVersion, ID: r.ID, Method: r.Method, Params: r.Params})
}

func (r *Request[P]) UnmarshalJSON(data []byte) error {
	var w requestWire[P]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.ID, r.Method, r.Params = w.ID, w.Method, w.Params
	return nil
}

// decodeRequestAs unmarshals raw into Request[P] and checks the embedded
// method name matches expected, returning an UnknownVariantError
// otherwise (spec.md Sec.4.2: "mismatch is UnknownVariant").
func decodeRequestAs[P any](raw json.RawMessage, expected string) (Request[P], error) {
	var r Request[P]
	if err := json.Unmarshal(raw, &r); err != nil {
		return Request[P]{}, err
	}
	if r.Method != expected {
		return Request[P]{}, &UnknownVariantError{Expected: expected, Got: r.Method}
	}
	return r, nil
}

// UnknownVariantError reports a request/notification whose method field
// does not match the identifier the registry dispatched it to.
type UnknownVariantError struct {
	Expected string
	Got      string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("protocol: unknown variant: expected method %q, got %q", e.Expected, e.Got)
}
