package protocol

import (
	"encoding/json"
	"fmt"
)

// Message is the closed sum AllMessages = Requests | Notifications |
// UntypedResponse (spec.md Sec.4.2). On the wire it is serialized
// untagged: no discriminator field, just the JSON-RPC envelope shape
// itself ("method" present vs "result"/"error" present) disambiguates.
type Message interface {
	isMessage()
}

// MethodNotFoundError reports a request or notification whose method is
// not in the registry -- a protocol-level decode failure, distinct from
// UnknownVariantError (which is a dispatch bug, not an unknown method).
type MethodNotFoundError struct {
	Method string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("protocol: unknown method %q", e.Method)
}

// probe is used only to classify a raw envelope before dispatching it to
// the right generic instantiation.
type probe struct {
	Method *string         `json:"method"`
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// DecodeMessage classifies and decodes one JSON-RPC envelope into the
// taxonomy. It is the single entry point the Frontend's framing codec
// calls per frame.
func DecodeMessage(raw json.RawMessage) (Message, error) {
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}

	if p.Method == nil {
		var u UntypedResponseMessage
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		return u, nil
	}

	desc, ok := registry[*p.Method]
	if !ok {
		return nil, &MethodNotFoundError{Method: *p.Method}
	}

	hasID := len(p.ID) > 0 && string(p.ID) != "null"

	switch {
	case hasID && desc.kind == KindRequest:
		return desc.decodeRequest(raw)
	case !hasID && desc.kind == KindNotification:
		return desc.decodeNotification(raw)
	default:
		// A request-only method arriving without an id, or vice versa.
		return nil, &UnknownVariantError{Expected: string(desc.kind.String()), Got: *p.Method}
	}
}

func (k MessageKind) String() string {
	if k == KindRequest {
		return "request"
	}
	return "notification"
}

// EncodeMessage marshals a taxonomy member back to its wire JSON body.
func EncodeMessage(m Message) (json.RawMessage, error) {
	return json.Marshal(m)
}

// NewResponseTyper returns the typing closure registered for method, for
// the Filter to store in the TypeStore when an outbound request of that
// method leaves toward the wire.
func NewResponseTyper(method string) (func(UntypedResponseMessage) (any, error), bool) {
	desc, ok := registry[method]
	if !ok || desc.newResponseTyper == nil {
		return nil, false
	}
	return desc.newResponseTyper(), true
}

// MethodOf returns the method name carried by any taxonomy request or
// notification member.
func MethodOf(m Message) (string, bool) {
	switch v := m.(type) {
	case AnyRequest:
		return v.MethodName(), true
	case AnyNotification:
		return v.MethodName(), true
	default:
		return "", false
	}
}
