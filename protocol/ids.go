// Package protocol implements the closed LSP message taxonomy: requests,
// notifications and responses, split by origin (client vs server), plus
// the identifiers and error envelopes that tie them together.
//
// The method table is kept deliberately small here -- a handful of the
// most common LSP methods, each registered with real params/result types
// (lsptypes.go, or struct{} for methods without params). Methods outside
// the table are not decoded at all (MethodNotFoundError). Dispatch,
// typing and direction-filtering are the same for every registered
// method, which is the part this package actually needs to get right.
package protocol

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// RequestID identifies a request. It is either an integer or a non-empty
// string, per the JSON-RPC / LSP base protocol.
type RequestID struct {
	isString bool
	num      int64
	str      string
}

// IntID builds an integer request id.
func IntID(n int64) RequestID { return RequestID{num: n} }

// StringID builds a string request id. Panics on an empty string -- the
// wire format forbids it and callers should never construct one.
func StringID(s string) RequestID {
	if s == "" {
		panic("protocol: empty string request id")
	}
	return RequestID{isString: true, str: s}
}

// IsString reports whether the id is the string variant.
func (id RequestID) IsString() bool { return id.isString }

// Int returns the integer value; valid only when !IsString().
func (id RequestID) Int() int64 { return id.num }

// String returns the string value when IsString(), else a decimal
// rendering of the integer -- handy as a map key or log field.
func (id RequestID) String() string {
	if id.isString {
		return id.str
	}
	return strconv.FormatInt(id.num, 10)
}

// RequestID's fields are all comparable, so the type itself is a safe map
// key (the isString tag keeps the integer 1 distinct from the string
// "1") -- the TypeStore relies on this directly.

func (id RequestID) MarshalJSON() ([]byte, error) {
	if id.isString {
		return json.Marshal(id.str)
	}
	return json.Marshal(id.num)
}

func (id *RequestID) UnmarshalJSON(data []byte) error {
	var asNum int64
	if err := json.Unmarshal(data, &asNum); err == nil {
		*id = RequestID{num: asNum}
		return nil
	}
	var asStr string
	if err := json.Unmarshal(data, &asStr); err == nil {
		if asStr == "" {
			return fmt.Errorf("protocol: request id must not be an empty string")
		}
		*id = RequestID{isString: true, str: asStr}
		return nil
	}
	return fmt.Errorf("protocol: request id must be an integer or string")
}

// responseIDKind distinguishes the three ResponseID variants.
type responseIDKind int

const (
	responseIDNumber responseIDKind = iota
	responseIDString
	responseIDNull
)

// ResponseID extends RequestID with a third alternative, Null, used by
// error responses whose originating request id could not be determined
// (e.g. the request itself failed to parse).
type ResponseID struct {
	kind responseIDKind
	num  int64
	str  string
}

// NullResponseID is the reserved id used for error responses that cannot
// be correlated to any outstanding request.
func NullResponseID() ResponseID { return ResponseID{kind: responseIDNull} }

// FromRequestID narrows a RequestID into the corresponding ResponseID.
func FromRequestID(id RequestID) ResponseID {
	if id.isString {
		return ResponseID{kind: responseIDString, str: id.str}
	}
	return ResponseID{kind: responseIDNumber, num: id.num}
}

// IsNull reports whether this is the reserved Null variant.
func (id ResponseID) IsNull() bool { return id.kind == responseIDNull }

// AsRequestID recovers the originating RequestID. ok is false for Null.
func (id ResponseID) AsRequestID() (RequestID, bool) {
	switch id.kind {
	case responseIDNumber:
		return RequestID{num: id.num}, true
	case responseIDString:
		return RequestID{isString: true, str: id.str}, true
	default:
		return RequestID{}, false
	}
}

func (id ResponseID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case responseIDNumber:
		return json.Marshal(id.num)
	case responseIDString:
		return json.Marshal(id.str)
	default:
		return json.Marshal(nil)
	}
}

func (id *ResponseID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ResponseID{kind: responseIDNull}
		return nil
	}
	var asNum int64
	if err := json.Unmarshal(data, &asNum); err == nil {
		*id = ResponseID{kind: responseIDNumber, num: asNum}
		return nil
	}
	var asStr string
	if err := json.Unmarshal(data, &asStr); err == nil {
		*id = ResponseID{kind: responseIDString, str: asStr}
		return nil
	}
	return fmt.Errorf("protocol: response id must be an integer, string, or null")
}
