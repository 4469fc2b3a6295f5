package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRequestID_RoundTrip(t *testing.T) {
	cases := []RequestID{IntID(42), StringID("abc")}
	for _, id := range cases {
		data, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var got RequestID
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if got != id {
			t.Errorf("round trip %v -> %s -> %v", id, data, got)
		}
	}
}

func TestResponseID_NullVariant(t *testing.T) {
	id := NullResponseID()
	data, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("got %s, want null", data)
	}

	var got ResponseID
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.IsNull() {
		t.Errorf("expected null response id")
	}
	if _, ok := got.AsRequestID(); ok {
		t.Errorf("AsRequestID should fail for null")
	}
}

func TestDecodeMessage_ShutdownRequest(t *testing.T) {
	raw := json.RawMessage(`{"jsonrpc":"2.0","id":0,"method":"shutdown"}`)
	msg, err := DecodeMessage(raw)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}

	req, ok := msg.(Request[struct{}])
	if !ok {
		t.Fatalf("got %T, want Request[struct{}]", msg)
	}
	if req.MethodName() != MethodShutdown {
		t.Errorf("method = %q", req.MethodName())
	}
	if req.RequestID().IsString() || req.RequestID().Int() != 0 {
		t.Errorf("id = %v, want 0", req.RequestID())
	}
}

func TestDecodeMessage_Notification(t *testing.T) {
	raw := json.RawMessage(`{"jsonrpc":"2.0","method":"initialized"}`)
	msg, err := DecodeMessage(raw)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	n, ok := msg.(Notification[struct{}])
	if !ok {
		t.Fatalf("got %T, want Notification[struct{}]", msg)
	}
	if n.MethodName() != MethodInitialized {
		t.Errorf("method = %q", n.MethodName())
	}
}

func TestDecodeMessage_UntypedResponse(t *testing.T) {
	raw := json.RawMessage(`{"jsonrpc":"2.0","id":7,"result":{"ok":true}}`)
	msg, err := DecodeMessage(raw)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	resp, ok := msg.(UntypedResponseMessage)
	if !ok {
		t.Fatalf("got %T, want UntypedResponseMessage", msg)
	}
	if resp.HasError() {
		t.Errorf("unexpected error response")
	}
	id, ok := resp.ID.AsRequestID()
	if !ok || id.Int() != 7 {
		t.Errorf("id = %v", resp.ID)
	}
}

func TestDecodeMessage_UnknownMethod(t *testing.T) {
	raw := json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"bogus/method"}`)
	_, err := DecodeMessage(raw)

	var mnf *MethodNotFoundError
	if !errors.As(err, &mnf) {
		t.Fatalf("err = %v, want *MethodNotFoundError", err)
	}
}

func TestDirectionClassification(t *testing.T) {
	dir, kind, ok := LookupMethod(MethodWindowShowDocument)
	if !ok {
		t.Fatal("expected window/showDocument to be registered")
	}
	if dir != ServerOrigin {
		t.Errorf("direction = %v, want ServerOrigin", dir)
	}
	if kind != KindRequest {
		t.Errorf("kind = %v, want KindRequest", kind)
	}

	dir, _, ok = LookupMethod(MethodWorkspaceWillRenameFiles)
	if !ok || dir != ClientOrigin {
		t.Errorf("workspace/willRenameFiles should be client-origin, got %v ok=%v", dir, ok)
	}

	_, _, ok = LookupMethod(MethodCancelRequest)
	if !ok {
		t.Fatal("expected $/cancelRequest to be registered")
	}
}

func TestResponseTyper_RoundTrip(t *testing.T) {
	typer, ok := NewResponseTyper(MethodWorkspaceWillRenameFiles)
	if !ok {
		t.Fatal("expected a response typer for workspace/willRenameFiles")
	}

	u := UntypedResponseMessage{
		ID:     FromRequestID(StringID("abc")),
		Result: json.RawMessage(`{"edit":{"changes":{}}}`),
	}

	typed, err := typer(u)
	if err != nil {
		t.Fatalf("typer: %v", err)
	}
	resp, ok := typed.(Response[WillRenameFilesResult])
	if !ok {
		t.Fatalf("got %T, want Response[WillRenameFilesResult]", typed)
	}
	if resp.Result == nil || resp.Result.Edit == nil {
		t.Fatalf("expected a decoded edit, got %+v", resp.Result)
	}
}

func TestRequest_MarshalOmitsEmptyParams(t *testing.T) {
	req := NewRequest[struct{}](IntID(1), MethodShutdown, nil)
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var asMap map[string]any
	if err := json.Unmarshal(data, &asMap); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, present := asMap["params"]; present {
		t.Errorf("params should be omitted, got %s", data)
	}
}

func TestDecodeMessage_MismatchedMethodNameYieldsUnknownVariant(t *testing.T) {
	// Constructs a frame that is well-formed JSON but whose method field,
	// if it ever diverged from the registry key, should surface as
	// UnknownVariantError rather than silently succeeding. This exercises
	// decodeRequestAs's own consistency check directly.
	raw := json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"shutdown"}`)
	if _, err := decodeRequestAs[struct{}](raw, "initialize"); err == nil {
		t.Fatal("expected UnknownVariantError")
	} else {
		var uv *UnknownVariantError
		if !errors.As(err, &uv) {
			t.Fatalf("err = %v, want *UnknownVariantError", err)
		}
	}
}
