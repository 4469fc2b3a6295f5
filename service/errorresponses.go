package service

import (
	"encoding/json"

	"github.com/gibbz00/language-service-go/protocol"
)

// DecodeErrorResponse is emitted when a frame fails to decode or an
// inbound response fails to type against its outstanding request
// (spec.md Sec.4.6, Sec.7). id is used as given: the Frontend passes Null
// for an undecodable frame, whose originating id is unknown, and the
// Filter passes the response's own id for a typing failure.
func DecodeErrorResponse(id protocol.ResponseID, message string) protocol.UntypedResponseMessage {
	return protocol.UntypedResponseMessage{
		ID: id,
		Err: &protocol.ResponseError{
			Code:    protocol.ParseError,
			Message: message,
		},
	}
}

// InternalErrorResponse is emitted for a caller-identified internal
// failure; id is the originating request id when known, else Null.
func InternalErrorResponse(id protocol.ResponseID, message string) protocol.UntypedResponseMessage {
	return protocol.UntypedResponseMessage{
		ID: id,
		Err: &protocol.ResponseError{
			Code:    protocol.InternalError,
			Message: message,
		},
	}
}

// InvalidMessageResponse is emitted when an inbound request or
// notification does not belong to the backend's role (spec.md Sec.4.4,
// Sec.7): a direction violation. data carries the offending message,
// serialized, for diagnostic purposes.
func InvalidMessageResponse(id protocol.ResponseID, code protocol.ResponseErrorCode, message string, offending protocol.Message) protocol.UntypedResponseMessage {
	data, err := json.Marshal(offending)
	if err != nil {
		data = nil
	}
	return protocol.UntypedResponseMessage{
		ID: id,
		Err: &protocol.ResponseError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// responseIDOf extracts the ResponseID an error response addressing
// reqOrNotif should carry: the message's own id for a request, Null for
// a notification (it has none).
func responseIDOf(m protocol.Message) protocol.ResponseID {
	if req, ok := m.(protocol.AnyRequest); ok {
		return protocol.FromRequestID(req.RequestID())
	}
	return protocol.NullResponseID()
}
