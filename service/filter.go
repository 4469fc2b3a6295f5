package service

import (
	"context"
	"log/slog"

	"github.com/gibbz00/language-service-go/protocol"
)

// Outgoing is what a Backend hands the Filter to send toward the wire.
// Exactly one field is set; which one determines whether the Filter
// treats it as a request (inserting a TypeStore entry), a notification,
// or a response to something the backend received as Incoming.
type Outgoing struct {
	Request      protocol.AnyRequest
	Notification protocol.AnyNotification
	Response     protocol.AnyResponse
}

// Incoming is what the Filter hands a Backend after classifying a wire
// message as belonging to the backend's role. Response is the value
// produced by the TypeStore's typer for the method of the originating
// request -- a protocol.Response[R] for whichever R that method uses --
// so callers recover it with a type assertion or switch.
type Incoming struct {
	Request      protocol.AnyRequest
	Notification protocol.AnyNotification
	Response     any
}

// Filter classifies and converts messages crossing the Frontend/Backend
// boundary (spec.md Sec.4.4): inbound requests and notifications are
// checked against the backend's Role before being handed on, inbound
// responses are typed via the TypeStore, and outbound requests register
// a TypeStore entry before leaving. It holds no channels itself --
// Frontend owns those and calls HandleInbound/HandleOutbound per
// message, the way the reference implementation's Filter::tick drives a
// single pass without blocking.
type Filter struct {
	role  Role
	store *TypeStore
	log   *slog.Logger
}

// NewFilter builds a Filter for role, logging dropped and rejected
// messages to log (or slog.Default() if nil).
func NewFilter(role Role, log *slog.Logger) *Filter {
	if log == nil {
		log = slog.Default()
	}
	return &Filter{role: role, store: NewTypeStore(), log: log}
}

// HandleInbound classifies one message decoded off the wire. Exactly one
// of the three returns is non-nil on success:
//   - toBackend: the message belongs to this role and should be
//     delivered to the Backend Handle.
//   - toWire: a response that the Filter itself produced and that must
//     be written back out without reaching the Backend -- a direction
//     violation (request or notification addressed to the wrong role)
//     or a response that failed to type against its outstanding request
//     (a ParseError addressed to that response's id).
//   - neither, err == nil: an inbound response was dropped because no
//     outstanding request matches its id (an orphan) or its id was
//     Null; both are logged and not surfaced further (spec.md Sec.4.4,
//     Sec.7, Sec.9).
func (f *Filter) HandleInbound(ctx context.Context, msg protocol.Message) (toBackend *Incoming, toWire *protocol.UntypedResponseMessage, err error) {
	ctx, span := startFilterSpan(ctx, "inbound")
	defer span.End()

	switch m := msg.(type) {
	case protocol.UntypedResponseMessage:
		reqID, ok := m.ID.AsRequestID()
		if !ok {
			f.log.WarnContext(ctx, "dropping response with null id", "has_error", m.HasError())
			recordFilterTick(ctx, "inbound", "dropped-null-id")
			return nil, nil, nil
		}
		typed, found, typErr := f.store.Resolve(reqID, m)
		if !found {
			f.log.WarnContext(ctx, "dropping orphan response", "id", reqID.String())
			recordFilterTick(ctx, "inbound", "orphan")
			return nil, nil, nil
		}
		if typErr != nil {
			f.log.ErrorContext(ctx, "response failed to type", "id", reqID.String(), "error", typErr)
			recordTypingError(ctx, reqID.String())
			recordFilterTick(ctx, "inbound", "type-error")
			resp := DecodeErrorResponse(m.ID, typErr.Error())
			return nil, &resp, nil
		}
		recordFilterTick(ctx, "inbound", "response")
		return &Incoming{Response: typed}, nil, nil

	case protocol.AnyRequest:
		dir, _, ok := protocol.LookupMethod(m.MethodName())
		if !ok || !f.role.acceptsIncoming(dir) {
			resp := InvalidMessageResponse(
				responseIDOf(msg),
				protocol.InternalError,
				"invalid message",
				msg,
			)
			recordFilterTick(ctx, "inbound", "invalid-direction")
			return nil, &resp, nil
		}
		recordFilterTick(ctx, "inbound", "request")
		return &Incoming{Request: m}, nil, nil

	case protocol.AnyNotification:
		dir, _, ok := protocol.LookupMethod(m.MethodName())
		if !ok || !f.role.acceptsIncoming(dir) {
			resp := InvalidMessageResponse(
				responseIDOf(msg),
				protocol.InternalError,
				"invalid message",
				msg,
			)
			recordFilterTick(ctx, "inbound", "invalid-direction-notification")
			return nil, &resp, nil
		}
		recordFilterTick(ctx, "inbound", "notification")
		return &Incoming{Notification: m}, nil, nil

	default:
		recordFilterTick(ctx, "inbound", "unhandled")
		return nil, nil, nil
	}
}

// HandleOutbound converts one Backend-originated message to its wire
// form. A Request registers a TypeStore entry for its id using the
// method's registered response typer before being returned, so a later
// HandleInbound call can correlate the matching response.
func (f *Filter) HandleOutbound(ctx context.Context, out Outgoing) (protocol.Message, error) {
	ctx, span := startFilterSpan(ctx, "outbound")
	defer span.End()

	switch {
	case out.Request != nil:
		method := out.Request.MethodName()
		if typer, ok := protocol.NewResponseTyper(method); ok {
			f.store.Insert(out.Request.RequestID(), typer)
		} else {
			f.log.WarnContext(ctx, "outbound request method has no registered response typer", "method", method)
		}
		recordFilterTick(ctx, "outbound", "request")
		return out.Request, nil

	case out.Notification != nil:
		recordFilterTick(ctx, "outbound", "notification")
		return out.Notification, nil

	case out.Response != nil:
		u, err := out.Response.ToUntyped()
		if err != nil {
			recordFilterTick(ctx, "outbound", "encode-error")
			return nil, err
		}
		recordFilterTick(ctx, "outbound", "response")
		return u, nil

	default:
		recordFilterTick(ctx, "outbound", "empty")
		return nil, nil
	}
}

// Pending reports the number of outstanding outbound requests awaiting
// a response, for tests and metrics.
func (f *Filter) Pending() int { return f.store.Len() }
