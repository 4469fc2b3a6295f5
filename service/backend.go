package service

// Handle is what a Backend uses to exchange messages with the
// Frontend/Filter pipeline (spec.md Sec.4.5): GetIncoming is non-
// blocking (a backend polls it alongside its own work), SendOutgoing is
// infallible from the caller's perspective -- it panics if the pipeline
// has already shut down, since a backend sending after shutdown is a
// programming error, not a recoverable condition.
type Handle struct {
	incoming <-chan Incoming
	outgoing chan<- Outgoing
}

// NewHandle wraps the channel pair a Frontend exposes via Channels.
func NewHandle(incoming <-chan Incoming, outgoing chan<- Outgoing) *Handle {
	return &Handle{incoming: incoming, outgoing: outgoing}
}

// GetIncoming returns the next message waiting for the backend, or
// ok == false if none is queued right now. It never blocks. It panics if
// the Filter has closed the channel -- spec.md Sec.4.5 treats that as a
// fatal invariant violation, not a condition callers poll for.
func (h *Handle) GetIncoming() (msg Incoming, ok bool) {
	select {
	case msg, open := <-h.incoming:
		if !open {
			panic("service: incoming channel closed by Filter")
		}
		return msg, true
	default:
		return Incoming{}, false
	}
}

// AwaitIncoming blocks until a message is available or the pipeline
// shuts down, in which case ok is false.
func (h *Handle) AwaitIncoming() (msg Incoming, ok bool) {
	msg, open := <-h.incoming
	return msg, open
}

// SendOutgoing delivers one message toward the wire via the Filter.
// It panics if the Frontend has shut down and closed its inbound
// channel -- spec.md Sec.4.5 treats sending after shutdown as a
// caller bug, not a condition to propagate as an error value.
func (h *Handle) SendOutgoing(out Outgoing) {
	defer func() {
		if r := recover(); r != nil {
			panic("service: SendOutgoing on a closed pipeline")
		}
	}()
	h.outgoing <- out
}
