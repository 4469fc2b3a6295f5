package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gibbz00/language-service-go/protocol"
	"github.com/gibbz00/language-service-go/wire"
)

// Frontend owns the framed connection to the wire: decoding inbound
// bytes into taxonomy messages and handing them to a Filter, and
// encoding a Backend's outbound messages back onto the stream (spec.md
// Sec.4.3). Reading and writing are driven by two independent goroutines
// that live as long as the connection (see Run), so the two directions
// make progress concurrently rather than strictly alternating.
type Frontend struct {
	r      io.Reader
	w      io.Writer
	wMu    sync.Mutex
	dec    *wire.Decoder
	filter *Filter
	log    *slog.Logger

	toBackend   chan Incoming
	fromBackend chan Outgoing

	// shutdown is closed once the inbound loop ends (input exhausted or a
	// fatal I/O error), so the outbound loop -- which otherwise blocks
	// indefinitely on fromBackend -- knows to stop too.
	shutdown chan struct{}
}

// NewFrontend builds a Frontend reading frames from r and writing frames
// to w, classifying inbound traffic through filter. toBackend/fromBackend
// are the channels a Backend Handle reads from and writes to.
func NewFrontend(r io.Reader, w io.Writer, filter *Filter, log *slog.Logger) *Frontend {
	if log == nil {
		log = slog.Default()
	}
	return &Frontend{
		r:           r,
		w:           w,
		dec:         wire.NewDecoder(),
		filter:      filter,
		log:         log,
		toBackend:   make(chan Incoming, 64),
		fromBackend: make(chan Outgoing, 64),
		shutdown:    make(chan struct{}),
	}
}

// Channels exposes the pair a Backend Handle should be built from.
func (f *Frontend) Channels() (toBackend <-chan Incoming, fromBackend chan<- Outgoing) {
	return f.toBackend, f.fromBackend
}

// readBuf is sized to comfortably hold one LSP frame's worth of input
// without repeated growth; the decoder tolerates any split regardless.
const readBufSize = 64 * 1024

// Run drives the Frontend until ctx is cancelled or the input stream
// ends, permanently. The inbound read-and-dispatch loop and the
// outbound drain loop run as two independent goroutines under one
// errgroup for the life of the connection (spec.md Sec.4.3: "the two
// directional passes run concurrently, not sequentially") rather than
// being resynchronized on every read, so a Backend's outbound traffic
// is flushed as soon as it is sent, independent of inbound activity.
func (f *Frontend) Run(ctx context.Context) error {
	defer close(f.toBackend)
	defer close(f.fromBackend)

	var g errgroup.Group
	g.Go(func() error {
		defer close(f.shutdown)
		return f.runInbound(ctx)
	})
	g.Go(func() error { return f.runOutbound(ctx) })
	return g.Wait()
}

func (f *Frontend) runInbound(ctx context.Context) error {
	buf := make([]byte, readBufSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := f.r.Read(buf)
		if n > 0 {
			f.dec.Push(buf[:n])
			recordBytesIn(ctx, n)
			if err := f.drainInbound(ctx); err != nil {
				return err
			}
		} else if readErr == nil {
			// A reader is allowed to return (0, nil) to mean "nothing
			// available right now" rather than EOF; yield instead of
			// spinning the CPU re-polling it.
			time.Sleep(time.Millisecond)
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}

func (f *Frontend) drainInbound(ctx context.Context) error {
	for {
		var body []byte
		err := f.dec.Decode(func(b []byte) error {
			body = append([]byte(nil), b...)
			return nil
		})
		if errors.Is(err, wire.ErrIncomplete) {
			return nil
		}
		if err != nil {
			if werr := f.writeDecodeError(ctx, err); werr != nil {
				return werr
			}
			continue
		}
		if err := f.dispatchFrame(ctx, body); err != nil {
			return err
		}
	}
}

func (f *Frontend) dispatchFrame(ctx context.Context, body []byte) error {
	msg, err := protocol.DecodeMessage(json.RawMessage(body))
	if err != nil {
		return f.writeDecodeError(ctx, err)
	}

	toBackend, toWire, err := f.filter.HandleInbound(ctx, msg)
	if err != nil {
		return f.writeDecodeError(ctx, err)
	}
	if toWire != nil {
		return f.writeMessage(ctx, *toWire)
	}
	if toBackend != nil {
		select {
		case f.toBackend <- *toBackend:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (f *Frontend) writeDecodeError(ctx context.Context, cause error) error {
	f.log.ErrorContext(ctx, "frame decode failed", "error", cause)
	resp := DecodeErrorResponse(protocol.NullResponseID(), cause.Error())
	return f.writeMessage(ctx, resp)
}

// runOutbound blocks on fromBackend for the life of the connection,
// writing each message a Backend sends as soon as it arrives.
func (f *Frontend) runOutbound(ctx context.Context) error {
	for {
		select {
		case out, ok := <-f.fromBackend:
			if !ok {
				return nil
			}
			msg, err := f.filter.HandleOutbound(ctx, out)
			if err != nil {
				f.log.ErrorContext(ctx, "outbound encode failed", "error", err)
				continue
			}
			if msg == nil {
				continue
			}
			if err := f.writeMessage(ctx, msg); err != nil {
				return err
			}
		case <-f.shutdown:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// writeMessage encodes and writes one message, serializing concurrent
// writers behind wMu the way the teacher's shared connection does.
func (f *Frontend) writeMessage(ctx context.Context, m any) error {
	f.wMu.Lock()
	defer f.wMu.Unlock()

	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := wire.EncodeRaw(f.w, raw); err != nil {
		return err
	}
	recordBytesOut(ctx, len(raw))
	return nil
}
