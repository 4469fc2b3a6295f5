// Command lspcore-demo wires the wire/protocol/service packages to a
// real stdio connection and implements just enough of a language server
// to show the pipeline working end to end: initialize, shutdown/exit,
// and textDocument/didOpen logging. It is illustrative, not a
// production server -- binding to stdin/stdout and any form of process
// supervision are explicitly outside the core's scope.
package main

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/gibbz00/language-service-go/protocol"
	"github.com/gibbz00/language-service-go/service"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	filter := service.NewFilter(service.ServerRole, log)
	frontend := service.NewFrontend(os.Stdin, os.Stdout, filter, log)
	toBackend, fromBackend := frontend.Channels()
	handle := service.NewHandle(toBackend, fromBackend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return frontend.Run(gctx) })
	g.Go(func() error {
		runBackend(gctx, handle, log)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("lspcore-demo exited with error", "error", err)
		os.Exit(1)
	}
}

// runBackend is a minimal example backend: it logs every request and
// notification it receives and replies to the ones that need a reply.
// A real server would dispatch each method to its own handler instead
// of this single switch.
func runBackend(ctx context.Context, h *service.Handle, log *slog.Logger) {
	for {
		msg, ok := h.AwaitIncoming()
		if !ok {
			log.Info("frontend shut down, stopping backend")
			return
		}

		switch {
		case msg.Request != nil:
			handleRequest(h, log, msg.Request)
		case msg.Notification != nil:
			handleNotification(log, msg.Notification)
		case msg.Response != nil:
			log.Info("received response to an earlier outbound request")
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func handleRequest(h *service.Handle, log *slog.Logger, req protocol.AnyRequest) {
	log.Info("request", "method", req.MethodName(), "id", req.RequestID().String())

	switch req.MethodName() {
	case protocol.MethodInitialize:
		result := protocol.InitializeResult{
			ServerInfo: &protocol.ServerInfo{Name: "lspcore-demo", Version: "0.0.0"},
		}
		h.SendOutgoing(service.Outgoing{Response: protocol.Response[protocol.InitializeResult]{
			ID:     protocol.FromRequestID(req.RequestID()),
			Result: &result,
		}})

	case protocol.MethodShutdown:
		h.SendOutgoing(service.Outgoing{Response: protocol.Response[protocol.ShutdownResult]{
			ID:     protocol.FromRequestID(req.RequestID()),
			Result: &protocol.ShutdownResult{},
		}})

	default:
		log.Warn("no handler registered for request method", "method", req.MethodName())
	}
}

func handleNotification(log *slog.Logger, notif protocol.AnyNotification) {
	log.Info("notification", "method", notif.MethodName())
	if notif.MethodName() == protocol.MethodExit {
		log.Info("received exit, demo would terminate the process here")
	}
}
