package protocol

import "encoding/json"

// Direction classifies which family (client- or server-originated) a
// request or notification method belongs to. ImplementationDependent
// covers the two LSP "meta" notifications that either peer may send
// (spec.md Sec.4.2).
type Direction int

const (
	ClientOrigin Direction = iota
	ServerOrigin
	ImplementationDependent
)

func (d Direction) String() string {
	switch d {
	case ClientOrigin:
		return "client"
	case ServerOrigin:
		return "server"
	case ImplementationDependent:
		return "implementation-dependent"
	default:
		return "unknown"
	}
}

// MessageKind distinguishes a request method from a notification method.
type MessageKind int

const (
	KindRequest MessageKind = iota
	KindNotification
)

// Well-known method identifiers. This is a representative slice of LSP's
// method table, not the exhaustive set (spec.md Sec.1 treats the full
// per-method schema catalog as an external collaborator) -- enough
// methods in each (direction, kind) quadrant to exercise the taxonomy,
// the Filter's direction check, and the TypeStore honestly.
const (
	MethodInitialize    = "initialize"
	MethodInitialized   = "initialized"
	MethodShutdown      = "shutdown"
	MethodExit          = "exit"
	MethodCancelRequest = "$/cancelRequest"
	MethodProgress      = "$/progress"

	MethodTextDocumentDidOpen   = "textDocument/didOpen"
	MethodTextDocumentDidChange = "textDocument/didChange"
	MethodTextDocumentDidClose  = "textDocument/didClose"
	MethodTextDocumentDefinition = "textDocument/definition"
	MethodTextDocumentHover      = "textDocument/hover"

	MethodWorkspaceWillRenameFiles = "workspace/willRenameFiles"
	MethodWorkspaceDidRenameFiles  = "workspace/didRenameFiles"

	MethodTextDocumentPublishDiagnostics = "textDocument/publishDiagnostics"
	MethodWindowShowMessage              = "window/showMessage"
	MethodWindowShowMessageRequest       = "window/showMessageRequest"
	MethodWindowShowDocument             = "window/showDocument"
	MethodWorkspaceApplyEdit             = "workspace/applyEdit"
)

// methodDescriptor binds a method name to the generic instantiations that
// decode its wire form and type its response.
type methodDescriptor struct {
	name      string
	direction Direction
	kind      MessageKind

	decodeRequest      func(raw json.RawMessage) (AnyRequest, error)
	decodeNotification func(raw json.RawMessage) (AnyNotification, error)

	// newResponseTyper returns a fresh typing closure for one outstanding
	// request of this method -- the shape the TypeStore keys by id
	// (spec.md Sec.4.4, Sec.9).
	newResponseTyper func() func(UntypedResponseMessage) (any, error)
}

var registry = map[string]methodDescriptor{}

func registerRequest[P, R any](name string, direction Direction) {
	registry[name] = methodDescriptor{
		name:      name,
		direction: direction,
		kind:      KindRequest,
		decodeRequest: func(raw json.RawMessage) (AnyRequest, error) {
			return decodeRequestAs[P](raw, name)
		},
		newResponseTyper: func() func(UntypedResponseMessage) (any, error) {
			return func(u UntypedResponseMessage) (any, error) {
				return DecodeResponse[R](u)
			}
		},
	}
}

func registerNotification[P any](name string, direction Direction) {
	registry[name] = methodDescriptor{
		name:      name,
		direction: direction,
		kind:      KindNotification,
		decodeNotification: func(raw json.RawMessage) (AnyNotification, error) {
			return decodeNotificationAs[P](raw, name)
		},
	}
}

func init() {
	registerRequest[InitializeParams, InitializeResult](MethodInitialize, ClientOrigin)
	registerRequest[struct{}, ShutdownResult](MethodShutdown, ClientOrigin)
	registerRequest[TextDocumentPositionParams, DefinitionResult](MethodTextDocumentDefinition, ClientOrigin)
	registerRequest[TextDocumentPositionParams, HoverResult](MethodTextDocumentHover, ClientOrigin)
	registerRequest[RenameFilesParams, WillRenameFilesResult](MethodWorkspaceWillRenameFiles, ClientOrigin)

	registerRequest[ShowMessageRequestParams, ShowMessageRequestResult](MethodWindowShowMessageRequest, ServerOrigin)
	registerRequest[ShowDocumentParams, ShowDocumentResult](MethodWindowShowDocument, ServerOrigin)
	registerRequest[ApplyWorkspaceEditParams, ApplyWorkspaceEditResult](MethodWorkspaceApplyEdit, ServerOrigin)

	registerNotification[struct{}](MethodInitialized, ClientOrigin)
	registerNotification[struct{}](MethodExit, ClientOrigin)
	registerNotification[DidOpenTextDocumentParams](MethodTextDocumentDidOpen, ClientOrigin)
	registerNotification[DidChangeTextDocumentParams](MethodTextDocumentDidChange, ClientOrigin)
	registerNotification[DidCloseTextDocumentParams](MethodTextDocumentDidClose, ClientOrigin)
	registerNotification[RenameFilesParams](MethodWorkspaceDidRenameFiles, ClientOrigin)

	registerNotification[PublishDiagnosticsParams](MethodTextDocumentPublishDiagnostics, ServerOrigin)
	registerNotification[ShowMessageParams](MethodWindowShowMessage, ServerOrigin)

	registerNotification[CancelParams](MethodCancelRequest, ImplementationDependent)
	registerNotification[ProgressParams](MethodProgress, ImplementationDependent)
}

// LookupMethod returns the descriptor metadata (direction, kind) for a
// known method name.
func LookupMethod(name string) (direction Direction, kind MessageKind, ok bool) {
	d, ok := registry[name]
	if !ok {
		return 0, 0, false
	}
	return d.direction, d.kind, true
}
