package protocol

import "encoding/json"

// A deliberately small slice of the real LSP param/result schemas --
// enough to exercise the taxonomy end to end. Every method registered in
// method.go uses one of these types (or struct{} where it has no
// params); registering a further method with its schema is a one-line
// registry change, not a taxonomy change.

// DocumentURI is a file:// (or other scheme) URI identifying a document.
type DocumentURI string

// Position is a zero-based line/character offset within a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range spans from Start (inclusive) to End (exclusive).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location identifies a range within a document.
type Location struct {
	URI   DocumentURI `json:"uri"`
	Range Range       `json:"range"`
}

// TextDocumentIdentifier names a document by URI.
type TextDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

// TextDocumentPositionParams is the common params shape for
// position-addressed requests (definition, hover, references, ...).
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// ClientInfo describes the connecting client.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// WorkspaceFolder names one root folder of a multi-root workspace.
type WorkspaceFolder struct {
	URI  DocumentURI `json:"uri"`
	Name string      `json:"name"`
}

// ClientCapabilities is intentionally unexpanded: capability negotiation
// is application logic, out of scope for the core (spec.md Sec.1).
type ClientCapabilities struct {
	Workspace    json.RawMessage `json:"workspace,omitempty"`
	TextDocument json.RawMessage `json:"textDocument,omitempty"`
}

// InitializeParams is the request body for the "initialize" handshake.
type InitializeParams struct {
	ProcessID             *int               `json:"processId,omitempty"`
	ClientInfo            *ClientInfo        `json:"clientInfo,omitempty"`
	RootURI               *DocumentURI       `json:"rootUri,omitempty"`
	InitializationOptions json.RawMessage    `json:"initializationOptions,omitempty"`
	Capabilities          ClientCapabilities `json:"capabilities"`
	WorkspaceFolders      []WorkspaceFolder  `json:"workspaceFolders,omitempty"`
}

// ServerCapabilities is the corresponding unexpanded result-side type.
type ServerCapabilities struct {
	TextDocumentSync json.RawMessage `json:"textDocumentSync,omitempty"`
}

// ServerInfo describes the responding server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeResult is the result of a successful "initialize" request.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// ShutdownResult is always null on success; modeled as an empty struct so
// Response[ShutdownResult] has something concrete to decode into.
type ShutdownResult struct{}

// TextDocumentItem is a document as sent on didOpen.
type TextDocumentItem struct {
	URI        DocumentURI `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int         `json:"version"`
	Text       string      `json:"text"`
}

// DidOpenTextDocumentParams is the params for textDocument/didOpen.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// VersionedTextDocumentIdentifier names a document at a specific version.
type VersionedTextDocumentIdentifier struct {
	URI     DocumentURI `json:"uri"`
	Version int         `json:"version"`
}

// TextDocumentContentChangeEvent describes one incremental or full change.
type TextDocumentContentChangeEvent struct {
	Range *Range `json:"range,omitempty"`
	Text  string `json:"text"`
}

// DidChangeTextDocumentParams is the params for textDocument/didChange.
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// DidCloseTextDocumentParams is the params for textDocument/didClose.
type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// DefinitionResult is a location or list of locations; real LSP allows
// both shapes (and LocationLink), collapsed here to the list form since
// the core only needs to round-trip it.
type DefinitionResult struct {
	Locations []Location
}

func (d DefinitionResult) MarshalJSON() ([]byte, error) {
	if len(d.Locations) == 1 {
		return json.Marshal(d.Locations[0])
	}
	return json.Marshal(d.Locations)
}

func (d *DefinitionResult) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Locations = nil
		return nil
	}
	var one Location
	if err := json.Unmarshal(data, &one); err == nil && one.URI != "" {
		d.Locations = []Location{one}
		return nil
	}
	var many []Location
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	d.Locations = many
	return nil
}

// MarkupContent is a hover/documentation payload.
type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// HoverResult is the result of textDocument/hover.
type HoverResult struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

// Diagnostic describes one issue reported against a document.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity,omitempty"`
	Source   string `json:"source,omitempty"`
	Message  string `json:"message"`
}

// PublishDiagnosticsParams is the params for
// textDocument/publishDiagnostics.
type PublishDiagnosticsParams struct {
	URI         DocumentURI  `json:"uri"`
	Version     *int         `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// ShowMessageParams is the params for window/showMessage.
type ShowMessageParams struct {
	Type    int    `json:"type"`
	Message string `json:"message"`
}

// MessageActionItem is one button offered by a showMessageRequest.
type MessageActionItem struct {
	Title string `json:"title"`
}

// ShowMessageRequestParams is the params for window/showMessageRequest.
type ShowMessageRequestParams struct {
	Type    int                 `json:"type"`
	Message string              `json:"message"`
	Actions []MessageActionItem `json:"actions,omitempty"`
}

// ShowMessageRequestResult is the chosen action, or nil if dismissed.
type ShowMessageRequestResult struct {
	Item *MessageActionItem
}

func (r ShowMessageRequestResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.Item) }
func (r *ShowMessageRequestResult) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		r.Item = nil
		return nil
	}
	var item MessageActionItem
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	r.Item = &item
	return nil
}

// ShowDocumentParams is the params for window/showDocument, a
// server-to-client request.
type ShowDocumentParams struct {
	URI       DocumentURI `json:"uri"`
	TakeFocus bool        `json:"takeFocus,omitempty"`
}

// ShowDocumentResult is the result of window/showDocument.
type ShowDocumentResult struct {
	Success bool `json:"success"`
}

// FileRename describes one entry of a willRenameFiles batch.
type FileRename struct {
	OldURI DocumentURI `json:"oldUri"`
	NewURI DocumentURI `json:"newUri"`
}

// RenameFilesParams is the params for workspace/willRenameFiles and
// workspace/didRenameFiles.
type RenameFilesParams struct {
	Files []FileRename `json:"files"`
}

// TextEdit replaces the content of Range with NewText.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// WorkspaceEdit is a (deliberately narrowed) set of per-document edits.
type WorkspaceEdit struct {
	Changes map[DocumentURI][]TextEdit `json:"changes,omitempty"`
}

// WillRenameFilesResult is the optional workspace edit a server returns
// from workspace/willRenameFiles.
type WillRenameFilesResult struct {
	Edit *WorkspaceEdit
}

func (r WillRenameFilesResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.Edit) }
func (r *WillRenameFilesResult) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		r.Edit = nil
		return nil
	}
	var edit WorkspaceEdit
	if err := json.Unmarshal(data, &edit); err != nil {
		return err
	}
	r.Edit = &edit
	return nil
}

// ApplyWorkspaceEditParams is the params for workspace/applyEdit, a
// server-to-client request.
type ApplyWorkspaceEditParams struct {
	Label string        `json:"label,omitempty"`
	Edit  WorkspaceEdit `json:"edit"`
}

// ApplyWorkspaceEditResult reports whether the client applied the edit.
type ApplyWorkspaceEditResult struct {
	Applied bool `json:"applied"`
}

// ProgressParams carries $/progress notification payloads, which are
// method-agnostic by design -- the token identifies the long-running
// operation, Value is whatever shape that operation defines.
type ProgressParams struct {
	Token json.RawMessage `json:"token"`
	Value json.RawMessage `json:"value"`
}

// CancelParams carries $/cancelRequest notification payloads.
type CancelParams struct {
	ID RequestID `json:"id"`
}
