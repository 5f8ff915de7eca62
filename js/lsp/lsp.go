// Package lsp serves parse diagnostics over the language server protocol.
// Documents are synchronized in full on every change and reparsed; the
// resulting diagnostics are published back to the client.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/jsfront/js/parser"
	"github.com/dhamidi/jsfront/js/workspace"
)

const lsName = "jsfront"

var log = commonlog.GetLogger("jsfront.lsp")

type Server struct {
	workspace *workspace.Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewServer(version string) *Server {
	ls := &Server{
		version:   version,
		workspace: workspace.New("."),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	ls.workspace = workspace.New(rootDir)
	log.Infof("initialize: root %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	ls.update(ctx, doc.URI, SourceTypeFor(doc.URI, doc.LanguageID), doc.Text, doc.Version)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		log.Warningf("ignoring incremental change to %s", params.TextDocument.URI)
		return nil
	}
	uri := params.TextDocument.URI
	st := SourceTypeFor(uri, "")
	if f := ls.workspace.GetFile(uri); f != nil {
		st = f.SourceType
	}
	ls.update(ctx, uri, st, whole.Text, params.TextDocument.Version)
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	uri := params.TextDocument.URI
	f := ls.workspace.GetFile(uri)
	if f == nil {
		return nil
	}
	ls.update(ctx, uri, f.SourceType, *params.Text, f.Version)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.workspace.RemoveFile(uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, st parser.SourceType, text string, version protocol.Integer) {
	f := ls.workspace.UpdateFile(uri, st, text, version)
	if f.ParseErr != nil {
		log.Errorf("%s: %s", uri, f.ParseErr)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, PublishParams(f))
}

// SourceTypeFor picks the source type of a document from its file name,
// falling back to the client's language id.
func SourceTypeFor(uri protocol.DocumentUri, languageID string) parser.SourceType {
	if path, err := uriToPath(uri); err == nil {
		if st, err := parser.SourceTypeFromPath(path); err == nil {
			return st
		}
	}
	switch languageID {
	case "javascriptreact":
		return parser.JsxModule()
	case "typescript":
		return parser.TypeScriptModule()
	case "typescriptreact":
		return parser.TsxModule()
	}
	return parser.JavaScriptModule()
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
