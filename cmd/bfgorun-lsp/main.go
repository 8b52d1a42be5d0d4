// Package main implements a language server that provides bracket
// diagnostics for Brainfuck programs
package main

import (
	"strings"
	"sync"

	"github.com/retroenv/bfgorun/internal/vm"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "bfgorun-lsp"

var version = "dev"

var handler protocol.Handler

var documents = documentStore{text: map[string]string{}}

type documentStore struct {
	mu   sync.Mutex
	text map[string]string
}

func (s *documentStore) set(uri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text[uri] = text
}

func (s *documentStore) get(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.text[uri]
	return text, ok
}

func (s *documentStore) delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.text, uri)
}

func main() {
	handler = protocol.Handler{
		Initialize:            initialize,
		Initialized:           initialized,
		TextDocumentDidOpen:   textDocumentDidOpen,
		TextDocumentDidChange: textDocumentDidChange,
		TextDocumentDidSave:   textDocumentDidSave,
		TextDocumentDidClose:  textDocumentDidClose,
	}

	server := server.NewServer(&handler, lsName, false)
	server.RunStdio()
}

func initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	full := protocol.TextDocumentSyncKindFull
	caps := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: &protocol.True,
			Change:    &full,
			Save:      protocol.SaveOptions{IncludeText: &protocol.False},
		},
	}

	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: ptrString(version),
		},
	}, nil
}

func initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	documents.set(uri, params.TextDocument.Text)
	return publishDiagnostics(ctx, uri, params.TextDocument.Text)
}

func textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if len(params.ContentChanges) == 0 {
		return nil
	}

	text, ok := extractFullText(params.ContentChanges[len(params.ContentChanges)-1])
	if !ok {
		return nil
	}

	documents.set(uri, text)
	return publishDiagnostics(ctx, uri, text)
}

func textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if text, ok := documents.get(uri); ok {
		return publishDiagnostics(ctx, uri, text)
	}
	return nil
}

func textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	documents.delete(uri)
	return publishDiagnostics(ctx, uri, "")
}

func extractFullText(change any) (string, bool) {
	switch typed := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return typed.Text, true
	case protocol.TextDocumentContentChangeEvent:
		return typed.Text, true
	default:
		return "", false
	}
}

func publishDiagnostics(ctx *glsp.Context, uri string, text string) error {
	diagnostics := []protocol.Diagnostic{}
	if isBrainfuckFile(uri) {
		diagnostics = toDiagnostics(vm.Check(text))
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: diagnostics,
	})
	return nil
}

func isBrainfuckFile(uri string) bool {
	lower := strings.ToLower(uri)
	return strings.HasSuffix(lower, ".bf") || strings.HasSuffix(lower, ".b")
}

func toDiagnostics(issues []vm.Issue) []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	out := make([]protocol.Diagnostic, 0, len(issues))

	for _, issue := range issues {
		start := protocol.Position{
			Line:      uint32(issue.Line - 1),
			Character: uint32(issue.Column - 1),
		}
		end := protocol.Position{
			Line:      start.Line,
			Character: start.Character + 1,
		}
		out = append(out, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Source:   ptrString("bfgorun"),
			Message:  issue.Message,
		})
	}
	return out
}

func ptrString(s string) *string { return &s }
