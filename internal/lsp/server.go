// Package lsp exposes the completion and code-action engines over the
// Language Server Protocol. All protocol conversion happens at this
// boundary; the inner packages never see glsp types.
package lsp

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"marklink/internal/completion"
	"marklink/internal/config"
	"marklink/internal/diagnostics"
	"marklink/internal/index"
	"marklink/internal/memory"
	"marklink/internal/workspace"
)

const lsName = "marklink"

var version = "0.1.0"

type Server struct {
	handler  *protocol.Handler
	cfg      config.Config
	store    *index.Store
	docs     *memory.Manager
	provider *completion.Provider

	mu              sync.RWMutex
	diagnosticCache map[string][]diagnostics.Diagnostic
}

// NewServer wires the engines together. cfg.Root is the fallback root; the
// client's rootUri takes precedence at initialize. store may be nil for a
// parse-every-time server.
func NewServer(cfg config.Config, store *index.Store) *Server {
	s := &Server{
		cfg:             cfg,
		store:           store,
		docs:            memory.NewManager(),
		diagnosticCache: make(map[string][]diagnostics.Diagnostic),
	}
	s.bindRoot(cfg.Root)

	s.handler = &protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentCompletion: s.textDocumentCompletion,
		TextDocumentCodeAction: s.textDocumentCodeAction,
	}

	return s
}

// bindRoot points the workspace and completion engine at root.
func (s *Server) bindRoot(root string) {
	s.cfg.Root = root
	ws := workspace.NewFS(root, s.cfg.Extensions, s.cfg.IgnoreDirs, s.docs)
	headings := index.NewHeadings(s.store)
	s.provider = completion.NewProvider(ws, headings, s.cfg.Completion.Enabled)
}

// RunStdio serves LSP over stdin/stdout until the client disconnects.
func (s *Server) RunStdio() error {
	return server.NewServer(s.handler, lsName, false).RunStdio()
}

func (s *Server) cacheDiagnostics(uri string, diags []diagnostics.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagnosticCache[uri] = diags
}

func (s *Server) cachedDiagnostics(uri string) []diagnostics.Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.diagnosticCache[uri]
}

func (s *Server) dropDiagnostics(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.diagnosticCache, uri)
}
