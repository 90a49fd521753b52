package lsp

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	// Registers the commonlog backend glsp writes its own logs to.
	_ "github.com/tliron/commonlog/simple"

	"github.com/yaklabco/exprcst/internal/logging"
	"github.com/yaklabco/exprcst/pkg/check"
)

// ServerName is reported to clients during initialization.
const ServerName = "exprcst"

// Options configures a Server.
type Options struct {
	// Version is reported to clients in the initialize response.
	Version string

	// Engine checks document content. Nil uses the default configuration.
	Engine *check.Engine

	// Logger receives server events. Nil uses the process-wide logger.
	Logger *log.Logger

	// Debug enables protocol tracing in glsp.
	Debug bool
}

// Server speaks the Language Server Protocol over stdio.
type Server struct {
	version   string
	logger    *log.Logger
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
}

// NewServer creates a Server. Call RunStdio to serve.
func NewServer(opts Options) *Server {
	engine := opts.Engine
	if engine == nil {
		engine = check.NewEngine(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	srv := &Server{
		version:   opts.Version,
		logger:    logger,
		workspace: NewWorkspace(engine),
	}

	srv.handler = protocol.Handler{
		Initialize:            srv.initialize,
		Initialized:           srv.initialized,
		Shutdown:              srv.shutdown,
		SetTrace:              srv.setTrace,
		TextDocumentDidOpen:   srv.textDocumentDidOpen,
		TextDocumentDidChange: srv.textDocumentDidChange,
		TextDocumentDidClose:  srv.textDocumentDidClose,
		TextDocumentDidSave:   srv.textDocumentDidSave,
		TextDocumentHover:     srv.textDocumentHover,
	}

	verbosity := 0
	if opts.Debug {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	srv.server = server.NewServer(&srv.handler, ServerName, opts.Debug)

	return srv
}

// Workspace returns the document store backing the server.
func (s *Server) Workspace() *Workspace {
	return s.workspace
}

// RunStdio serves requests on stdin and stdout until the client exits.
func (s *Server) RunStdio() error {
	s.logger.Info("language server starting", logging.FieldVersion, s.version)
	return s.server.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	openClose := true
	includeText := true
	change := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
		Save: &protocol.SaveOptions{
			IncludeText: &includeText,
		},
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	s.logger.Debug("client initialized")
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	s.update(ctx, doc.URI, doc.Version, doc.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	// Full sync: the last change carries the whole document.
	change := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		s.logger.Warn("ignoring incremental change", logging.FieldURI, params.TextDocument.URI)
		return nil
	}

	s.update(ctx, params.TextDocument.URI, params.TextDocument.Version, whole.Text)
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}

	doc := s.workspace.get(params.TextDocument.URI)
	var version protocol.Integer
	if doc != nil {
		version = doc.version
	}
	s.update(ctx, params.TextDocument.URI, version, *params.Text)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.workspace.Close(uri)
	s.publish(ctx, uri)
	return nil
}

func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return s.workspace.Hover(params.TextDocument.URI, params.Position), nil
}

func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, version protocol.Integer, text string) {
	if err := s.workspace.Update(context.Background(), uri, version, text); err != nil {
		s.logger.Error("failed to check document", logging.FieldURI, uri, logging.FieldError, err)
		return
	}
	s.publish(ctx, uri)
}

func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri) {
	diagnostics := s.workspace.Diagnostics(uri)
	s.logger.Debug("publishing diagnostics", logging.FieldURI, uri, logging.FieldDiagnostics, len(diagnostics))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}
