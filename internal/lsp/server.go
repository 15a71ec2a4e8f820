// Package lsp serves package.json annotations over the Language Server
// Protocol. Decorations are published as informational diagnostics whose
// message is the inline label, and the rich tooltip is answered through
// textDocument/hover.
package lsp

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/react-native-community/vscode-react-native-directory/pkg/annotate"
	"github.com/react-native-community/vscode-react-native-directory/pkg/buildinfo"
	"github.com/react-native-community/vscode-react-native-directory/pkg/config"
	"github.com/react-native-community/vscode-react-native-directory/pkg/directory"
	"github.com/react-native-community/vscode-react-native-directory/pkg/httputil"
)

// CommandRefresh re-annotates the active document on request.
const CommandRefresh = "rndir.refresh"

// Server is the rndir language server.
type Server struct {
	handler  *protocol.Handler
	logger   *log.Logger
	docs     *documents
	display  *display
	breakers *httputil.Breakers

	// newDirectory builds the lookup backend for a configuration.
	newDirectory func(config.Config) annotate.Directory

	mu         sync.Mutex
	cfg        config.Config
	controller *annotate.Controller
}

// Option configures a Server.
type Option func(*Server)

// WithDirectory replaces the directory client, regardless of configuration.
func WithDirectory(dir annotate.Directory) Option {
	return func(s *Server) {
		s.newDirectory = func(config.Config) annotate.Directory { return dir }
	}
}

// New creates a language server with cfg as its base configuration.
// Initialization options sent by the client are layered on top.
func New(cfg config.Config, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		logger:   logger,
		docs:     newDocuments(),
		display:  newDisplay(),
		breakers: httputil.NewBreakers(cfg.BreakerThreshold),
		cfg:      cfg,
	}
	s.newDirectory = s.directoryClient
	for _, opt := range opts {
		opt(s)
	}
	s.handler = &protocol.Handler{
		Initialize:                      s.initialize,
		Initialized:                     s.initialized,
		Shutdown:                        s.shutdown,
		SetTrace:                        s.setTrace,
		TextDocumentDidOpen:             s.textDocumentDidOpen,
		TextDocumentDidChange:           s.textDocumentDidChange,
		TextDocumentDidClose:            s.textDocumentDidClose,
		TextDocumentHover:               s.textDocumentHover,
		WorkspaceDidChangeConfiguration: s.workspaceDidChangeConfiguration,
		WorkspaceExecuteCommand:         s.workspaceExecuteCommand,
	}
	return s
}

// RunStdio serves a single client over stdin and stdout until it exits.
func (s *Server) RunStdio() error {
	return server.NewServer(s.handler, buildinfo.Name, false).RunStdio()
}

func (s *Server) directoryClient(cfg config.Config) annotate.Directory {
	opts := []directory.Option{
		directory.WithBaseURL(cfg.BaseURL),
		directory.WithTimeout(cfg.Timeout()),
		directory.WithBreakers(s.breakers),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, directory.WithUserAgent(cfg.UserAgent))
	}
	return directory.NewClient(opts...)
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.display.attach(ctx.Notify)

	s.mu.Lock()
	if err := s.cfg.Apply(params.InitializationOptions); err != nil {
		s.logger.Warn("ignoring initialization options", "err", err)
	}
	s.mu.Unlock()

	if params.ClientInfo != nil {
		s.logger.Info("client connected", "name", params.ClientInfo.Name)
	}

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{CommandRefresh},
	}

	version := buildinfo.Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo:   &protocol.InitializeResultServerInfo{Name: buildinfo.Name, Version: &version},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Annotations {
		s.enableLocked()
	}
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disableLocked()
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.docs.open(params.TextDocument)
	s.logger.Debug("opened", "uri", doc.uri, "language", doc.languageID)
	if c := s.activeController(); c != nil {
		c.DocumentOpened(doc)
	}
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	prev, _ := s.docs.ActiveDocument()
	doc, err := s.docs.change(uri, params.TextDocument.Version, params.ContentChanges)
	if err != nil {
		return err
	}
	c := s.activeController()
	if c == nil {
		return nil
	}
	if prev == nil || prev.URI() != uri {
		c.ActiveEditorChanged()
		return nil
	}
	c.DocumentChanged(doc)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.close(params.TextDocument.URI)
	s.display.SetDecorations(params.TextDocument.URI, nil)
	return nil
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return s.display.hover(params.TextDocument.URI, params.Position), nil
}

func (s *Server) workspaceDidChangeConfiguration(ctx *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.cfg
	if err := s.cfg.Apply(params.Settings); err != nil {
		s.logger.Warn("ignoring configuration change", "err", err)
		return nil
	}
	switch {
	case !s.cfg.Annotations:
		s.disableLocked()
	case s.controller == nil:
		s.enableLocked()
	case s.cfg != prev:
		s.logger.Debug("configuration changed, restarting annotations")
		s.disableLocked()
		s.enableLocked()
	}
	return nil
}

func (s *Server) workspaceExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	switch params.Command {
	case CommandRefresh:
		if c := s.activeController(); c != nil {
			c.Refresh()
		}
	default:
		s.logger.Warn("unknown command", "command", params.Command)
	}
	return nil, nil
}

func (s *Server) activeController() *annotate.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller
}

func (s *Server) enableLocked() {
	if s.controller != nil {
		return
	}
	s.controller = annotate.New(annotate.Options{
		Editor:    s.docs,
		Directory: s.newDirectory(s.cfg),
		Sink:      s.display,
		Status:    s.display,
		Logger:    s.logger,
		Delay:     s.cfg.Debounce(),
	})
	s.controller.Start()
	s.logger.Debug("annotations enabled")
}

// disableLocked stops the controller and withdraws its decorations.
func (s *Server) disableLocked() {
	if s.controller == nil {
		return
	}
	s.controller.Stop()
	s.controller = nil
	s.display.clearAll()
	s.logger.Debug("annotations disabled")
}
