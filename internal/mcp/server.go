package mcp

import (
	"context"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winstate/internal/config"
	"github.com/1broseidon/winstate/internal/platform"
	"github.com/1broseidon/winstate/internal/winstate"
)

const (
	ServerName    = "winstate"
	ServerVersion = "0.1.0"
)

// Server exposes persisted window state over MCP.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	displays  platform.DisplayService
	logger    *slog.Logger
}

// NewServer creates an MCP server. displays may be nil when no display
// server is reachable; validation then skips clamping.
func NewServer(cfg *config.Config, displays platform.DisplayService, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:   cfg,
		displays: displays,
		logger:   logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_window_state",
		Description: "Read the persisted window geometry (position, size, maximized and full-screen flags) after validating it against the current displays. Fields that were never saved are omitted.",
	}, s.handleGetWindowState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reset_window_state",
		Description: "Replace the persisted window geometry with the configured default size at the origin of the primary display, and save it.",
	}, s.handleResetWindowState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List attached displays with their bounds. Requires a reachable X11 display.",
	}, s.handleListDisplays)
}

func (s *Server) openStore(file string) *winstate.Store {
	opts := s.config.StoreOptions()
	if file != "" {
		opts.File = file
	}
	return winstate.New(opts, s.displays, winstate.WithLogger(s.logger))
}

func stateOutput(store *winstate.Store) WindowStateOutput {
	rec := store.Snapshot()
	out := WindowStateOutput{
		Location:     store.Location(),
		X:            rec.X,
		Y:            rec.Y,
		Width:        rec.Width,
		Height:       rec.Height,
		IsMaximized:  rec.Maximized(),
		IsFullScreen: rec.FullScreen(),
	}
	if rec.DisplayBounds != nil {
		db := rectOutput(*rec.DisplayBounds)
		out.DisplayBounds = &db
	}
	return out
}

func rectOutput(r platform.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
