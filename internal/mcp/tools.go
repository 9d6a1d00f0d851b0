package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func validateFileName(file string) error {
	if strings.ContainsRune(file, '/') || file == "." || file == ".." {
		return fmt.Errorf("invalid state file name %q", file)
	}
	return nil
}

func (s *Server) handleGetWindowState(_ context.Context, _ *mcpsdk.CallToolRequest, args StateInput) (*mcpsdk.CallToolResult, WindowStateOutput, error) {
	if err := validateFileName(args.File); err != nil {
		return nil, WindowStateOutput{}, err
	}
	store := s.openStore(args.File)
	s.logger.Debug("get_window_state", "location", store.Location())
	return nil, stateOutput(store), nil
}

func (s *Server) handleResetWindowState(_ context.Context, _ *mcpsdk.CallToolRequest, args StateInput) (*mcpsdk.CallToolResult, ResetStateOutput, error) {
	if err := validateFileName(args.File); err != nil {
		return nil, ResetStateOutput{}, err
	}
	store := s.openStore(args.File)
	store.ResetToDefault()
	if err := store.Save(nil); err != nil {
		return nil, ResetStateOutput{}, err
	}
	s.logger.Info("window state reset", "location", store.Location())
	return nil, ResetStateOutput{
		Location: store.Location(),
		State:    stateOutput(store),
	}, nil
}

func (s *Server) handleListDisplays(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	if s.displays == nil {
		return nil, ListDisplaysOutput{}, fmt.Errorf("no display server available")
	}
	displays, err := s.displays.Displays()
	if err != nil {
		return nil, ListDisplaysOutput{}, fmt.Errorf("failed to list displays: %w", err)
	}

	out := ListDisplaysOutput{Displays: make([]DisplayInfo, 0, len(displays))}
	for _, d := range displays {
		out.Displays = append(out.Displays, DisplayInfo{
			ID:      d.ID,
			Name:    d.Name,
			Bounds:  rectOutput(d.Bounds),
			Primary: d.Primary,
		})
	}
	return nil, out, nil
}
