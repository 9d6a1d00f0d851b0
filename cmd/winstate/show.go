package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/winstate/internal/config"
	"github.com/1broseidon/winstate/internal/platform"
	"github.com/1broseidon/winstate/internal/winstate"
)

// openDisplays connects to X11 for display bounds. Commands that only read
// or write the state file keep working without a display server.
func openDisplays(logger *slog.Logger) (*platform.LinuxBackend, platform.DisplayService) {
	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		logger.Warn("display server unavailable; skipping display checks", "error", err)
		return nil, nil
	}
	return backend, backend
}

func openStore(cfg *config.Config, displays platform.DisplayService, logger *slog.Logger, extra ...winstate.Option) *winstate.Store {
	options := append([]winstate.Option{
		winstate.WithLogger(logger),
		winstate.WithDebounceDelay(cfg.DebounceDelay()),
	}, extra...)
	return winstate.New(cfg.StoreOptions(), displays, options...)
}

func runShow(args []string) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winstate show [--json] [--config PATH] [--path DIR] [--file NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the saved window state as it would be restored on the current displays.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	sf := addStateFlags(fs)
	jsonOut := fs.Bool("json", false, "Output the record as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "show takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := sf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg)
	backend, displays := openDisplays(logger)
	defer backend.Disconnect()

	store := openStore(cfg, displays, logger)
	switch {
	case *jsonOut:
		err = renderJSON(os.Stdout, store)
	case term.IsTerminal(int(os.Stdout.Fd())):
		renderStyled(os.Stdout, store)
	default:
		renderPlain(os.Stdout, store)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runReset(args []string) int {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winstate reset [--config PATH] [--path DIR] [--file NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Overwrite the saved state with the default size on the primary display.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	sf := addStateFlags(fs)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reset takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := sf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg)
	backend, displays := openDisplays(logger)
	defer backend.Disconnect()

	store := openStore(cfg, displays, logger)
	store.ResetToDefault()
	if err := store.Save(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("reset: %s\n", store.Location())
	return 0
}

type showField struct {
	label string
	value string
}

func showFields(store *winstate.Store) []showField {
	optInt := func(v int, ok bool) string {
		if !ok {
			return "-"
		}
		return strconv.Itoa(v)
	}
	display := "-"
	if db, ok := store.DisplayBounds(); ok {
		display = fmt.Sprintf("%dx%d+%d+%d", db.Width, db.Height, db.X, db.Y)
	}
	return []showField{
		{"location", store.Location()},
		{"x", optInt(store.X())},
		{"y", optInt(store.Y())},
		{"width", optInt(store.Width())},
		{"height", optInt(store.Height())},
		{"maximized", strconv.FormatBool(store.IsMaximized())},
		{"full_screen", strconv.FormatBool(store.IsFullScreen())},
		{"display", display},
	}
}

func renderPlain(w io.Writer, store *winstate.Store) {
	for _, f := range showFields(store) {
		fmt.Fprintf(w, "%-12s %s\n", f.label+":", f.value)
	}
}

func renderJSON(w io.Writer, store *winstate.Store) error {
	out := struct {
		Location string          `json:"location"`
		State    winstate.Record `json:"state"`
	}{
		Location: store.Location(),
		State:    store.Snapshot(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderStyled(w io.Writer, store *winstate.Store) {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(12).
		Align(lipgloss.Right).
		PaddingRight(1)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15"))
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Window state")

	rows := []string{header, ""}
	for _, f := range showFields(store) {
		style := valueStyle
		if f.value == "-" {
			style = dimStyle
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(f.label), style.Render(f.value)))
	}
	fmt.Fprintln(w, lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
