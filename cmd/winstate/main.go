package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/winstate/internal/config"
	"github.com/1broseidon/winstate/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "show":
		os.Exit(runShow(os.Args[2:]))
	case "reset":
		os.Exit(runReset(os.Args[2:]))
	case "restore":
		os.Exit(runRestore(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winstate <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  show                Show the saved window state")
	fmt.Fprintln(w, "  reset               Reset the saved state to the default size")
	fmt.Fprintln(w, "  restore             Apply the saved state to an X11 window")
	fmt.Fprintln(w, "  watch               Track an X11 window and save its state on close")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winstate <command> --help' for command-specific options.")
}

// stateFlags are shared by every command that opens a state file.
type stateFlags struct {
	configPath *string
	path       *string
	file       *string
}

func addStateFlags(fs *flag.FlagSet) stateFlags {
	return stateFlags{
		configPath: fs.String("config", "", "Config file path (default: ~/.config/winstate/config.yaml)"),
		path:       fs.String("path", "", "State directory (overrides config)"),
		file:       fs.String("file", "", "State file name (overrides config)"),
	}
}

// load returns the effective config with command-line overrides applied.
func (f stateFlags) load() (*config.Config, error) {
	cfg, err := loadConfig(*f.configPath)
	if err != nil {
		return nil, err
	}
	if *f.path != "" {
		cfg.Path = *f.path
	}
	if *f.file != "" {
		cfg.File = *f.file
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

// parseWindowID accepts decimal or 0x-prefixed hexadecimal X11 window ids.
func parseWindowID(s string) (platform.WindowID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("window id is required")
	}
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	return platform.WindowID(id), nil
}

// windowFlags select the target window of restore and watch.
type windowFlags struct {
	window *string
	title  *string
	active *bool
}

func addWindowFlags(fs *flag.FlagSet) windowFlags {
	return windowFlags{
		window: fs.String("window", "", "X11 window id (decimal or 0x hex)"),
		title:  fs.String("title", "", "Select the first window whose title contains this text"),
		active: fs.Bool("active", false, "Select the focused window"),
	}
}

func (f windowFlags) validate() error {
	n := 0
	if *f.window != "" {
		n++
	}
	if *f.title != "" {
		n++
	}
	if *f.active {
		n++
	}
	if n != 1 {
		return fmt.Errorf("exactly one of --window, --title or --active is required")
	}
	if *f.window != "" {
		_, err := parseWindowID(*f.window)
		return err
	}
	return nil
}

func (f windowFlags) resolve(backend *platform.LinuxBackend) (*platform.X11Window, error) {
	var id platform.WindowID
	var err error
	switch {
	case *f.window != "":
		id, err = parseWindowID(*f.window)
	case *f.title != "":
		id, err = backend.FindWindowByTitle(*f.title)
	default:
		id, err = backend.ActiveWindow()
	}
	if err != nil {
		return nil, err
	}
	return backend.Window(id)
}
