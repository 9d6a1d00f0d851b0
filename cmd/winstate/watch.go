package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/1broseidon/winstate/internal/platform"
	"github.com/1broseidon/winstate/internal/winstate"
)

func runRestore(args []string) int {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winstate restore (--window ID | --title TEXT | --active) [--config PATH] [--path DIR] [--file NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Move and resize an X11 window to the saved state.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	sf := addStateFlags(fs)
	wf := addWindowFlags(fs)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if err := wf.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := sf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg)

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Disconnect()

	win, err := wf.resolve(backend)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	store := openStore(cfg, backend, logger)
	if err := applySaved(store, win); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Info("window restored", "window", fmt.Sprintf("0x%x", uint32(win.ID())), "location", store.Location())
	return 0
}

// applySaved moves win to the stored bounds before re-applying the window
// flags, so an unmaximize later returns to the saved geometry.
func applySaved(store *winstate.Store, win *platform.X11Window) error {
	width, _ := store.Width()
	height, _ := store.Height()
	bounds := platform.Rect{Width: width, Height: height}
	x, hasX := store.X()
	y, hasY := store.Y()
	if hasX && hasY {
		bounds.X, bounds.Y = x, y
	} else if current, err := win.Bounds(); err == nil {
		bounds.X, bounds.Y = current.X, current.Y
	}
	if err := win.MoveResize(bounds); err != nil {
		return fmt.Errorf("move window: %w", err)
	}

	// Manage applies maximize and full-screen; the listeners are not needed.
	store.Manage(win)
	store.Unmanage()
	return nil
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winstate watch (--window ID | --title TEXT | --active) [--restore] [--metrics-addr ADDR]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Track an X11 window and persist its state until it is destroyed.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	sf := addStateFlags(fs)
	wf := addWindowFlags(fs)
	restore := fs.Bool("restore", false, "Apply the saved bounds before watching")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address (overrides config)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if err := wf.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := sf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	logger := newLogger(cfg)

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Disconnect()

	win, err := wf.resolve(backend)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	store := openStore(cfg, backend, logger, winstate.WithMetrics(winstate.NewMetrics(reg)))
	if cfg.MetricsAddr != "" {
		serveMetrics(cfg.MetricsAddr, reg, logger)
	}

	if *restore {
		if err := applySaved(store, win); err != nil {
			logger.Warn("restore failed", "error", err)
		}
	}

	store.Manage(win)
	// Registered after the store's own listener so the final save happens first.
	stopOnClosed := win.Subscribe(platform.EventClosed, backend.Quit)
	defer stopOnClosed()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())
		store.SaveState(win)
		os.Exit(0)
	}()

	logger.Info("watching window",
		"window", fmt.Sprintf("0x%x", uint32(win.ID())),
		"location", store.Location(),
		"debounce", cfg.DebounceDelay(),
	)
	backend.EventLoop()
	logger.Info("window closed", "location", store.Location())
	return 0
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
}
