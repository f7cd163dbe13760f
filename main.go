// Command term-bg renders a terminal background overlay: it scales an
// image down, fades it and places it near a corner of a transparent canvas
// the size of the terminal, then prints where the result was written.
//
// Usage:
//
//	term-bg [flags] '<config>'
//	term-bg [flags] -config overlay.yaml
//
// The config is a JSON (or YAML) object with the keys sourcePath,
// outputPath, position, scale, opacity, canvasSize/terminalSize and filter.
// On success one line {"success": true, "outputPath": "..."} is printed to
// stdout; on failure {"error": "..."} is printed and the exit status is 1.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	"github.com/nvr-ai/term-bg/compositor"
	"github.com/nvr-ai/term-bg/terminal"
	"github.com/nvr-ai/term-bg/watcher"
)

// response is the single object written to stdout per render.
type response struct {
	Success    bool   `json:"success,omitempty"`
	OutputPath string `json:"outputPath,omitempty"`
	Error      string `json:"error,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		configPath   string
		watch        bool
		detectCanvas bool
		logLevel     string
	)
	fs := flag.NewFlagSet("term-bg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configPath, "config", "", "Path to a JSON or YAML config file (instead of the positional argument)")
	fs.BoolVar(&watch, "watch", false, "Re-render whenever the source image changes")
	fs.BoolVar(&detectCanvas, "detect-canvas", false, "Estimate canvasSize from the terminal when the config leaves it unset")
	fs.StringVar(&logLevel, "log-level", "warn", "Log level on stderr: debug, info, warn or error")

	out := json.NewEncoder(stdout)
	fail := func(err error) int {
		out.Encode(response{Error: err.Error()})
		return 1
	}

	if err := fs.Parse(args); err != nil {
		return fail(err)
	}

	logger, err := newLogger(stderr, logLevel)
	if err != nil {
		return fail(err)
	}
	compositor.SetLogger(logger)

	cfg, err := loadConfig(configPath, fs.Args())
	if err != nil {
		return fail(err)
	}
	if detectCanvas && cfg.CanvasSize == nil && cfg.TerminalSize == nil {
		w, h := terminal.CanvasSize(int(os.Stdout.Fd()), int(os.Stderr.Fd()))
		cfg.CanvasSize = &compositor.Size{Width: w, Height: h}
		logger.Debug("canvas estimated from terminal", "width", w, "height", h)
	}

	render := func() error {
		res, err := compositor.Composite(cfg)
		if err != nil {
			out.Encode(response{Error: err.Error()})
			return err
		}
		return out.Encode(response{Success: true, OutputPath: res.OutputPath})
	}

	if !watch {
		if err := render(); err != nil {
			return 1
		}
		return 0
	}

	// In watch mode a failed render is reported and the loop keeps going;
	// only an invalid config or a watcher failure ends the process.
	if err := render(); compositor.KindOf(err) == compositor.KindInvalidConfig {
		return 1
	}

	w, err := watcher.New(cfg.SourcePath, watcher.DefaultDebounce, logger)
	if err != nil {
		return fail(err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching source", "path", cfg.SourcePath)
	if err := w.Run(ctx, func() { render() }); err != nil {
		return fail(err)
	}
	return 0
}

// loadConfig reads the config from the -config file or the single
// positional argument.
func loadConfig(path string, args []string) (compositor.Config, error) {
	switch {
	case path != "" && len(args) > 0:
		return compositor.Config{}, errors.New("pass the config either with -config or as an argument, not both")
	case path != "":
		return compositor.LoadConfig(path)
	case len(args) == 1:
		return compositor.ParseConfig([]byte(args[0]))
	default:
		return compositor.Config{}, errors.New("Usage: term-bg <config_json>")
	}
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, errors.Wrapf(err, "invalid -log-level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
