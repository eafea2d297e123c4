package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/app/demos"
	"github.com/rook-computer/panels/internal/opts"
)

const progName = "panels"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func fail(stderr io.Writer, err error) {
	fmt.Fprintf(stderr, "%s: error: %v\n", progName, err)
}

// run returns the process exit status: 2 for a bad command line, 1 when
// the display or the demo fails.
func run(args []string, stdout, stderr io.Writer) int {
	o, err := opts.Parse(progName, args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fail(stderr, err)
		if errors.Is(err, opts.ErrUsage) {
			return 2
		}
		return 1
	}

	registry := app.NewRegistry(demos.All()...)
	if o.List {
		for _, name := range registry.Names() {
			d, _ := registry.Lookup(name)
			fmt.Fprintf(stdout, "%-18s %s\n", name, app.Description(d))
		}
		return 0
	}
	if len(o.Args) == 0 {
		fail(stderr, errors.New("the following arguments are required: demo"))
		return 2
	}
	demo, ok := registry.Lookup(o.Args[0])
	if !ok {
		fail(stderr, fmt.Errorf("argument demo: invalid choice: '%s' (choose from %s)", o.Args[0], strings.Join(registry.Names(), ", ")))
		return 2
	}

	// Console output is lost once the framebuffer owns the screen, so
	// panics are only diagnosable from this file.
	if o.StdioLog != "" {
		if err := redirectStdio(o.StdioLog); err != nil {
			fmt.Fprintln(stderr, "stdio log redirect error:", err)
		}
	}

	logger, deviceLogger, closeLog := newLoggers(o.Debug, stderr)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(stdout, opts.DisplaySettings(o))
	dev, err := opts.CreateDevice(ctx, o, deviceLogger)
	if err != nil {
		fail(stderr, err)
		return 1
	}

	a := app.New(dev, o)
	a.Logger = logger
	if err := a.Run(ctx, demo); err != nil {
		fail(stderr, err)
		return 1
	}
	return 0
}

// newLoggers returns the demo logger and the quieter one handed to the
// device. With debug both write everything to ./panels-debug.log.
func newLoggers(debug bool, stderr io.Writer) (logger, deviceLogger app.Logger, closeLog func()) {
	stderrLogger := app.NewFileLogger(stderr)
	if !debug {
		return stderrLogger, app.ErrorsOnly{Logger: stderrLogger}, func() {}
	}
	f, err := os.OpenFile("./panels-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintln(stderr, "debug log open error:", err)
		return stderrLogger, app.ErrorsOnly{Logger: stderrLogger}, func() {}
	}
	l := app.NewFileLogger(f)
	l.Infof("main", "debug logging enabled")
	return l, l, func() { _ = f.Close() }
}
