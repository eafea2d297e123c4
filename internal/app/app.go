// Package app runs a demo against a device: it wires the logger and shared
// helpers into an Env, stops on signal or exit request, and tears the device
// down afterwards.
package app

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rook-computer/panels/internal/device"
	"github.com/rook-computer/panels/internal/opts"
	"github.com/rook-computer/panels/internal/system"
)

// Env is what a demo gets to work with.
type Env struct {
	Device  device.Device
	Options opts.Options
	Logger  Logger
	IP      *system.IPAddressChecker
}

// Demo is one runnable program. Run draws until ctx is done and returns nil
// in that case.
type Demo interface {
	Name() string
	Run(ctx context.Context, env Env) error
}

type funcDemo struct {
	name        string
	description string
	run         func(ctx context.Context, env Env) error
}

// NewDemo adapts a function to Demo.
func NewDemo(name, description string, run func(ctx context.Context, env Env) error) Demo {
	return funcDemo{name: name, description: description, run: run}
}

func (d funcDemo) Name() string                           { return d.name }
func (d funcDemo) Description() string                    { return d.description }
func (d funcDemo) Run(ctx context.Context, env Env) error { return d.run(ctx, env) }

// Description returns d's one line summary, if it has one.
func Description(d Demo) string {
	if desc, ok := d.(interface{ Description() string }); ok {
		return desc.Description()
	}
	return ""
}

// Registry maps demo names to demos.
type Registry struct {
	demos map[string]Demo
}

func NewRegistry(demos ...Demo) *Registry {
	r := &Registry{demos: make(map[string]Demo)}
	for _, d := range demos {
		r.Register(d)
	}
	return r
}

// Register adds d, replacing any demo of the same name.
func (r *Registry) Register(d Demo) { r.demos[d.Name()] = d }

func (r *Registry) Lookup(name string) (Demo, bool) {
	d, ok := r.demos[name]
	return d, ok
}

// Names lists the registered demos, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.demos))
	for name := range r.demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type App struct {
	Device  device.Device
	Options opts.Options
	Logger  Logger
	IP      *system.IPAddressChecker

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(dev device.Device, o opts.Options) *App {
	return &App{
		Device:  dev,
		Options: o,
		Logger:  NoopLogger{},
		IP:      system.NewIPAddressChecker(0),
		exitCh:  make(chan error, 1),
	}
}

// Exit asks Run to stop with err. Only the first request counts.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Run runs demo until it returns, ctx is done or Exit is called, then clears
// panels and closes the device. Interruptions and emulators that stopped
// taking frames end the run without error.
func (app *App) Run(ctx context.Context, demo Demo) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if category, _ := device.Category(app.Options.Display); category == device.CategoryLCD {
		system.StartExitOnF4(runCtx, app.Logger, func() { app.Exit(nil) })
	}

	env := Env{Device: app.Device, Options: app.Options, Logger: app.Logger, IP: app.IP}
	done := make(chan error, 1)
	app.Logger.Infof("app", "running %s on %s", demo.Name(), app.Device)
	go func() { done <- demo.Run(runCtx, env) }()

	var err error
	select {
	case err = <-done:
	case err = <-app.exitCh:
		cancel()
		<-done
	case <-ctx.Done():
		cancel()
		<-done
	}

	if closeErr := app.shutdown(); closeErr != nil {
		app.Logger.Errorf("app", "close %s: %v", app.Device, closeErr)
		if err == nil || isNormalExit(err) {
			err = closeErr
		}
	}
	if isNormalExit(err) {
		app.Logger.Infof("app", "%s finished", demo.Name())
		return nil
	}
	app.Logger.Errorf("app", "%s: %v", demo.Name(), err)
	return err
}

func isNormalExit(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, device.ErrDone)
}

func (app *App) shutdown() error {
	if category, _ := device.Category(app.Options.Display); category != device.CategoryEmulator {
		if err := app.Device.Clear(); err != nil && !errors.Is(err, device.ErrClosed) {
			app.Logger.Errorf("app", "clear: %v", err)
		}
	}
	err := app.Device.Close()
	if errors.Is(err, device.ErrClosed) || errors.Is(err, device.ErrDone) {
		return nil
	}
	return err
}

// Sleep waits for d or until ctx is done, returning ctx's error in that
// case.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
