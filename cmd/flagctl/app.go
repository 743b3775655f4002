package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/wilbur182/flagreg/internal/config"
	"github.com/wilbur182/flagreg/internal/fdmonitor"
	"github.com/wilbur182/flagreg/internal/features"
	"github.com/wilbur182/flagreg/internal/metrics"
	"github.com/wilbur182/flagreg/internal/store"
	"github.com/wilbur182/flagreg/internal/styles"
	"github.com/wilbur182/flagreg/internal/ui"
	"github.com/wilbur182/flagreg/internal/watch"
)

var (
	errUsage           = errors.New("usage")
	errUnknownFlag     = errors.New("unknown feature flag")
	errNotDebugRuntime = errors.New("debug flag overrides require a debug runtime (set runtime.debug or " + features.DebugEnvVar + "=1)")
	errWatchDisabled   = errors.New("watching is disabled (watch.enabled is false)")
)

// app wires the registry to the configured store for one flagctl invocation.
type app struct {
	cfg    *config.Config
	caps   features.Capabilities
	logger *slog.Logger
	stdout io.Writer

	metrics  *metrics.Recorder
	registry *features.Registry
	flags    *features.Set
	store    store.Backend
	fds      *fdmonitor.Monitor // set while watching
}

func newApp(cfg *config.Config, logger *slog.Logger, stdout io.Writer) (*app, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &app{
		cfg:     cfg,
		caps:    features.DetectCapabilities(cfg.Runtime),
		logger:  logger,
		stdout:  stdout,
		metrics: metrics.NewRecorder(),
	}
	a.registry = features.NewRegistry(
		features.WithLogger(logger),
		features.WithMetrics(a.metrics),
	)

	flags, err := features.Declare(a.registry, a.caps.DebugRuntime, features.Catalog())
	if err != nil {
		return nil, err
	}
	a.flags = flags

	s, err := store.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	a.store = s

	a.registry.Initialize(a.store)
	logger.Debug("flags ready",
		"debugRuntime", a.caps.DebugRuntime,
		"registered", a.registry.Len(),
		"backend", cfg.Store.Backend,
		"path", cfg.StorePath())
	return a, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close store", "err", err)
	}
}

func (a *app) dispatch(cmd string, args []string) error {
	switch cmd {
	case "dump":
		return a.dump()
	case "list":
		return a.list()
	case "get":
		if len(args) != 1 {
			return errUsage
		}
		return a.get(args[0])
	case "set":
		if len(args) != 2 {
			return errUsage
		}
		v, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}
		return a.set(args[0], v)
	case "unset":
		if len(args) != 1 {
			return errUsage
		}
		return a.unset(args[0])
	case "watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return a.watch(ctx)
	default:
		return errUsage
	}
}

func (a *app) dump() error {
	return a.registry.Dump(a.stdout)
}

func (a *app) list() error {
	device, debug := a.registry.Groups()
	groups := []ui.Group{{Title: "DeviceFlags", Rows: rows(device)}}
	if a.caps.DebugRuntime {
		groups = append(groups, ui.Group{Title: "DebugFlags", Rows: rows(debug)})
	} else {
		// Release runtime: only device flags are registered, the rest keep their default.
		var static []ui.Row
		for _, d := range features.Catalog() {
			if _, ok := a.registry.Lookup(d.Key); ok {
				continue
			}
			static = append(static, ui.Row{Key: d.Key, Default: d.Default, Current: a.flags.IsEnabled(d.Key), Description: d.Description})
		}
		groups = append(groups, ui.Group{Title: "StaticFlags", Rows: static})
	}

	color, width := a.terminal()
	if _, err := io.WriteString(a.stdout, ui.RenderFlagTable(groups, styles.New(color), width)); err != nil {
		return err
	}
	if a.caps.ShowTogglerUI() {
		_, err := fmt.Fprintln(a.stdout, "\nToggle with: flagctl set KEY true|false")
		return err
	}
	return nil
}

func rows(flags []*features.DebugFlag) []ui.Row {
	out := make([]ui.Row, len(flags))
	for i, f := range flags {
		out[i] = ui.Row{Key: f.Key(), Default: f.Default(), Current: f.Get(), Description: f.Description()}
	}
	return out
}

// terminal reports whether stdout wants color and its width (0 if unknown).
func (a *app) terminal() (bool, int) {
	f, ok := a.stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		width = 0
	}
	return a.cfg.UI.Color, width
}

func (a *app) get(key string) error {
	f, ok := a.flags.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownFlag, key)
	}
	_, err := fmt.Fprintln(a.stdout, f.Get())
	return err
}

func (a *app) set(key string, value bool) error {
	return a.edit(key, func() error {
		return a.store.SetBoolean(store.Namespace, key, value)
	})
}

func (a *app) unset(key string) error {
	return a.edit(key, func() error {
		return a.store.Remove(store.Namespace, key)
	})
}

// edit applies a store mutation for a registered key and re-initializes so the
// printed state reflects what the store now holds. Device flags are registered
// in every runtime; debug flags only in the debug runtime.
func (a *app) edit(key string, mutate func() error) error {
	f, ok := a.registry.Lookup(key)
	if !ok {
		if _, declared := a.flags.Lookup(key); declared && !a.caps.DebugRuntime {
			return errNotDebugRuntime
		}
		return fmt.Errorf("%w: %q", errUnknownFlag, key)
	}
	if err := mutate(); err != nil {
		return err
	}
	if err := a.reload(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.stdout, f.String())
	return err
}

func (a *app) reload() error {
	if err := a.store.Reload(); err != nil {
		return fmt.Errorf("reload store: %w", err)
	}
	a.registry.Initialize(a.store)
	return nil
}

func (a *app) watch(ctx context.Context) error {
	if !a.cfg.Watch.Enabled {
		return errWatchDisabled
	}

	if addr := a.cfg.Metrics.Addr; addr != "" {
		srv := a.serveMetrics(addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	w, err := watch.New(a.cfg.StorePath(), a.cfg.Watch.Debounce, a.logger)
	if err != nil {
		return fmt.Errorf("watch %s: %w", a.cfg.StorePath(), err)
	}
	defer w.Stop()

	a.fds = fdmonitor.New(a.logger)
	a.logger.Info("watching flag store", "path", a.cfg.StorePath())
	return a.watchLoop(ctx, w.Start())
}

// watchLoop re-initializes the registry for every store change until ctx is
// done or changes is closed.
func (a *app) watchLoop(ctx context.Context, changes <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := a.reload(); err != nil {
				a.logger.Warn("reload failed", "err", err)
			}
			if a.fds != nil {
				a.fds.Check("reload")
			}
		}
	}
}

func (a *app) serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server", "addr", addr, "err", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", addr)
	return srv
}
