// Package app assembles the storefront from configuration and runs the
// terminal driver until the user leaves or the process is signalled.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/storefront/internal/cli"
	"github.com/dmitrijs2005/storefront/internal/config"
	"github.com/dmitrijs2005/storefront/internal/idp"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/metrics"
	"github.com/dmitrijs2005/storefront/internal/storage/kv"
	"github.com/dmitrijs2005/storefront/internal/storefront"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// shutdownGrace bounds how long Run waits for the REPL after cancellation.
var shutdownGrace = 3 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	sf       *storefront.Storefront
	provider idp.Provider
	registry *prometheus.Registry
	in       io.Reader
	out      io.Writer
}

// namespaceFile keeps the generated visitor namespace between runs.
func namespaceFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "storefront", "namespace")
}

// NewApp opens the configured store and builds the storefront on it. Logs
// go to logOut so they do not mix with the REPL on out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, logOut)
	if err != nil {
		return nil, err
	}

	if c.StorageDriver == config.DriverRedis || c.StorageDriver == config.DriverPostgres {
		if err := c.EnsureNamespace(namespaceFile()); err != nil {
			return nil, err
		}
	}

	store, err := kv.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	opts := []storefront.Option{
		storefront.WithSessionTTL(c.SessionTTL),
		storefront.WithCurrency(c.Currency),
	}
	var registry *prometheus.Registry
	if c.MetricsAddr != "" {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, storefront.WithMetrics(metrics.NewPrometheus(registry)))
	}

	sf, err := storefront.New(store, logger, opts...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if c.SeedUsers {
		if err := sf.Seed(ctx); err != nil {
			_ = sf.Close()
			return nil, err
		}
	}

	var provider idp.Provider = idp.Local{}
	if c.GoogleClientID != "" {
		g, err := idp.NewGoogle(ctx, c.GoogleClientID, c.GoogleClientSecret, c.GoogleRedirectURL)
		if err != nil {
			_ = sf.Close()
			return nil, fmt.Errorf("google sign-in: %w", err)
		}
		provider = g
	}

	logger.Info(ctx, "storefront ready", "driver", c.StorageDriver, "namespace", c.Namespace)
	return &App{
		config:   c,
		logger:   logger,
		sf:       sf,
		provider: provider,
		registry: registry,
		in:       in,
		out:      out,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startMetricsServer(ctx context.Context) {
	if err := metrics.Serve(ctx, app.config.MetricsAddr, app.registry, app.logger); err != nil {
		app.logger.Error(ctx, "metrics listener failed", "error", err)
	}
}

// Run drives the REPL and returns when it ends or ctx is cancelled. The
// store is closed on return.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup
	if app.registry != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx)
		}()
	}

	// The REPL may sit in a blocking read; a signal must not wait for it.
	done := make(chan struct{})
	go func() {
		defer close(done)
		cli.NewApp(app.sf, app.provider, app.logger, app.in, app.out).Run(ctx)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// A command that is already running finishes before the store
		// closes; a REPL blocked on input is only waited for shutdownGrace.
		select {
		case <-done:
		case <-time.After(shutdownGrace):
			app.logger.Warn(ctx, "terminal still busy, closing storage")
		}
	}
	cancelFunc()
	wg.Wait()

	if err := app.sf.Close(); err != nil {
		app.logger.Error(ctx, "close storage", "error", err)
	}
}
