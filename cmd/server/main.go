package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoCodeAlone/modular"
	"github.com/GoCodeAlone/modular/modules/eventbus/v2"
	"golang.org/x/sync/errgroup"

	"github.com/spacelift-io/flows-app-aws-api/config"
	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/plugins/all"
)

var (
	configFile = flag.String("config", "", "Path to configuration YAML file")
	addr       = flag.String("addr", "", "HTTP listen address (overrides server.address)")
	watch      = flag.Bool("watch", true, "Reload credentials when the config file changes")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}

	logger := cfg.Log.NewLogger(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *configFile, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// server holds the wired components of one host process.
type server struct {
	registry *module.BlockRegistry
	clients  *module.ClientConfigStore
	metrics  *module.MetricsCollector
	invoker  *module.Invoker
	host     *module.BlockHost
	app      modular.Application
}

func newServer(cfg *config.AppConfig, logger *slog.Logger) (*server, error) {
	registry := module.NewBlockRegistry()
	if err := all.LoadAll(registry); err != nil {
		return nil, fmt.Errorf("failed to load plugins: %w", err)
	}

	clients := module.NewClientConfigStore(module.ClientConfigFromApp(cfg.AWS))
	metrics := module.NewMetricsCollector(cfg.Telemetry.MetricsNamespace)
	invoker := module.NewInvoker(registry, clients,
		module.WithInvokerLogger(logger),
		module.WithInvokerMetrics(metrics),
	)

	host := module.NewBlockHost("block-host", cfg.Server.Address, invoker,
		module.WithHostMetrics(metrics),
		module.WithRateLimit(cfg.Server.RateLimit, cfg.Server.Burst),
	)

	app := modular.NewStdApplication(nil, logger)
	// In-process bus for block lifecycle events (block.<type>.<lifecycle>).
	app.RegisterConfigSection("eventbus", modular.NewStdConfigProvider(&eventbus.EventBusConfig{
		Engine:                 "memory",
		MaxEventQueueSize:      1000,
		DefaultEventBufferSize: 10,
		WorkerCount:            5,
		EventTTL:               time.Hour,
		RetentionDays:          1,
	}))
	app.RegisterModule(eventbus.NewModule())
	if cfg.Telemetry.OTLPEndpoint != "" {
		app.RegisterModule(module.NewOTelTracing("tracing", cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName))
	}
	app.RegisterModule(host)

	return &server{
		registry: registry,
		clients:  clients,
		metrics:  metrics,
		invoker:  invoker,
		host:     host,
		app:      app,
	}, nil
}

func run(ctx context.Context, cfg *config.AppConfig, configPath string, logger *slog.Logger) error {
	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	if err := srv.app.Init(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	if err := srv.app.Start(); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}
	logger.Info("block host ready",
		"address", srv.host.Addr(),
		"blocks", srv.registry.Len(),
		"staticCredentials", module.ClientConfigFromApp(cfg.AWS).HasStaticCredentials(),
	)

	g, gctx := errgroup.WithContext(ctx)

	if configPath != "" && *watch {
		watcher := config.NewWatcher(configPath, func(next *config.AppConfig) {
			srv.clients.Set(module.ClientConfigFromApp(next.AWS))
			logger.Info("client configuration reloaded", "endpoint", next.AWS.Endpoint)
		}, config.WithWatchLogger(logger))
		if err := watcher.Start(); err != nil {
			logger.Warn("config watcher disabled", "error", err)
		} else {
			g.Go(func() error {
				<-gctx.Done()
				return watcher.Stop()
			})
		}
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return srv.app.Stop()
	})

	return g.Wait()
}
