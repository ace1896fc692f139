// API server entry point for unic-ip.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/unicpatent/unic-ip/internal/application/export"
	"github.com/unicpatent/unic-ip/internal/application/lookup"
	"github.com/unicpatent/unic-ip/internal/application/member"
	"github.com/unicpatent/unic-ip/internal/application/notify"
	"github.com/unicpatent/unic-ip/internal/config"
	"github.com/unicpatent/unic-ip/internal/infrastructure/cache"
	"github.com/unicpatent/unic-ip/internal/infrastructure/kipris"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/prometheus"
	"github.com/unicpatent/unic-ip/internal/infrastructure/registry"
	httpserver "github.com/unicpatent/unic-ip/internal/interfaces/http"
	"github.com/unicpatent/unic-ip/internal/interfaces/http/handlers"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.Info("starting unic-ip api server", logging.Int("port", cfg.Server.Port))

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "unicip",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	metrics := prometheus.NewAppMetrics(collector)

	c, err := cache.New(cfg.Redis, logger)
	if err != nil {
		// A broken cache degrades to direct upstream reads.
		logger.Warn("cache unavailable, continuing without it", logging.Err(err))
		c = cache.NewNopCache()
	}
	defer c.Close()

	registryClient := registry.NewClient(cfg.Registry, logger)
	kiprisClient := kipris.NewClient(cfg.Kipris, logger)

	lookupSvc := lookup.NewService(registryClient, kiprisClient, c, cfg.Lookup, logger, metrics)
	exportWriter := export.NewWriter(logger, metrics)
	verifier := member.NewVerifier(cfg.Member, logger)
	relay := notify.NewRelay(cfg.Notify, logger)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		SearchHandler: handlers.NewSearchHandler(lookupSvc, logger),
		ExportHandler: handlers.NewExportHandler(exportWriter, logger),
		MemberHandler: handlers.NewMemberHandler(verifier, logger),
		NotifyHandler: handlers.NewNotifyHandler(relay, logger),
		HealthHandler: handlers.NewHealthHandler(c, metrics),
		Logger:        logger,
		Metrics:       metrics,
		Collector:     collector,
		Mode:          cfg.Server.Mode,
	})
	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", logging.String("signal", sig.String()))
	}

	if err := srv.Stop(context.Background()); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
