// Package main is the entry point for the Vitalis Live agent.
// It samples host metrics every second and posts each sample to the
// monitoring backend, running as either a Windows service or a foreground
// process.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis-live/internal/collector"
	"github.com/Guliveer/vitalis-live/internal/config"
	"github.com/Guliveer/vitalis-live/internal/gpu"
	"github.com/Guliveer/vitalis-live/internal/logging"
	"github.com/Guliveer/vitalis-live/internal/models"
	"github.com/Guliveer/vitalis-live/internal/scheduler"
	"github.com/Guliveer/vitalis-live/internal/sender"
	"github.com/Guliveer/vitalis-live/internal/service"
)

// unknownHost is reported when neither a configured id nor the hostname is available.
const unknownHost = "unknown_host"

var (
	// version is set at build time via -ldflags.
	version = "dev"

	configPath  = flag.String("config", "", "Path to configuration file (default: search standard locations)")
	serverURL   = flag.String("server", "", "Monitoring backend URL")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error")
	writeConfig = flag.String("write-config", "", "Write the effective configuration to this path and exit")
	showVersion = flag.Bool("version", false, "Show version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("vitalis-agent %s\n", version)
		os.Exit(0)
	}

	cli := config.CLIOverrides{URL: *serverURL, LogLevel: *logLevel}
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadLayered(cli, embeddedConfig, *configPath)
	} else {
		cfg, err = config.LoadLayered(cli, embeddedConfig)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := config.WriteConfig(cfg, *writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", *writeConfig)
		os.Exit(0)
	}

	logger, err := logging.New(cfg.Logging, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	hostID := resolveHostID(cfg.Agent.HostID)
	logger.Info("Starting Vitalis Live agent",
		zap.String("version", version),
		zap.String("server", cfg.Server.URL),
		zap.String("host_id", hostID))

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	if service.IsWindowsService() {
		logger.Info("Running as Windows service")
		svc := service.New(logger, func(ctx context.Context) {
			runAgent(ctx, cfg, hostID, logger)
		})
		if err := svc.Run(); err != nil {
			logger.Fatal("Service failed", zap.Error(err))
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))
		cancel()
	}()

	runAgent(ctx, cfg, hostID, logger)
	logger.Info("Agent stopped")
}

// runAgent initializes all components and starts the collection/send loop.
// It blocks until the context is cancelled.
func runAgent(ctx context.Context, cfg *config.Config, hostID string, logger *zap.Logger) {
	snd := sender.New(cfg, logger.Named("sender"))

	gpuCollector := collector.NewGPUCollector(gpu.NewNVMLProvider(), logger.Named("gpu"))
	defer func() {
		if err := gpuCollector.Close(); err != nil {
			logger.Warn("GPU shutdown failed", zap.Error(err))
		}
	}()

	registry := collector.NewRegistry(logger)
	registry.Register(collector.NewCPUCollector())
	registry.Register(collector.NewMemoryCollector())
	registry.Register(collector.NewDiskCollector(logger.Named("disk")))
	registry.Register(collector.NewNetworkCollector())
	registry.Register(gpuCollector)

	sched := scheduler.New(registry, hostID, cfg.Agent, logger)
	sched.OnSample(func(m models.SystemMetric) {
		snd.Send(ctx, m)
	})

	logger.Info("Agent running",
		zap.Duration("interval", cfg.Agent.Interval.Duration),
		zap.Duration("baseline", cfg.Agent.Baseline.Duration),
		zap.String("ingest", cfg.Endpoint(sender.IngestPath)))
	sched.Start(ctx)

	sent, dropped := snd.Stats()
	logger.Info("Agent summary", zap.Int("sent", sent), zap.Int("dropped", dropped))
}

// resolveHostID prefers the configured id, then the hostname.
func resolveHostID(configured string) string {
	if configured != "" {
		return configured
	}
	name, err := os.Hostname()
	if err != nil || name == "" {
		return unknownHost
	}
	return name
}
