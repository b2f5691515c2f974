// Package main is the entry point for the Vitalis Live dashboard.
// It subscribes to the backend's metric stream and renders it as live
// terminal charts next to an assistant chat panel.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis-live/internal/chat"
	"github.com/Guliveer/vitalis-live/internal/config"
	"github.com/Guliveer/vitalis-live/internal/logging"
	"github.com/Guliveer/vitalis-live/internal/stream"
	"github.com/Guliveer/vitalis-live/internal/tui"
)

var (
	// version is set at build time via -ldflags.
	version = "dev"

	configPath  = flag.String("config", "", "Path to configuration file (default: search standard locations)")
	serverURL   = flag.String("server", "", "Monitoring backend URL")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error")
	chartHeight = flag.Int("chart-height", 2, "Rows per chart series")
	showVersion = flag.Bool("version", false, "Show version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("vitalis-dash %s\n", version)
		os.Exit(0)
	}

	cli := config.CLIOverrides{URL: *serverURL, LogLevel: *logLevel}
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadLayered(cli, nil, *configPath)
	} else {
		cfg, err = config.LoadLayered(cli, nil)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "vitalis-dash needs an interactive terminal")
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs only go to the configured file.
	logger, err := logging.New(cfg.Logging, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Dashboard exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	eventsURL := cfg.Endpoint(cfg.Dashboard.EventsPath)
	client := stream.New(eventsURL,
		stream.WithLogger(logger),
		stream.WithRetry(cfg.Dashboard.ReconnectDelay.Duration))

	feed := tui.NewFeed(ctx)
	feed.Bind(client)

	model := tui.New(ctx, tui.Options{
		Stream:      client,
		Feed:        feed,
		Chat:        chat.NewClient(cfg.Endpoint(cfg.Dashboard.ChatPath), logger),
		Logger:      logger,
		ChartHeight: *chartHeight,
	})

	logger.Info("Starting Vitalis Live dashboard",
		zap.String("version", version),
		zap.String("events", eventsURL))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
