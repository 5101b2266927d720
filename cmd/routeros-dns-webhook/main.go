package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jroosing/routeros-dns-webhook/internal/config"
	"github.com/jroosing/routeros-dns-webhook/internal/endpoint"
	"github.com/jroosing/routeros-dns-webhook/internal/logging"
	"github.com/jroosing/routeros-dns-webhook/internal/provider"
	"github.com/jroosing/routeros-dns-webhook/internal/routeros/client"
	"github.com/jroosing/routeros-dns-webhook/internal/webhook"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// cliFlags holds parsed command-line flag values.
type cliFlags struct {
	configPath string
	host       string
	port       int
	debug      bool
	jsonLogs   bool
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&f.host, "host", "", "Override webhook bind host")
	flag.IntVar(&f.port, "port", 0, "Override webhook bind port")
	flag.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&f.jsonLogs, "json-logs", false, "Enable JSON structured logging")
	flag.Parse()
	return f
}

func applyCLIOverrides(cfg *config.Config, f cliFlags) {
	if f.host != "" {
		cfg.Webhook.Host = f.host
	}
	if f.port != 0 {
		cfg.Webhook.Port = f.port
	}
	if f.debug {
		cfg.Logging.Level = "DEBUG"
	}
	if f.jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
}

func run() error {
	flags := parseFlags()

	cfg, err := config.Load(config.ResolveConfigPath(flags.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyCLIOverrides(cfg, flags)

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
	})
	logger.Info("routeros-dns-webhook starting",
		"routerosHost", cfg.RouterOS.Host,
		"routerosPort", cfg.RouterOS.Port,
		"webhookAddr", fmt.Sprintf("%s:%d", cfg.Webhook.Host, cfg.Webhook.Port),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn := client.New(client.Config{
		Host:        cfg.RouterOS.Host,
		Username:    cfg.RouterOS.Username,
		Password:    cfg.RouterOS.Password,
		Port:        cfg.RouterOS.Port,
		IdleTimeout: cfg.RouterOS.IdleTimeout,
	}, logger)
	defer conn.Close()
	device := client.NewClient(conn)

	p := provider.New(device, endpoint.DomainFilter{
		Include:      cfg.Domain.Include,
		Exclude:      cfg.Domain.Exclude,
		RegexInclude: cfg.Domain.RegexInclude,
		RegexExclude: cfg.Domain.RegexExclude,
	}, logger)

	srv := webhook.New(cfg.Webhook, p, logger)
	logger.Info("webhook server listening", "addr", srv.Addr())

	go func() {
		serveErr := srv.ListenAndServe()
		if serveErr == nil || errors.Is(serveErr, http.ErrServerClosed) {
			return
		}
		logger.Error("webhook server error", "err", serveErr)
		cancel()
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("webhook server shutdown error", "err", err)
	}
	logger.Info("webhook server stopped")

	return nil
}
