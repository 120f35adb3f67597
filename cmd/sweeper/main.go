package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/metanet-market/marketd/internal/account"
	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/config"
	"github.com/metanet-market/marketd/internal/logger"
	"github.com/metanet-market/marketd/internal/messaging"
	"github.com/metanet-market/marketd/internal/providers/jetstream"
	"github.com/metanet-market/marketd/internal/providers/overlay"
	"github.com/metanet-market/marketd/internal/providers/wallet"
	"github.com/metanet-market/marketd/internal/query"
	"github.com/metanet-market/marketd/internal/registry"
	"github.com/metanet-market/marketd/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "sweeper",
			"network": string(cfg.Network),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting expiry sweeper", zap.String("network", string(cfg.Network)))

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Initialize provider clients
	walletClient := wallet.NewClient(adapter.NewHTTPClient(cfg.Wallet.Timeout), wallet.Config{
		URL:     cfg.Wallet.URL,
		Network: cfg.Network,
	})
	indexClient := overlay.NewClient(adapter.NewHTTPClient(cfg.Overlay.Timeout), overlay.Config{
		URL:     cfg.Overlay.URL,
		Service: cfg.Overlay.Service,
	})

	// Connect to NATS for market events; the sweeper runs without it
	var events messaging.Publisher
	if cfg.NATS.URL != "" {
		events, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer events.Close()
	}

	// Assemble the account view the sweeper reclaims through
	queryClient := query.NewService(indexClient, registry.Empty())
	accountView := account.NewService(walletClient, queryClient, clock, events)

	expirySweeper := sweeper.NewExpirySweeper(&sweeper.ExpirySweeperConfig{
		Creator:  cfg.Creator,
		Interval: cfg.Interval,
	}, accountView, clock)

	logger.InfoCtx(ctx, "Initialized expiry sweeper",
		zap.String("creator", string(cfg.Creator)),
		zap.Duration("interval", cfg.Interval),
	)

	// Start sweeper in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := expirySweeper.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "sweeper"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := expirySweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "sweeper"))
	}

	logger.Info("Expiry sweeper stopped")
}
