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
	"github.com/metanet-market/marketd/internal/api/middleware"
	"github.com/metanet-market/marketd/internal/api/server"
	"github.com/metanet-market/marketd/internal/config"
	"github.com/metanet-market/marketd/internal/logger"
	"github.com/metanet-market/marketd/internal/messaging"
	"github.com/metanet-market/marketd/internal/providers/jetstream"
	"github.com/metanet-market/marketd/internal/providers/keyserver"
	"github.com/metanet-market/marketd/internal/providers/overlay"
	"github.com/metanet-market/marketd/internal/providers/storage"
	"github.com/metanet-market/marketd/internal/providers/wallet"
	"github.com/metanet-market/marketd/internal/publisher"
	"github.com/metanet-market/marketd/internal/query"
	"github.com/metanet-market/marketd/internal/registry"
	"github.com/metanet-market/marketd/internal/settlement"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadMarketConfig(*configFile, *envPath)
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
			"service": "marketd",
			"network": string(cfg.Network),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting marketd", zap.String("network", string(cfg.Network)))

	// Initialize adapters
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
	cipher := adapter.NewSymmetricCipher()

	// Initialize provider clients
	walletClient := wallet.NewClient(adapter.NewHTTPClient(cfg.Wallet.Timeout), wallet.Config{
		URL:     cfg.Wallet.URL,
		Network: cfg.Network,
	})
	storeClient := storage.NewClient(adapter.NewHTTPClient(cfg.Storage.Timeout), storage.Config{
		UploadURL:     cfg.Storage.UploadURL,
		Gateways:      cfg.Storage.Gateways,
		RetentionDays: cfg.Storage.RetentionDays,
	})
	keyClient := keyserver.NewClient(adapter.NewHTTPClient(cfg.KeyServer.Timeout), keyserver.Config{
		URL: cfg.KeyServer.URL,
	})
	indexClient := overlay.NewClient(adapter.NewHTTPClient(cfg.Overlay.Timeout), overlay.Config{
		URL:     cfg.Overlay.URL,
		Service: cfg.Overlay.Service,
	})

	// Connect to NATS for market events; the market runs without it
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
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS not configured, market events will not be published")
	}

	// Load blacklist registry
	blacklist := registry.Empty()
	if cfg.BlacklistPath != "" {
		blacklistLoader := registry.NewBlacklistRegistryLoader(fs, jsonAdapter)
		blacklist, err = blacklistLoader.Load(cfg.BlacklistPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load blacklist registry",
				zap.Error(err),
				zap.String("path", cfg.BlacklistPath))
		}
		logger.InfoCtx(ctx, "Loaded blacklist registry", zap.String("path", cfg.BlacklistPath))
	} else {
		logger.WarnCtx(ctx, "Blacklist path not configured, all creators will be allowed")
	}

	// Assemble core services
	queryClient := query.NewService(indexClient, blacklist)
	publishSvc := publisher.NewService(walletClient, storeClient, keyClient, cipher, clock, blacklist, events)
	settler := settlement.NewService(walletClient, storeClient, keyClient, cipher, clock, events)
	accountView := account.NewService(walletClient, queryClient, clock, events)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, server.Services{
		Wallet:    walletClient,
		Publisher: publishSvc,
		Query:     queryClient,
		Settler:   settler,
		Account:   accountView,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("marketd stopped")
}
