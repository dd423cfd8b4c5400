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
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-placement-indexer/internal/adapter"
	"github.com/feral-file/ff-placement-indexer/internal/api/middleware"
	"github.com/feral-file/ff-placement-indexer/internal/api/server"
	"github.com/feral-file/ff-placement-indexer/internal/api/shared/executor"
	"github.com/feral-file/ff-placement-indexer/internal/config"
	"github.com/feral-file/ff-placement-indexer/internal/indexer"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
	"github.com/feral-file/ff-placement-indexer/internal/relay"
	"github.com/feral-file/ff-placement-indexer/internal/store"
	"github.com/feral-file/ff-placement-indexer/internal/sync"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "placement-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Placement Indexer API")

	// Connect to database
	db, err := indexer.OpenDatabase(cfg.Database)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Bool("read_replica", cfg.Database.HasReadReplica()),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
	)
	dataStore := store.NewPGStore(db)

	// Wire the sync pipeline
	idx, err := indexer.New(ctx, cfg.IndexerConfig, cfg.Relay.GasLimit, dataStore, indexer.DefaultAdapters())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize indexer", zap.Error(err))
	}
	defer idx.Close()

	trigger := sync.NewTrigger(idx.Engine, cfg.Sync.MinInterval, adapter.NewClock())

	var relayService relay.Service
	if cfg.Relay.Enabled() {
		relayService, err = relay.NewServiceFromHex(cfg.Relay.PrivateKey, dataStore, idx.Ledger)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to initialize relay", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Meta transaction relay enabled", zap.String("relayer", relayService.Relayer().Hex()))
	} else {
		logger.WarnCtx(ctx, "Relay private key not configured, relay endpoints are disabled")
	}

	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	srv := server.New(serverConfig, executor.NewExecutor(dataStore, trigger, relayService))

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
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}
	cancel()

	// The original ctx is canceled at this point
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Sync.DispatchTimeout+5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}
