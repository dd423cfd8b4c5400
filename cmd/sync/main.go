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

	"github.com/feral-file/ff-placement-indexer/internal/config"
	"github.com/feral-file/ff-placement-indexer/internal/indexer"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
	"github.com/feral-file/ff-placement-indexer/internal/store"
	"github.com/feral-file/ff-placement-indexer/internal/sync"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadSyncConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "placement-sync",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	db, err := indexer.OpenDatabase(cfg.Database)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	idx, err := indexer.New(ctx, cfg.IndexerConfig, 0, store.NewPGStore(db), indexer.DefaultAdapters())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize indexer", zap.Error(err))
	}

	code := 0
	if err := runPass(ctx, idx.Engine); err != nil {
		logger.ErrorCtx(ctx, err)
		code = 1
	}

	idx.Close()
	logger.Flush(2 * time.Second)
	os.Exit(code)
}

// runPass runs one pass and waits for its webhook dispatch to finish
func runPass(ctx context.Context, engine sync.Engine) error {
	summary, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("sync pass failed: %w", err)
	}

	// The dispatch is bounded by its own timeout and outlives ctx
	for err := range summary.Dispatched {
		if err != nil {
			logger.WarnCtx(ctx, "Placement dispatch incomplete",
				zap.Error(err),
				zap.Uint64("blockNumber", summary.BlockNumber))
		}
	}

	return nil
}
