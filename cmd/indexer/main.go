package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mintstream/marketplace-indexer/internal/adapter"
	"github.com/mintstream/marketplace-indexer/internal/backfill"
	"github.com/mintstream/marketplace-indexer/internal/config"
	ethereum "github.com/mintstream/marketplace-indexer/internal/ethereum"
	"github.com/mintstream/marketplace-indexer/internal/live"
	"github.com/mintstream/marketplace-indexer/internal/logger"
	"github.com/mintstream/marketplace-indexer/internal/metadata"
	"github.com/mintstream/marketplace-indexer/internal/notify"
	"github.com/mintstream/marketplace-indexer/internal/reconciler"
	"github.com/mintstream/marketplace-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadIndexerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "indexer",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting indexer")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()

	// Initialize ethereum client
	ethDialer := adapter.NewEthClientDialer()
	adapterEthClient, err := ethDialer.Dial(ctx, cfg.Ethereum.WebSocketURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err), zap.String("websocket_url", cfg.Ethereum.WebSocketURL))
	}
	defer adapterEthClient.Close()
	ethereumClient := ethereum.NewClient(cfg.Ethereum.ChainID, adapterEthClient, clockAdapter)

	// Initialize NATS publisher
	var publisher notify.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = notify.NewJetStreamPublisher(notify.Config{
			URL:            cfg.NATS.URL,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, natsJS, jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Connected to NATS JetStream")
	} else {
		publisher = notify.NewNoopPublisher()
		logger.InfoCtx(ctx, "NATS disabled, notifications dropped")
	}
	defer publisher.Close()

	// Initialize metadata resolver
	httpClient := adapter.NewHTTPClient(cfg.Metadata.HTTPTimeout)
	resolver := metadata.NewResolver(ethereumClient, httpClient, cfg.Metadata.IPFSGateway)

	// Reconciler applies decoded events to the store
	rec := reconciler.New(
		cfg.Ethereum.ChainID,
		cfg.Ethereum.MarketplaceAddress,
		ethereumClient,
		dataStore,
		resolver,
		publisher,
		jsonAdapter,
	)

	// The core stream tracks the marketplace, the configured collections and
	// every previously imported collection
	coreContracts := append([]string{cfg.Ethereum.MarketplaceAddress}, cfg.Ethereum.Contracts...)
	imported, err := dataStore.ListFinishedImportedContracts(ctx, cfg.Ethereum.ChainID)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to list imported contracts", zap.Error(err))
	}
	contracts := append([]string{}, coreContracts...)
	for _, record := range imported {
		contracts = append(contracts, record.ContractAddress)
	}

	streamID := fmt.Sprintf("core:%s", cfg.Ethereum.ChainID)
	engine := backfill.NewEngine(backfill.Config{
		StreamID:   streamID,
		Contracts:  contracts,
		StartBlock: cfg.Ethereum.StartBlock,
		ChunkSize:  cfg.Ethereum.ChunkSize,
	}, cfg.Ethereum.ChainID, ethereumClient, ethereum.NewDecoder(cfg.Ethereum.ChainID), dataStore, rec)

	// Catch up to the current head before following live
	head, err := ethereumClient.BlockNumber(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to get chain head", zap.Error(err))
	}
	last, err := engine.Run(ctx, head)
	if err != nil {
		logger.FatalCtx(ctx, "Backfill failed", zap.Error(err), zap.Uint64("head", head))
	}
	logger.InfoCtx(ctx, "Backfill caught up", zap.Uint64("lastBlock", last))

	follower := live.NewFollower(streamID, cfg.Ethereum.ChainID, coreContracts, ethereumClient, dataStore, engine)

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for follower errors
	errCh := make(chan error, 1)

	// Start the live follower. Connection loss is fatal: the process exits
	// and the supervisor restarts it, resuming from the checkpoint.
	go func() {
		if err := follower.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	exitCode := waitForStop(ctx, sigCh, errCh)
	cancel()

	// Give some time for graceful shutdown
	time.Sleep(time.Second)

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Indexer stopped")

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// waitForStop blocks until a shutdown signal or a follower error arrives and
// returns the process exit code. A follower failure exits non-zero so the
// supervisor restarts the indexer, which resumes from the persisted
// checkpoint.
func waitForStop(ctx context.Context, sigCh <-chan os.Signal, errCh <-chan error) int {
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		return 0
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "live follower"))
		return 1
	}
}
