package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mintstream/marketplace-indexer/internal/adapter"
	"github.com/mintstream/marketplace-indexer/internal/api/server"
	"github.com/mintstream/marketplace-indexer/internal/config"
	ethereum "github.com/mintstream/marketplace-indexer/internal/ethereum"
	"github.com/mintstream/marketplace-indexer/internal/importer"
	"github.com/mintstream/marketplace-indexer/internal/logger"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
			"service": "api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting API server")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
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

	// Initialize ethereum client (imports classify contracts and backfill)
	ethDialer := adapter.NewEthClientDialer()
	adapterEthClient, err := ethDialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err), zap.String("rpc_url", cfg.Ethereum.RPCURL))
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

	// Import backfills route decoded events through the same reconciler the
	// indexer uses. Metadata resolution is skipped here; imported items get
	// placeholder names until the indexer touches them.
	rec := reconciler.New(
		cfg.Ethereum.ChainID,
		cfg.Ethereum.MarketplaceAddress,
		ethereumClient,
		dataStore,
		nil,
		publisher,
		jsonAdapter,
	)

	imp := importer.New(ctx, importer.Config{
		KnownFloorBlock: cfg.Import.KnownFloorBlock,
		ChunkSize:       cfg.Import.ChunkSize,
		WorkerPoolSize:  cfg.Import.WorkerPoolSize,
		WorkerQueueSize: cfg.Import.WorkerQueueSize,
	}, cfg.Ethereum.ChainID, ethereumClient, dataStore, rec, publisher)

	// Create API server
	apiServer := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, cfg.Ethereum.ChainID, dataStore, imp)

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for server errors
	errCh := make(chan error, 1)

	// Start server
	go func() {
		if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "api server"))
	}
	// Drain in-flight imports before tearing down their context, then stop
	// the HTTP server
	imp.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(err)
	}

	logger.Info("API server stopped")
}
