package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/ff-placement-indexer/internal/adapter"
	"github.com/feral-file/ff-placement-indexer/internal/asset"
	"github.com/feral-file/ff-placement-indexer/internal/block"
	"github.com/feral-file/ff-placement-indexer/internal/config"
	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/ledger"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
	"github.com/feral-file/ff-placement-indexer/internal/messaging"
	"github.com/feral-file/ff-placement-indexer/internal/placement"
	"github.com/feral-file/ff-placement-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-placement-indexer/internal/providers/jetstream"
	"github.com/feral-file/ff-placement-indexer/internal/providers/tezos"
	"github.com/feral-file/ff-placement-indexer/internal/store"
	"github.com/feral-file/ff-placement-indexer/internal/sync"
	"github.com/feral-file/ff-placement-indexer/internal/webhook"
)

// Adapters are the external connections the indexer is built on
type Adapters struct {
	Dialer adapter.EthClientDialer
	NatsJS adapter.NatsJetStream
	Clock  adapter.Clock
}

// DefaultAdapters returns the production adapters
func DefaultAdapters() Adapters {
	return Adapters{
		Dialer: adapter.NewEthClientDialer(),
		NatsJS: adapter.NewNatsJetStream(),
		Clock:  adapter.NewClock(),
	}
}

// Indexer is a wired sync pipeline
type Indexer struct {
	Ledger ledger.Ledger
	Engine sync.Engine

	closers []func()
}

// OpenDatabase connects to the primary database and registers the read replica when one is configured
func OpenDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.HasReadReplica() {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.ReadDSN())},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("failed to register read replica: %w", err)
		}
	}

	if err := store.ConfigureConnectionPool(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	return db, nil
}

// New dials every configured chain and wires the sync engine over st
func New(ctx context.Context, cfg config.IndexerConfig, relayGasLimit uint64, st store.Store, adapters Adapters) (*Indexer, error) {
	idx := &Indexer{}
	ok := false
	defer func() {
		if !ok {
			idx.Close()
		}
	}()

	registryClient, err := idx.dial(ctx, adapters.Dialer, cfg.Registry.ChainID, cfg.Registry.RPCURL, cfg.Registry.MaxBlockRange)
	if err != nil {
		return nil, err
	}

	evm := make(map[domain.Chain]ethereum.EthereumClient, len(cfg.Chains))
	for _, chain := range cfg.Chains {
		client, err := idx.dial(ctx, adapters.Dialer, chain.ChainID, chain.RPCURL, 0)
		if err != nil {
			return nil, err
		}
		evm[chain.ChainID] = client.client
	}

	tz := make(map[domain.Chain]tezos.TzKTClient)
	if cfg.Tezos.APIURL != "" {
		tz[cfg.Tezos.ChainID] = tezos.NewTzKTClient(cfg.Tezos.APIURL, adapter.NewHTTPClient(cfg.Tezos.RequestTimeout))
	}

	blocks := block.NewBlockProvider(
		ethereum.NewEthereumBlockFetcher(registryClient.adapter, adapters.Clock),
		block.Config{
			TTL:         cfg.Registry.BlockHeadTTL,
			StaleWindow: cfg.Registry.BlockHeadStaleWindow,
		},
		adapters.Clock,
	)

	idx.Ledger = ledger.New(
		ledger.Config{
			RegistryChain:    cfg.Registry.ChainID,
			RegistryContract: cfg.Registry.RegistryContract(),
			StartBlock:       cfg.Registry.StartBlock,
			MaxBlocksPerPass: cfg.Registry.MaxBlocksPerPass,
			RelayGasLimit:    relayGasLimit,
		},
		registryClient.client,
		blocks,
		evm,
		tz,
	)

	registry, err := asset.NewDefaultRegistry(idx.Ledger, idx.Ledger)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset registry: %w", err)
	}

	signer, err := webhook.NewSignerFromHex(cfg.Webhook.SigningKey)
	if err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "Webhook signer loaded", zap.String("address", signer.Address().Hex()))

	dispatcher := webhook.NewDispatcher(
		webhook.Config{WorkerPoolSize: cfg.Webhook.WorkerPoolSize},
		st,
		adapter.NewHTTPClient(cfg.Webhook.RequestTimeout),
		signer,
		adapter.NewJCS(),
		adapters.Clock,
	)

	var publisher messaging.Publisher
	if cfg.NATS.Enabled {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:             cfg.NATS.URL,
			StreamName:      cfg.NATS.StreamName,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			DuplicateWindow: cfg.NATS.DuplicateWindow,
		}, adapters.NatsJS)
		if err != nil {
			return nil, err
		}
		idx.closers = append(idx.closers, publisher.Close)
		logger.InfoCtx(ctx, "Publishing placements to NATS", zap.String("stream", cfg.NATS.StreamName))
	}

	idx.Engine = sync.NewEngine(
		sync.Config{
			CursorName:        cfg.Sync.CursorName,
			VerifyConcurrency: cfg.Sync.VerifyConcurrency,
			VerifyTimeout:     cfg.Sync.VerifyTimeout,
			DispatchTimeout:   cfg.Sync.DispatchTimeout,
		},
		idx.Ledger,
		placement.NewDecoder(registry),
		registry,
		st,
		dispatcher,
		publisher,
	)

	ok = true
	return idx, nil
}

type dialed struct {
	adapter adapter.EthClient
	client  ethereum.EthereumClient
}

// dial connects to an EVM node and checks that it serves the expected chain
func (i *Indexer) dial(ctx context.Context, dialer adapter.EthClientDialer, chain domain.Chain, rpcURL string, maxBlockRange uint64) (*dialed, error) {
	expected, err := chain.EVMChainID()
	if err != nil {
		return nil, err
	}

	client, err := dialer.Dial(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", chain, err)
	}
	i.closers = append(i.closers, client.Close)

	actual, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id of %s: %w", chain, err)
	}
	if !actual.IsUint64() || actual.Uint64() != expected {
		return nil, fmt.Errorf("rpc endpoint of %s serves chain id %s", chain, actual)
	}

	logger.InfoCtx(ctx, "Connected to EVM chain", zap.String("chain", string(chain)))

	return &dialed{
		adapter: client,
		client:  ethereum.NewClient(chain, client, maxBlockRange),
	}, nil
}

// Close releases every connection in reverse order
func (i *Indexer) Close() {
	for j := len(i.closers) - 1; j >= 0; j-- {
		i.closers[j]()
	}
	i.closers = nil
}
