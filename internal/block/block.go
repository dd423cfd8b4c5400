package block

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-placement-indexer/internal/adapter"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
)

// DefaultMaxCachedTimestamps bounds the timestamp cache when Config leaves it unset
const DefaultMaxCachedTimestamps = 4096

// head is the cached chain head
type head struct {
	number    uint64
	fetchedAt time.Time
}

// BlockProvider provides cached access to the chain head of the registry chain
// and to block timestamps, which become the placedAt time of placements.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider,BlockFetcher=MockBlockFetcher
type BlockProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// GetBlockTimestamp returns the timestamp for a given block number, potentially from cache
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// BlockFetcher is the interface for fetching block information from the blockchain
type BlockFetcher interface {
	// FetchLatestBlock fetches the latest block from the blockchain
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// FetchBlockTimestamp fetches the timestamp for a given block number
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TTL is how long to cache the head block number
	TTL time.Duration

	// StaleWindow is how long a cached head may still be served when fetching fails
	StaleWindow time.Duration

	// MaxCachedTimestamps bounds the number of cached block timestamps.
	// The oldest blocks are evicted first.
	MaxCachedTimestamps int
}

type blockProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu         sync.RWMutex
	head       *head
	timestamps map[uint64]time.Time
}

// NewBlockProvider creates a new BlockProvider with caching
func NewBlockProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	if config.MaxCachedTimestamps <= 0 {
		config.MaxCachedTimestamps = DefaultMaxCachedTimestamps
	}

	return &blockProvider{
		fetcher:    fetcher,
		config:     config,
		clock:      clock,
		timestamps: make(map[uint64]time.Time),
	}
}

// GetLatestBlock returns the latest block number, using cache if valid
func (p *blockProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.fetchedAt) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached block number", zap.Uint64("block_number", cached.number))
		return cached.number, nil
	}

	blockNumber, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.fetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Using stale block number", zap.Uint64("block_number", cached.number), zap.Error(err))
			return cached.number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	// a lagging RPC node must not move the cached head backwards
	if p.head == nil || blockNumber >= p.head.number {
		p.head = &head{number: blockNumber, fetchedAt: now}
	} else {
		blockNumber = p.head.number
		p.head.fetchedAt = now
	}
	p.mu.Unlock()

	return blockNumber, nil
}

// GetBlockTimestamp returns the timestamp for a given block number
// Timestamps are immutable so cached entries never expire, they are only evicted.
func (p *blockProvider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	p.mu.RLock()
	cached, ok := p.timestamps[blockNumber]
	p.mu.RUnlock()

	if ok {
		return cached, nil
	}

	timestamp, err := p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch block timestamp for block %d: %w", blockNumber, err)
	}

	p.mu.Lock()
	p.timestamps[blockNumber] = timestamp
	p.evictLocked()
	p.mu.Unlock()

	return timestamp, nil
}

// evictLocked drops the oldest blocks once the cache is over capacity
func (p *blockProvider) evictLocked() {
	overflow := len(p.timestamps) - p.config.MaxCachedTimestamps
	if overflow <= 0 {
		return
	}

	numbers := make([]uint64, 0, len(p.timestamps))
	for n := range p.timestamps {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })

	for _, n := range numbers[:overflow] {
		delete(p.timestamps, n)
	}
}
