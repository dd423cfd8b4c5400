package ledger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-placement-indexer/internal/asset"
	"github.com/feral-file/ff-placement-indexer/internal/block"
	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
	"github.com/feral-file/ff-placement-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-placement-indexer/internal/providers/tezos"
)

// ErrUnsupportedChain is returned when no client is configured for a chain
var ErrUnsupportedChain = domain.ErrUnsupportedChain

// Config holds the registry contract location
type Config struct {
	RegistryChain    domain.Chain
	RegistryContract common.Address

	// StartBlock is the deployment block of the registry contract
	StartBlock uint64

	// MaxBlocksPerPass caps the block span of one FetchEventsSince call, zero means no cap
	MaxBlocksPerPass uint64

	// RelayGasLimit is the gas limit of relayed transactions, zero lets the node estimate it
	RelayGasLimit uint64
}

// Ledger is the single entry point to every chain the indexer talks to
type Ledger interface {
	asset.EVMLedger
	asset.TezosLedger

	// FetchEventsSince returns the placement events above cursor up to the current head
	FetchEventsSince(ctx context.Context, cursor uint64) (*domain.EventBatch, error)

	// PendingNonce returns the transaction count of an account on the registry chain
	PendingNonce(ctx context.Context, account common.Address) (uint64, error)

	// SubmitMetaTransaction relays a meta transaction to the registry contract
	SubmitMetaTransaction(ctx context.Context, key *ecdsa.PrivateKey, nonce uint64, mtx domain.MetaTransaction) (common.Hash, error)
}

type ledger struct {
	config   Config
	registry ethereum.EthereumClient
	blocks   block.BlockProvider
	evm      map[domain.Chain]ethereum.EthereumClient
	tezos    map[domain.Chain]tezos.TzKTClient
}

// New creates a ledger. The registry client also serves ownership queries on the registry chain
// unless evm carries a dedicated client for it.
func New(
	config Config,
	registry ethereum.EthereumClient,
	blocks block.BlockProvider,
	evm map[domain.Chain]ethereum.EthereumClient,
	tz map[domain.Chain]tezos.TzKTClient,
) Ledger {
	clients := make(map[domain.Chain]ethereum.EthereumClient, len(evm)+1)
	for chain, client := range evm {
		clients[chain] = client
	}
	if _, ok := clients[config.RegistryChain]; !ok {
		clients[config.RegistryChain] = registry
	}

	return &ledger{
		config:   config,
		registry: registry,
		blocks:   blocks,
		evm:      clients,
		tezos:    tz,
	}
}

func (l *ledger) FetchEventsSince(ctx context.Context, cursor uint64) (*domain.EventBatch, error) {
	head, err := l.blocks.GetLatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block: %w", err)
	}

	fromBlock := cursor + 1
	if fromBlock < l.config.StartBlock {
		fromBlock = l.config.StartBlock
	}
	if fromBlock > head {
		return &domain.EventBatch{CurrentBlockNumber: head}, nil
	}

	toBlock := head
	if l.config.MaxBlocksPerPass > 0 && toBlock-fromBlock+1 > l.config.MaxBlocksPerPass {
		toBlock = fromBlock + l.config.MaxBlocksPerPass - 1
	}

	logs, err := l.registry.FilterPlacementLogs(ctx, l.config.RegistryContract, fromBlock, toBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to filter placement logs: %w", err)
	}

	events := make([]domain.PlacementEvent, 0, len(logs))
	for _, vLog := range logs {
		if vLog.Removed {
			continue
		}

		event, err := l.registry.ParsePlacementLog(vLog)
		if err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to parse placement log: %w", err),
				zap.String("txHash", vLog.TxHash.Hex()),
				zap.Uint64("blockNumber", vLog.BlockNumber),
				zap.Uint("logIndex", vLog.Index),
			)
			continue
		}

		event.Timestamp, err = l.blocks.GetBlockTimestamp(ctx, event.BlockNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to get block timestamp: %w", err)
		}

		events = append(events, *event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].BlockNumber != events[j].BlockNumber {
			return events[i].BlockNumber < events[j].BlockNumber
		}
		return events[i].LogIndex < events[j].LogIndex
	})

	return &domain.EventBatch{
		CurrentBlockNumber: toBlock,
		Events:             events,
	}, nil
}

func (l *ledger) evmClient(chain domain.Chain) (ethereum.EthereumClient, error) {
	client, ok := l.evm[chain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChain, chain)
	}
	return client, nil
}

func (l *ledger) OwnerOf(ctx context.Context, chain domain.Chain, contract common.Address, tokenID *big.Int) (common.Address, error) {
	client, err := l.evmClient(chain)
	if err != nil {
		return common.Address{}, err
	}
	return client.ERC721OwnerOf(ctx, contract, tokenID)
}

func (l *ledger) BalanceOf(ctx context.Context, chain domain.Chain, contract common.Address, account common.Address, tokenID *big.Int) (*big.Int, error) {
	client, err := l.evmClient(chain)
	if err != nil {
		return nil, err
	}
	return client.ERC1155BalanceOf(ctx, contract, account, tokenID)
}

func (l *ledger) FA2BalanceOf(ctx context.Context, chain domain.Chain, contract string, account string, tokenID string) (*big.Int, error) {
	client, ok := l.tezos[chain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChain, chain)
	}
	return client.GetTokenBalance(ctx, contract, tokenID, account)
}

func (l *ledger) PendingNonce(ctx context.Context, account common.Address) (uint64, error) {
	return l.registry.PendingNonceAt(ctx, account)
}

func (l *ledger) SubmitMetaTransaction(ctx context.Context, key *ecdsa.PrivateKey, nonce uint64, mtx domain.MetaTransaction) (common.Hash, error) {
	return l.registry.SendMetaTransaction(ctx, key, l.config.RegistryContract, nonce, l.config.RelayGasLimit, mtx)
}
