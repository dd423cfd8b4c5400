package relay

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
	"github.com/feral-file/ff-placement-indexer/internal/store"
)

// Chain submits relayed transactions to the registry chain
//
//go:generate mockgen -source=relay.go -destination=../mocks/relay.go -package=mocks -mock_names=Chain=MockRelayChain,Service=MockRelayService
type Chain interface {
	// PendingNonce returns the transaction count of an account including pending transactions
	PendingNonce(ctx context.Context, account common.Address) (uint64, error)

	// SubmitMetaTransaction signs and submits a meta transaction with the given nonce
	SubmitMetaTransaction(ctx context.Context, key *ecdsa.PrivateKey, nonce uint64, mtx domain.MetaTransaction) (common.Hash, error)
}

// ExecuteResult is the outcome of a relayed meta transaction
type ExecuteResult struct {
	TxHash common.Hash
	Nonce  uint64
}

// ResyncResult is the nonce the next relayed transaction will use
type ResyncResult struct {
	Nonce uint64
}

// Service relays user-signed meta transactions with a hot-wallet relayer
type Service interface {
	// Relayer returns the relayer address
	Relayer() common.Address

	// ExecuteMetaTransaction allocates the next relayer nonce and submits the transaction with it
	ExecuteMetaTransaction(ctx context.Context, mtx domain.MetaTransaction) (*ExecuteResult, error)

	// ResyncNonce resets the stored counter from the ledger transaction count
	ResyncNonce(ctx context.Context) (*ResyncResult, error)
}

type service struct {
	key     *ecdsa.PrivateKey
	relayer common.Address
	store   store.Store
	chain   Chain
}

// NewService creates a relay service for the relayer key
func NewService(key *ecdsa.PrivateKey, st store.Store, chain Chain) Service {
	return &service{
		key:     key,
		relayer: crypto.PubkeyToAddress(key.PublicKey),
		store:   st,
		chain:   chain,
	}
}

// NewServiceFromHex creates a relay service from a hex encoded relayer key, with or without 0x prefix
func NewServiceFromHex(hexKey string, st store.Store, chain Chain) (Service, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid relayer private key: %w", err)
	}
	return NewService(key, st, chain), nil
}

func (s *service) Relayer() common.Address {
	return s.relayer
}

func (s *service) ExecuteMetaTransaction(ctx context.Context, mtx domain.MetaTransaction) (*ExecuteResult, error) {
	if err := mtx.Validate(); err != nil {
		return nil, err
	}

	nonce, err := s.store.NextRelayNonce(ctx, s.relayer.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to allocate relay nonce: %w", err)
	}

	txHash, err := s.chain.SubmitMetaTransaction(ctx, s.key, nonce, mtx)
	if err != nil {
		// The counter stays advanced, a resync recovers the gap
		logger.ErrorCtx(ctx, fmt.Errorf("failed to submit meta transaction: %w", err),
			zap.String("relayer", s.relayer.Hex()),
			zap.String("user", mtx.UserAddress.Hex()),
			zap.Uint64("nonce", nonce))
		return nil, fmt.Errorf("failed to submit meta transaction with nonce %d: %w", nonce, err)
	}

	logger.InfoCtx(ctx, "Relayed meta transaction",
		zap.String("relayer", s.relayer.Hex()),
		zap.String("user", mtx.UserAddress.Hex()),
		zap.Uint64("nonce", nonce),
		zap.String("txHash", txHash.Hex()))

	return &ExecuteResult{TxHash: txHash, Nonce: nonce}, nil
}

func (s *service) ResyncNonce(ctx context.Context) (*ResyncResult, error) {
	count, err := s.chain.PendingNonce(ctx, s.relayer)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending nonce of %s: %w", s.relayer.Hex(), err)
	}
	if count > math.MaxInt64 {
		return nil, errors.New("pending nonce overflows int64")
	}

	// The next increment brings the counter back to count
	if err := s.store.SetRelayNonce(ctx, s.relayer.Hex(), int64(count)-1); err != nil {
		return nil, fmt.Errorf("failed to store relay nonce: %w", err)
	}

	logger.InfoCtx(ctx, "Resynced relay nonce",
		zap.String("relayer", s.relayer.Hex()),
		zap.Uint64("nonce", count))

	return &ResyncResult{Nonce: count}, nil
}
