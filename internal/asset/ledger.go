package asset

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
)

// EVMLedger answers token ownership queries on EVM chains.
// Calls that revert or return no data must fail with domain.ErrContractReverted.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/asset_ledger.go -package=mocks -mock_names=EVMLedger=MockEVMLedger,TezosLedger=MockTezosLedger
type EVMLedger interface {
	// OwnerOf returns the current owner of an ERC721 token
	OwnerOf(ctx context.Context, chain domain.Chain, contract common.Address, tokenID *big.Int) (common.Address, error)

	// BalanceOf returns the ERC1155 balance of an account for a token
	BalanceOf(ctx context.Context, chain domain.Chain, contract common.Address, account common.Address, tokenID *big.Int) (*big.Int, error)
}

// TezosLedger answers FA2 balance queries on Tezos networks
type TezosLedger interface {
	// FA2BalanceOf returns the FA2 balance of an account for a token, zero when the account holds none
	FA2BalanceOf(ctx context.Context, chain domain.Chain, contract string, account string, tokenID string) (*big.Int, error)
}

// unanswerable reports whether a ledger error can never succeed on retry,
// such as a chain with no configured client or a query the ledger rejects.
// The asset is then reported as not owned and the failure is alerted.
func unanswerable(ctx context.Context, record *domain.PlacementRecord, kind domain.AssetKind, err error) bool {
	if !errors.Is(err, domain.ErrUnsupportedChain) && !errors.Is(err, domain.ErrInvalidOwnershipQuery) {
		return false
	}

	logger.ErrorCtx(ctx, domain.NewOwnershipCheckError(record.AssetID, kind, err),
		zap.String("publisher", record.Publisher.Hex()),
		zap.Uint64("blockNumber", record.BlockNumber),
	)
	return true
}
