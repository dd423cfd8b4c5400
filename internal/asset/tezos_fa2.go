package asset

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
)

type tezosFA2Kind struct {
	codec
	ledger TezosLedger
}

// NewTezosFA2Kind creates the cross-chain linked FA2 token kind.
// The EVM publisher proves ownership through the Tezos account linked to it.
func NewTezosFA2Kind(ledger TezosLedger) Kind {
	return &tezosFA2Kind{
		codec: newCodec(
			domain.AssetKindTezosFA2,
			arguments(stringType, stringType),
			arguments(uint256Type, addressType, uint256Type),
		),
		ledger: ledger,
	}
}

func (k *tezosFA2Kind) Encode(a domain.AssetIdentity) (domain.EncodedAssetIdentity, error) {
	asset, ok := a.(domain.TezosFA2Asset)
	if !ok {
		return domain.EncodedAssetIdentity{}, k.mismatch(a)
	}
	if err := asset.Validate(); err != nil {
		return domain.EncodedAssetIdentity{}, err
	}

	tokenID, _ := domain.ParseUint256(asset.TokenID)
	itemNumber, _ := domain.ParseUint256(asset.ItemNumber)
	return k.pack(
		[]interface{}{string(asset.ChainID), asset.ContractAddress},
		[]interface{}{tokenID, asset.PublisherAddress, itemNumber},
	)
}

func (k *tezosFA2Kind) Decode(encoded domain.EncodedAssetIdentity) (domain.AssetIdentity, error) {
	collection, item, err := k.unpack(encoded)
	if err != nil {
		return nil, err
	}

	chainID, ok := collection[0].(string)
	if !ok {
		return nil, k.unexpected(collection[0])
	}
	contract, ok := collection[1].(string)
	if !ok {
		return nil, k.unexpected(collection[1])
	}
	tokenID, ok := item[0].(*big.Int)
	if !ok {
		return nil, k.unexpected(item[0])
	}
	publisher, ok := item[1].(common.Address)
	if !ok {
		return nil, k.unexpected(item[1])
	}
	itemNumber, ok := item[2].(*big.Int)
	if !ok {
		return nil, k.unexpected(item[2])
	}

	asset := domain.TezosFA2Asset{
		ChainID:          domain.Chain(chainID),
		ContractAddress:  contract,
		TokenID:          tokenID.String(),
		PublisherAddress: publisher,
		ItemNumber:       itemNumber.String(),
	}
	if err := asset.Validate(); err != nil {
		return nil, k.invalid(err)
	}

	reencoded, err := k.Encode(asset)
	if err != nil {
		return nil, k.invalid(err)
	}
	if err := k.ensureCanonical(encoded, reencoded); err != nil {
		return nil, err
	}

	return asset, nil
}

// VerifyOwnership requires a linked Tezos account on the record, the record publisher
// to be the identity's publisher, and the linked account to hold at least itemNumber units.
func (k *tezosFA2Kind) VerifyOwnership(ctx context.Context, record *domain.PlacementRecord) (bool, error) {
	asset, ok := record.Asset.(domain.TezosFA2Asset)
	if !ok {
		return false, k.mismatch(record.Asset)
	}

	if record.LinkedAccount == nil || *record.LinkedAccount == "" {
		logger.DebugCtx(ctx, "no linked tezos account for publisher",
			zap.String("assetID", record.AssetID.Hex()),
			zap.String("publisher", record.Publisher.Hex()),
		)
		return false, nil
	}

	if asset.PublisherAddress != record.Publisher {
		return false, nil
	}

	itemNumber, err := domain.ParseUint256(asset.ItemNumber)
	if err != nil {
		return false, err
	}

	balance, err := k.ledger.FA2BalanceOf(ctx, asset.ChainID, asset.ContractAddress, *record.LinkedAccount, asset.TokenID)
	if err != nil {
		if unanswerable(ctx, record, k.kind, err) {
			return false, nil
		}
		return false, domain.NewOwnershipCheckError(record.AssetID, k.kind, err)
	}

	return balance.Cmp(itemNumber) >= 0, nil
}
