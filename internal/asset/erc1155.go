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

type erc1155Kind struct {
	codec
	ledger EVMLedger
}

// NewERC1155Kind creates the multi-owner EVM token kind.
// The same token may be placed once per unit held, indexed by the item number.
func NewERC1155Kind(ledger EVMLedger) Kind {
	return &erc1155Kind{
		codec: newCodec(
			domain.AssetKindERC1155,
			arguments(uint256Type, addressType),
			arguments(uint256Type, addressType, uint256Type),
		),
		ledger: ledger,
	}
}

func (k *erc1155Kind) Encode(a domain.AssetIdentity) (domain.EncodedAssetIdentity, error) {
	asset, ok := a.(domain.ERC1155Asset)
	if !ok {
		return domain.EncodedAssetIdentity{}, k.mismatch(a)
	}
	if err := asset.Validate(); err != nil {
		return domain.EncodedAssetIdentity{}, err
	}

	tokenID, _ := domain.ParseUint256(asset.TokenID)
	itemNumber, _ := domain.ParseUint256(asset.ItemNumber)
	return k.pack(
		[]interface{}{new(big.Int).SetUint64(asset.ChainID), asset.ContractAddress},
		[]interface{}{tokenID, asset.PublisherAddress, itemNumber},
	)
}

func (k *erc1155Kind) Decode(encoded domain.EncodedAssetIdentity) (domain.AssetIdentity, error) {
	collection, item, err := k.unpack(encoded)
	if err != nil {
		return nil, err
	}

	chainID, ok := collection[0].(*big.Int)
	if !ok {
		return nil, k.unexpected(collection[0])
	}
	if !chainID.IsUint64() {
		return nil, k.invalid(errors.New("chain id overflows uint64"))
	}
	contract, ok := collection[1].(common.Address)
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

	asset := domain.ERC1155Asset{
		ChainID:          chainID.Uint64(),
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

// VerifyOwnership requires the record publisher to be the identity's publisher
// and to hold at least itemNumber units of the token.
func (k *erc1155Kind) VerifyOwnership(ctx context.Context, record *domain.PlacementRecord) (bool, error) {
	asset, ok := record.Asset.(domain.ERC1155Asset)
	if !ok {
		return false, k.mismatch(record.Asset)
	}

	if asset.PublisherAddress != record.Publisher {
		return false, nil
	}

	tokenID, err := domain.ParseUint256(asset.TokenID)
	if err != nil {
		return false, err
	}
	itemNumber, err := domain.ParseUint256(asset.ItemNumber)
	if err != nil {
		return false, err
	}

	balance, err := k.ledger.BalanceOf(ctx, domain.EVMChain(asset.ChainID), asset.ContractAddress, record.Publisher, tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrContractReverted) {
			logger.DebugCtx(ctx, "balanceOf reverted, treating token as not owned",
				zap.String("assetID", record.AssetID.Hex()),
				zap.String("contract", asset.ContractAddress.Hex()),
				zap.String("tokenID", asset.TokenID),
			)
			return false, nil
		}
		if unanswerable(ctx, record, k.kind, err) {
			return false, nil
		}
		return false, domain.NewOwnershipCheckError(record.AssetID, k.kind, err)
	}

	return balance.Cmp(itemNumber) >= 0, nil
}
