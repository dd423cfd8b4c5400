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

type erc721Kind struct {
	codec
	ledger EVMLedger
}

// NewERC721Kind creates the single-owner EVM token kind
func NewERC721Kind(ledger EVMLedger) Kind {
	return &erc721Kind{
		codec:  newCodec(domain.AssetKindERC721, arguments(uint256Type, addressType), arguments(uint256Type)),
		ledger: ledger,
	}
}

func (k *erc721Kind) Encode(a domain.AssetIdentity) (domain.EncodedAssetIdentity, error) {
	asset, ok := a.(domain.ERC721Asset)
	if !ok {
		return domain.EncodedAssetIdentity{}, k.mismatch(a)
	}
	if err := asset.Validate(); err != nil {
		return domain.EncodedAssetIdentity{}, err
	}

	tokenID, _ := domain.ParseUint256(asset.TokenID)
	return k.pack(
		[]interface{}{new(big.Int).SetUint64(asset.ChainID), asset.ContractAddress},
		[]interface{}{tokenID},
	)
}

func (k *erc721Kind) Decode(encoded domain.EncodedAssetIdentity) (domain.AssetIdentity, error) {
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

	asset := domain.ERC721Asset{
		ChainID:         chainID.Uint64(),
		ContractAddress: contract,
		TokenID:         tokenID.String(),
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

// VerifyOwnership checks the token's current owner against the publisher.
// A reverted ownerOf call means the token does not exist and is reported as not owned.
func (k *erc721Kind) VerifyOwnership(ctx context.Context, record *domain.PlacementRecord) (bool, error) {
	asset, ok := record.Asset.(domain.ERC721Asset)
	if !ok {
		return false, k.mismatch(record.Asset)
	}

	tokenID, err := domain.ParseUint256(asset.TokenID)
	if err != nil {
		return false, err
	}

	owner, err := k.ledger.OwnerOf(ctx, domain.EVMChain(asset.ChainID), asset.ContractAddress, tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrContractReverted) {
			logger.DebugCtx(ctx, "ownerOf reverted, treating token as not owned",
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

	// address comparison is on the raw bytes so checksum casing never matters
	return owner == record.Publisher, nil
}
