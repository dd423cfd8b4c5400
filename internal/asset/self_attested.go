package asset

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
)

type messageKind struct {
	codec
}

// NewMessageKind creates the self-attested message kind
func NewMessageKind() Kind {
	return &messageKind{
		codec: newCodec(domain.AssetKindMessage, arguments(stringType), arguments(addressType, uint256Type)),
	}
}

func (k *messageKind) Encode(a domain.AssetIdentity) (domain.EncodedAssetIdentity, error) {
	asset, ok := a.(domain.MessageAsset)
	if !ok {
		return domain.EncodedAssetIdentity{}, k.mismatch(a)
	}
	if err := asset.Validate(); err != nil {
		return domain.EncodedAssetIdentity{}, err
	}

	placementNumber, _ := domain.ParseUint256(asset.PlacementNumber)
	return k.pack(
		[]interface{}{asset.Message},
		[]interface{}{asset.PublisherAddress, placementNumber},
	)
}

func (k *messageKind) Decode(encoded domain.EncodedAssetIdentity) (domain.AssetIdentity, error) {
	collection, item, err := k.unpack(encoded)
	if err != nil {
		return nil, err
	}

	message, ok := collection[0].(string)
	if !ok {
		return nil, k.unexpected(collection[0])
	}
	publisher, ok := item[0].(common.Address)
	if !ok {
		return nil, k.unexpected(item[0])
	}
	placementNumber, ok := item[1].(*big.Int)
	if !ok {
		return nil, k.unexpected(item[1])
	}

	asset := domain.MessageAsset{
		PublisherAddress: publisher,
		Message:          message,
		PlacementNumber:  placementNumber.String(),
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

func (k *messageKind) VerifyOwnership(_ context.Context, record *domain.PlacementRecord) (bool, error) {
	asset, ok := record.Asset.(domain.MessageAsset)
	if !ok {
		return false, k.mismatch(record.Asset)
	}
	return asset.PublisherAddress == record.Publisher, nil
}

type selfPublishedKind struct {
	codec
}

// NewSelfPublishedKind creates the self-attested content hash kind
func NewSelfPublishedKind() Kind {
	return &selfPublishedKind{
		codec: newCodec(domain.AssetKindSelfPublished, arguments(addressType), arguments(bytes32Type)),
	}
}

func (k *selfPublishedKind) Encode(a domain.AssetIdentity) (domain.EncodedAssetIdentity, error) {
	asset, ok := a.(domain.SelfPublishedAsset)
	if !ok {
		return domain.EncodedAssetIdentity{}, k.mismatch(a)
	}
	if err := asset.Validate(); err != nil {
		return domain.EncodedAssetIdentity{}, err
	}

	return k.pack(
		[]interface{}{asset.PublisherAddress},
		[]interface{}{[32]byte(asset.AssetHash)},
	)
}

func (k *selfPublishedKind) Decode(encoded domain.EncodedAssetIdentity) (domain.AssetIdentity, error) {
	collection, item, err := k.unpack(encoded)
	if err != nil {
		return nil, err
	}

	publisher, ok := collection[0].(common.Address)
	if !ok {
		return nil, k.unexpected(collection[0])
	}
	assetHash, ok := item[0].([32]byte)
	if !ok {
		return nil, k.unexpected(item[0])
	}

	asset := domain.SelfPublishedAsset{
		PublisherAddress: publisher,
		AssetHash:        common.Hash(assetHash),
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

func (k *selfPublishedKind) VerifyOwnership(_ context.Context, record *domain.PlacementRecord) (bool, error) {
	asset, ok := record.Asset.(domain.SelfPublishedAsset)
	if !ok {
		return false, k.mismatch(record.Asset)
	}
	return asset.PublisherAddress == record.Publisher, nil
}
