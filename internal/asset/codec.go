package asset

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
)

var (
	uint256Type = mustNewType("uint256")
	addressType = mustNewType("address")
	stringType  = mustNewType("string")
	bytesType   = mustNewType("bytes")
	bytes32Type = mustNewType("bytes32")

	assetIDArguments = arguments(bytes32Type, bytesType, bytesType)
)

var (
	errUnexpectedTag    = errors.New("unexpected asset type tag")
	errNonCanonical     = errors.New("payload is not canonically encoded")
	errUnexpectedValues = errors.New("unexpected decoded values")
)

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Sprintf("invalid abi type %s: %v", t, err))
	}
	return typ
}

func arguments(types ...abi.Type) abi.Arguments {
	args := make(abi.Arguments, len(types))
	for i, t := range types {
		args[i] = abi.Argument{Type: t}
	}
	return args
}

// TypeTag returns the on-chain type tag of an asset kind
func TypeTag(kind domain.AssetKind) common.Hash {
	return crypto.Keccak256Hash([]byte(kind))
}

// Hash returns the asset id of an encoded asset identity:
// keccak256(abi.encode(bytes32 assetType, bytes collectionId, bytes itemId))
func Hash(encoded domain.EncodedAssetIdentity) common.Hash {
	packed, err := assetIDArguments.Pack([32]byte(encoded.AssetType), []byte(encoded.CollectionID), []byte(encoded.ItemID))
	if err != nil {
		// argument types are static, packing only fails on a programming error
		panic(fmt.Sprintf("failed to pack asset id: %v", err))
	}
	return crypto.Keccak256Hash(packed)
}

// codec packs and unpacks the two wire fields of one asset kind
type codec struct {
	kind       domain.AssetKind
	tag        common.Hash
	collection abi.Arguments
	item       abi.Arguments
}

func newCodec(kind domain.AssetKind, collection abi.Arguments, item abi.Arguments) codec {
	return codec{
		kind:       kind,
		tag:        TypeTag(kind),
		collection: collection,
		item:       item,
	}
}

func (c codec) Name() domain.AssetKind {
	return c.kind
}

func (c codec) Tag() common.Hash {
	return c.tag
}

// pack builds the encoded identity from the collection and item values
func (c codec) pack(collection []interface{}, item []interface{}) (domain.EncodedAssetIdentity, error) {
	collectionID, err := c.collection.Pack(collection...)
	if err != nil {
		return domain.EncodedAssetIdentity{}, fmt.Errorf("failed to pack %s collection id: %w", c.kind, err)
	}

	itemID, err := c.item.Pack(item...)
	if err != nil {
		return domain.EncodedAssetIdentity{}, fmt.Errorf("failed to pack %s item id: %w", c.kind, err)
	}

	return domain.EncodedAssetIdentity{
		AssetType:    c.tag,
		CollectionID: collectionID,
		ItemID:       itemID,
	}, nil
}

// unpack reads the collection and item values of an encoded identity
func (c codec) unpack(encoded domain.EncodedAssetIdentity) ([]interface{}, []interface{}, error) {
	if encoded.AssetType != c.tag {
		return nil, nil, domain.NewDecodeError(c.kind, fmt.Errorf("%w: %s", errUnexpectedTag, encoded.AssetType.Hex()))
	}

	collection, err := c.collection.Unpack(encoded.CollectionID)
	if err != nil {
		return nil, nil, domain.NewDecodeError(c.kind, fmt.Errorf("failed to unpack collection id: %w", err))
	}

	item, err := c.item.Unpack(encoded.ItemID)
	if err != nil {
		return nil, nil, domain.NewDecodeError(c.kind, fmt.Errorf("failed to unpack item id: %w", err))
	}

	return collection, item, nil
}

// ensureCanonical re-encodes a decoded identity and requires the exact input bytes
func (c codec) ensureCanonical(encoded domain.EncodedAssetIdentity, reencoded domain.EncodedAssetIdentity) error {
	if !bytes.Equal(encoded.CollectionID, reencoded.CollectionID) || !bytes.Equal(encoded.ItemID, reencoded.ItemID) {
		return domain.NewDecodeError(c.kind, errNonCanonical)
	}
	return nil
}

// invalid wraps a validation failure of a freshly decoded identity
func (c codec) invalid(err error) error {
	return domain.NewDecodeError(c.kind, err)
}

func (c codec) unexpected(v interface{}) error {
	return domain.NewDecodeError(c.kind, fmt.Errorf("%w: %T", errUnexpectedValues, v))
}

func (c codec) mismatch(a domain.AssetIdentity) error {
	if a == nil {
		return fmt.Errorf("%w: nil identity for %s", domain.ErrInvalidAssetIdentity, c.kind)
	}
	return fmt.Errorf("%w: %s codec cannot handle %s identity", domain.ErrInvalidAssetIdentity, c.kind, a.Kind())
}
