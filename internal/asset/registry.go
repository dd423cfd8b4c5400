package asset

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
)

// Kind is the codec and ownership verifier of one asset kind
type Kind interface {
	// Name returns the kind name, its keccak256 hash is the type tag
	Name() domain.AssetKind

	// Tag returns the on-chain type tag
	Tag() common.Hash

	// Encode converts a decoded identity into its wire form
	Encode(a domain.AssetIdentity) (domain.EncodedAssetIdentity, error)

	// Decode converts a wire form back into the decoded identity
	Decode(encoded domain.EncodedAssetIdentity) (domain.AssetIdentity, error)

	// VerifyOwnership reports whether the record publisher controls the asset
	VerifyOwnership(ctx context.Context, record *domain.PlacementRecord) (bool, error)
}

// Registry dispatches codec and ownership operations to the registered asset kinds
//
//go:generate mockgen -source=registry.go -destination=../mocks/asset_registry.go -package=mocks -mock_names=Registry=MockAssetRegistry
type Registry interface {
	// Kinds returns the registered kind names in registration order
	Kinds() []domain.AssetKind

	// Encode encodes a decoded identity with the kind of its variant
	Encode(a domain.AssetIdentity) (domain.EncodedAssetIdentity, error)

	// Decode decodes a wire form with the kind named by its type tag
	Decode(encoded domain.EncodedAssetIdentity) (domain.AssetIdentity, error)

	// AssetID returns the asset id of a decoded identity
	AssetID(a domain.AssetIdentity) (common.Hash, error)

	// VerifyOwnership runs the ownership check of the record's asset kind
	VerifyOwnership(ctx context.Context, record *domain.PlacementRecord) (bool, error)
}

type registry struct {
	byTag  map[common.Hash]Kind
	byName map[domain.AssetKind]Kind
	names  []domain.AssetKind
}

// NewRegistry creates a registry over the given kinds
func NewRegistry(kinds ...Kind) (Registry, error) {
	r := &registry{
		byTag:  make(map[common.Hash]Kind, len(kinds)),
		byName: make(map[domain.AssetKind]Kind, len(kinds)),
	}

	for _, kind := range kinds {
		if kind.Tag() != TypeTag(kind.Name()) {
			return nil, fmt.Errorf("asset kind %s has tag %s, expected %s", kind.Name(), kind.Tag().Hex(), TypeTag(kind.Name()).Hex())
		}
		if _, exists := r.byTag[kind.Tag()]; exists {
			return nil, fmt.Errorf("asset kind %s registered twice", kind.Name())
		}
		r.byTag[kind.Tag()] = kind
		r.byName[kind.Name()] = kind
		r.names = append(r.names, kind.Name())
	}

	return r, nil
}

// NewDefaultRegistry creates a registry with every supported asset kind
func NewDefaultRegistry(evm EVMLedger, tezos TezosLedger) (Registry, error) {
	return NewRegistry(
		NewERC721Kind(evm),
		NewERC1155Kind(evm),
		NewTezosFA2Kind(tezos),
		NewMessageKind(),
		NewSelfPublishedKind(),
	)
}

func (r *registry) Kinds() []domain.AssetKind {
	names := make([]domain.AssetKind, len(r.names))
	copy(names, r.names)
	return names
}

func (r *registry) kindOf(a domain.AssetIdentity) (Kind, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil identity", domain.ErrUnknownAssetKind)
	}
	kind, ok := r.byName[a.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAssetKind, a.Kind())
	}
	return kind, nil
}

func (r *registry) Encode(a domain.AssetIdentity) (domain.EncodedAssetIdentity, error) {
	kind, err := r.kindOf(a)
	if err != nil {
		return domain.EncodedAssetIdentity{}, err
	}
	return kind.Encode(a)
}

func (r *registry) Decode(encoded domain.EncodedAssetIdentity) (domain.AssetIdentity, error) {
	kind, ok := r.byTag[encoded.AssetType]
	if !ok {
		return nil, fmt.Errorf("%w: type tag %s", domain.ErrUnknownAssetKind, encoded.AssetType.Hex())
	}
	return kind.Decode(encoded)
}

func (r *registry) AssetID(a domain.AssetIdentity) (common.Hash, error) {
	encoded, err := r.Encode(a)
	if err != nil {
		return common.Hash{}, err
	}
	return Hash(encoded), nil
}

func (r *registry) VerifyOwnership(ctx context.Context, record *domain.PlacementRecord) (bool, error) {
	kind, err := r.kindOf(record.Asset)
	if err != nil {
		return false, err
	}
	return kind.VerifyOwnership(ctx, record)
}
