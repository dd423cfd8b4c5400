package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AssetIdentity is the decoded form of a placed asset.
// The set of implementations is closed to the variants in this file.
type AssetIdentity interface {
	Kind() AssetKind
	Validate() error
	isAssetIdentity()
}

// EncodedAssetIdentity is the binary form exchanged with the registry contract
type EncodedAssetIdentity struct {
	AssetType    common.Hash   `json:"asset_type"`
	CollectionID hexutil.Bytes `json:"collection_id"`
	ItemID       hexutil.Bytes `json:"item_id"`
}

// ERC721Asset is a single-owner EVM token
type ERC721Asset struct {
	ChainID         uint64         `json:"chain_id"`
	ContractAddress common.Address `json:"contract_address"`
	TokenID         string         `json:"token_id"`
}

// ERC1155Asset is one unit of a multi-owner EVM token held by the publisher
type ERC1155Asset struct {
	ChainID          uint64         `json:"chain_id"`
	ContractAddress  common.Address `json:"contract_address"`
	TokenID          string         `json:"token_id"`
	PublisherAddress common.Address `json:"publisher_address"`
	ItemNumber       string         `json:"item_number"`
}

// TezosFA2Asset is one unit of an FA2 token held by the Tezos account linked to the publisher
type TezosFA2Asset struct {
	ChainID          Chain          `json:"chain_id"`
	ContractAddress  string         `json:"contract_address"`
	TokenID          string         `json:"token_id"`
	PublisherAddress common.Address `json:"publisher_address"`
	ItemNumber       string         `json:"item_number"`
}

// MessageAsset is a self-attested text message
type MessageAsset struct {
	PublisherAddress common.Address `json:"publisher_address"`
	Message          string         `json:"message"`
	PlacementNumber  string         `json:"placement_number"`
}

// SelfPublishedAsset is a self-attested asset identified by its content hash
type SelfPublishedAsset struct {
	PublisherAddress common.Address `json:"publisher_address"`
	AssetHash        common.Hash    `json:"asset_hash"`
}

func (ERC721Asset) Kind() AssetKind        { return AssetKindERC721 }
func (ERC1155Asset) Kind() AssetKind       { return AssetKindERC1155 }
func (TezosFA2Asset) Kind() AssetKind      { return AssetKindTezosFA2 }
func (MessageAsset) Kind() AssetKind       { return AssetKindMessage }
func (SelfPublishedAsset) Kind() AssetKind { return AssetKindSelfPublished }

func (ERC721Asset) isAssetIdentity()        {}
func (ERC1155Asset) isAssetIdentity()       {}
func (TezosFA2Asset) isAssetIdentity()      {}
func (MessageAsset) isAssetIdentity()       {}
func (SelfPublishedAsset) isAssetIdentity() {}

var (
	uint256Regex   = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
	tezosKT1Regex  = regexp.MustCompile(`^KT1[1-9A-HJ-NP-Za-km-z]{33}$`)
	maxUint256     = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	zeroAddress    = common.Address{}
	errZeroAddress = fmt.Errorf("%w: publisher address is zero", ErrInvalidAssetIdentity)
)

// ParseUint256 parses a canonical decimal string into a 256-bit unsigned integer
func ParseUint256(s string) (*big.Int, error) {
	if !uint256Regex.MatchString(s) {
		return nil, fmt.Errorf("%w: %q is not a canonical unsigned integer", ErrInvalidAssetIdentity, s)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Cmp(maxUint256) > 0 {
		return nil, fmt.Errorf("%w: %q does not fit in 256 bits", ErrInvalidAssetIdentity, s)
	}
	return n, nil
}

func validatePositive(field, s string) error {
	n, err := ParseUint256(s)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if n.Sign() == 0 {
		return fmt.Errorf("%w: %s must be greater than zero", ErrInvalidAssetIdentity, field)
	}
	return nil
}

func (a ERC721Asset) Validate() error {
	if a.ChainID == 0 {
		return fmt.Errorf("%w: chain id is required", ErrInvalidAssetIdentity)
	}
	if a.ContractAddress == zeroAddress {
		return fmt.Errorf("%w: contract address is zero", ErrInvalidAssetIdentity)
	}
	if _, err := ParseUint256(a.TokenID); err != nil {
		return fmt.Errorf("invalid token id: %w", err)
	}
	return nil
}

func (a ERC1155Asset) Validate() error {
	if err := (ERC721Asset{ChainID: a.ChainID, ContractAddress: a.ContractAddress, TokenID: a.TokenID}).Validate(); err != nil {
		return err
	}
	if a.PublisherAddress == zeroAddress {
		return errZeroAddress
	}
	return validatePositive("item number", a.ItemNumber)
}

func (a TezosFA2Asset) Validate() error {
	if a.ChainID.Blockchain() != BlockchainTezos || !IsValidChain(a.ChainID) {
		return fmt.Errorf("%w: unsupported tezos chain %q", ErrInvalidAssetIdentity, a.ChainID)
	}
	if !tezosKT1Regex.MatchString(a.ContractAddress) {
		return fmt.Errorf("%w: invalid FA2 contract address %q", ErrInvalidAssetIdentity, a.ContractAddress)
	}
	if _, err := ParseUint256(a.TokenID); err != nil {
		return fmt.Errorf("invalid token id: %w", err)
	}
	if a.PublisherAddress == zeroAddress {
		return errZeroAddress
	}
	return validatePositive("item number", a.ItemNumber)
}

func (a MessageAsset) Validate() error {
	if a.PublisherAddress == zeroAddress {
		return errZeroAddress
	}
	if strings.TrimSpace(a.Message) == "" {
		return fmt.Errorf("%w: message is empty", ErrInvalidAssetIdentity)
	}
	if _, err := ParseUint256(a.PlacementNumber); err != nil {
		return fmt.Errorf("invalid placement number: %w", err)
	}
	return nil
}

func (a SelfPublishedAsset) Validate() error {
	if a.PublisherAddress == zeroAddress {
		return errZeroAddress
	}
	if a.AssetHash == (common.Hash{}) {
		return fmt.Errorf("%w: asset hash is zero", ErrInvalidAssetIdentity)
	}
	return nil
}

// JSON form of an asset identity is the variant's fields plus a "kind" discriminant

func (a ERC721Asset) MarshalJSON() ([]byte, error) {
	type alias ERC721Asset
	return json.Marshal(struct {
		Kind AssetKind `json:"kind"`
		alias
	}{a.Kind(), alias(a)})
}

func (a ERC1155Asset) MarshalJSON() ([]byte, error) {
	type alias ERC1155Asset
	return json.Marshal(struct {
		Kind AssetKind `json:"kind"`
		alias
	}{a.Kind(), alias(a)})
}

func (a TezosFA2Asset) MarshalJSON() ([]byte, error) {
	type alias TezosFA2Asset
	return json.Marshal(struct {
		Kind AssetKind `json:"kind"`
		alias
	}{a.Kind(), alias(a)})
}

func (a MessageAsset) MarshalJSON() ([]byte, error) {
	type alias MessageAsset
	return json.Marshal(struct {
		Kind AssetKind `json:"kind"`
		alias
	}{a.Kind(), alias(a)})
}

func (a SelfPublishedAsset) MarshalJSON() ([]byte, error) {
	type alias SelfPublishedAsset
	return json.Marshal(struct {
		Kind AssetKind `json:"kind"`
		alias
	}{a.Kind(), alias(a)})
}

// UnmarshalAssetIdentity decodes the tagged JSON form of an asset identity
func UnmarshalAssetIdentity(data []byte) (AssetIdentity, error) {
	var head struct {
		Kind AssetKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to read asset kind: %w", err)
	}

	var (
		identity AssetIdentity
		err      error
	)
	switch head.Kind {
	case AssetKindERC721:
		var a ERC721Asset
		err = json.Unmarshal(data, &a)
		identity = a
	case AssetKindERC1155:
		var a ERC1155Asset
		err = json.Unmarshal(data, &a)
		identity = a
	case AssetKindTezosFA2:
		var a TezosFA2Asset
		err = json.Unmarshal(data, &a)
		identity = a
	case AssetKindMessage:
		var a MessageAsset
		err = json.Unmarshal(data, &a)
		identity = a
	case AssetKindSelfPublished:
		var a SelfPublishedAsset
		err = json.Unmarshal(data, &a)
		identity = a
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAssetKind, head.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s asset identity: %w", head.Kind, err)
	}

	return identity, nil
}

// UnmarshalJSON restores the decoded asset identity from its tagged form
func (r *ValidatedPlacementRecord) UnmarshalJSON(data []byte) error {
	type alias ValidatedPlacementRecord
	aux := struct {
		*alias
		Asset json.RawMessage `json:"decoded_asset_id"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.Asset) > 0 && string(aux.Asset) != "null" {
		identity, err := UnmarshalAssetIdentity(aux.Asset)
		if err != nil {
			return err
		}
		r.Asset = identity
	}
	return nil
}
