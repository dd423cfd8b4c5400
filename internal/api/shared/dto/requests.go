package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	apierrors "github.com/feral-file/ff-placement-indexer/internal/api/shared/errors"
	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/types"
)

// PlacementQuery holds the filters of a placement listing.
// Kind, ChainID, Contract and TokenID match fields of the decoded asset identity.
type PlacementQuery struct {
	Kind          string
	ChainID       string
	Contract      string
	TokenID       string
	Publisher     string
	ParentAssetID string
	PlacedByOwner *bool
	Current       bool
	Limit         int
	Offset        uint64
}

// Identity returns the partial decoded asset identity matched by jsonb containment.
// EVM chain ids are numbers in the stored identity, Tezos chain ids are strings.
// EVM addresses are stored in lowercase hex.
func (q *PlacementQuery) Identity() map[string]interface{} {
	identity := map[string]interface{}{}
	if q.Kind != "" {
		identity["kind"] = q.Kind
	}
	if q.ChainID != "" {
		if chainID, err := strconv.ParseUint(q.ChainID, 10, 64); err == nil {
			identity["chain_id"] = chainID
		} else {
			identity["chain_id"] = q.ChainID
		}
	}
	if q.Contract != "" {
		if types.IsEthereumAddress(q.Contract) {
			identity["contract_address"] = strings.ToLower(q.Contract)
		} else {
			identity["contract_address"] = q.Contract
		}
	}
	if q.TokenID != "" {
		identity["token_id"] = q.TokenID
	}
	return identity
}

// Validate validates the query filters
func (q *PlacementQuery) Validate() error {
	if q.Kind != "" {
		switch domain.AssetKind(q.Kind) {
		case domain.AssetKindERC721, domain.AssetKindERC1155, domain.AssetKindTezosFA2,
			domain.AssetKindMessage, domain.AssetKindSelfPublished:
		default:
			return apierrors.NewValidationError(fmt.Sprintf("unknown asset kind: %s", q.Kind))
		}
	}
	if q.Contract != "" && !types.IsEthereumAddress(q.Contract) && !types.IsTezosAddress(q.Contract) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid contract address: %s", q.Contract))
	}
	if q.TokenID != "" {
		if _, err := domain.ParseUint256(q.TokenID); err != nil {
			return apierrors.NewValidationError(fmt.Sprintf("invalid token id: %s", q.TokenID))
		}
	}
	if q.Publisher != "" && !types.IsEthereumAddress(q.Publisher) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid publisher address: %s", q.Publisher))
	}
	if q.ParentAssetID != "" && !types.IsHash(q.ParentAssetID) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid parent asset id: %s", q.ParentAssetID))
	}
	return nil
}

// ExecuteMetaTransactionRequest represents the request body for relaying a meta transaction
type ExecuteMetaTransactionRequest struct {
	UserAddress       string `json:"user_address"`
	FunctionSignature string `json:"function_signature"`
	SigR              string `json:"sig_r"`
	SigS              string `json:"sig_s"`
	SigV              uint8  `json:"sig_v"`
}

// ToMetaTransaction validates the hex fields and converts the request into a meta transaction
func (r *ExecuteMetaTransactionRequest) ToMetaTransaction() (domain.MetaTransaction, error) {
	if !types.IsEthereumAddress(r.UserAddress) {
		return domain.MetaTransaction{}, apierrors.NewValidationError(fmt.Sprintf("invalid user_address: %s", r.UserAddress))
	}

	functionSignature, err := hexutil.Decode(r.FunctionSignature)
	if err != nil || len(functionSignature) == 0 {
		return domain.MetaTransaction{}, apierrors.NewValidationError("function_signature must be non-empty 0x-prefixed hex")
	}

	sigR, err := decodeBytes32("sig_r", r.SigR)
	if err != nil {
		return domain.MetaTransaction{}, err
	}
	sigS, err := decodeBytes32("sig_s", r.SigS)
	if err != nil {
		return domain.MetaTransaction{}, err
	}

	mtx := domain.MetaTransaction{
		UserAddress:       common.HexToAddress(r.UserAddress),
		FunctionSignature: functionSignature,
		SigR:              sigR,
		SigS:              sigS,
		SigV:              r.SigV,
	}
	if err := mtx.Validate(); err != nil {
		return domain.MetaTransaction{}, apierrors.NewValidationError(err.Error())
	}

	return mtx, nil
}

func decodeBytes32(field, value string) ([32]byte, error) {
	var out [32]byte
	decoded, err := hexutil.Decode(value)
	if err != nil || len(decoded) != 32 {
		return out, apierrors.NewValidationError(fmt.Sprintf("%s must be 32 bytes of 0x-prefixed hex", field))
	}
	copy(out[:], decoded)
	return out, nil
}
