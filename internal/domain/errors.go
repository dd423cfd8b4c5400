package domain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrUnknownAssetKind is returned when an asset type tag or variant has no registered kind
	ErrUnknownAssetKind = errors.New("unknown asset kind")

	// ErrInvalidAssetIdentity is returned when a decoded asset identity fails validation
	ErrInvalidAssetIdentity = errors.New("invalid asset identity")

	// ErrContractReverted is returned when a contract call reverts or returns no data
	ErrContractReverted = errors.New("contract call reverted")

	// ErrInvalidMetaTransaction is returned when a relayed payload is malformed
	ErrInvalidMetaTransaction = errors.New("invalid meta transaction")

	// ErrUnsupportedChain is returned when no client is configured for a chain
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrInvalidOwnershipQuery is returned when an ownership query is rejected before reaching the network
	ErrInvalidOwnershipQuery = errors.New("invalid ownership query")
)

// DecodeError is returned when a wire payload does not match the expected layout
type DecodeError struct {
	Kind AssetKind
	Err  error
}

// NewDecodeError creates a new DecodeError
func NewDecodeError(kind AssetKind, err error) *DecodeError {
	return &DecodeError{Kind: kind, Err: err}
}

func (e *DecodeError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("failed to decode placement: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode %s asset identity: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// OwnershipCheckError is returned when an ownership check could not complete
// because of a transport or RPC failure. It never means "not owned", the check
// should be retried later.
type OwnershipCheckError struct {
	AssetID common.Hash
	Kind    AssetKind
	Err     error
}

// NewOwnershipCheckError creates a new OwnershipCheckError
func NewOwnershipCheckError(assetID common.Hash, kind AssetKind, err error) *OwnershipCheckError {
	return &OwnershipCheckError{AssetID: assetID, Kind: kind, Err: err}
}

func (e *OwnershipCheckError) Error() string {
	return fmt.Sprintf("failed to check ownership of %s asset %s: %v", e.Kind, e.AssetID.Hex(), e.Err)
}

func (e *OwnershipCheckError) Unwrap() error {
	return e.Err
}
