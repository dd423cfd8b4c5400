package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// MetaTransaction is a user-signed call relayed to the registry contract
// through executeMetaTransaction(address,bytes,bytes32,bytes32,uint8).
type MetaTransaction struct {
	UserAddress       common.Address
	FunctionSignature []byte
	SigR              [32]byte
	SigS              [32]byte
	SigV              uint8
}

// Validate checks the structural schema of the payload.
// The signature itself is verified by the contract.
func (m MetaTransaction) Validate() error {
	if m.UserAddress == (common.Address{}) {
		return fmt.Errorf("%w: user address is zero", ErrInvalidMetaTransaction)
	}
	if len(m.FunctionSignature) < 4 {
		return fmt.Errorf("%w: function signature must contain at least a 4-byte selector", ErrInvalidMetaTransaction)
	}
	if m.SigV != 27 && m.SigV != 28 {
		return fmt.Errorf("%w: sigV must be 27 or 28, got %d", ErrInvalidMetaTransaction, m.SigV)
	}
	if m.SigR == ([32]byte{}) || m.SigS == ([32]byte{}) {
		return fmt.Errorf("%w: signature components must be non-zero", ErrInvalidMetaTransaction)
	}
	return nil
}
