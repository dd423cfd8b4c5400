package webhook

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrInvalidSignature is returned when a signature cannot be decoded or recovered
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Signer signs webhook payloads with the service key
type Signer interface {
	// Address returns the address receivers use to authenticate payloads
	Address() common.Address

	// Sign returns the 65-byte [R || S || V] signature of the EIP-191 hash of payload, V in {27, 28}
	Sign(payload []byte) ([]byte, error)
}

type ecdsaSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner creates a signer from a secp256k1 private key
func NewSigner(key *ecdsa.PrivateKey) Signer {
	return &ecdsaSigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// NewSignerFromHex creates a signer from a hex encoded private key, with or without 0x prefix
func NewSignerFromHex(hexKey string) (Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse webhook signing key: %w", err)
	}
	return NewSigner(key), nil
}

func (s *ecdsaSigner) Address() common.Address {
	return s.address
}

func (s *ecdsaSigner) Sign(payload []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(payload), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign payload: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// RecoverSigner returns the address that produced the hex signature over payload
func RecoverSigner(payload []byte, signatureHex string) (common.Address, error) {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignature, crypto.SignatureLength, len(sig))
	}

	// Accept both the 27/28 and the raw 0/1 recovery id
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(payload), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// VerifySignature reports whether signatureHex is a signature of payload by the expected signer
func VerifySignature(payload []byte, signatureHex string, expected common.Address) (bool, error) {
	signer, err := RecoverSigner(payload, signatureHex)
	if err != nil {
		return false, err
	}
	return signer == expected, nil
}
