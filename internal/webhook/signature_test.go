package webhook_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-placement-indexer/internal/webhook"
)

const testSigningKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func TestSigner_SignAndVerify(t *testing.T) {
	signer, err := webhook.NewSignerFromHex(testSigningKey)
	require.NoError(t, err)

	key, err := crypto.HexToECDSA(testSigningKey[2:])
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), signer.Address())

	payload := []byte(`[{"asset_id":"0x01"}]`)
	sig, err := signer.Sign(payload)
	require.NoError(t, err)
	require.Len(t, sig, crypto.SignatureLength)
	assert.Contains(t, []byte{27, 28}, sig[crypto.RecoveryIDOffset])

	ok, err := webhook.VerifySignature(payload, hexutil.Encode(sig), signer.Address())
	require.NoError(t, err)
	assert.True(t, ok)

	recovered, err := webhook.RecoverSigner(payload, hexutil.Encode(sig))
	require.NoError(t, err)
	assert.Equal(t, signer.Address(), recovered)
}

func TestVerifySignature_Mismatch(t *testing.T) {
	signer, err := webhook.NewSignerFromHex(testSigningKey)
	require.NoError(t, err)

	payload := []byte(`[]`)
	sig, err := signer.Sign(payload)
	require.NoError(t, err)

	t.Run("tampered payload", func(t *testing.T) {
		ok, err := webhook.VerifySignature([]byte(`[{}]`), hexutil.Encode(sig), signer.Address())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("other signer", func(t *testing.T) {
		ok, err := webhook.VerifySignature(payload, hexutil.Encode(sig), common.HexToAddress("0x1111111111111111111111111111111111111111"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("raw recovery id", func(t *testing.T) {
		raw := make([]byte, len(sig))
		copy(raw, sig)
		raw[crypto.RecoveryIDOffset] -= 27

		ok, err := webhook.VerifySignature(payload, hexutil.Encode(raw), signer.Address())
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestVerifySignature_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		signature string
	}{
		{name: "not hex", signature: "signature"},
		{name: "missing prefix", signature: "abcd"},
		{name: "too short", signature: "0xabcd"},
		{name: "zero signature", signature: hexutil.Encode(make([]byte, 65))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := webhook.VerifySignature([]byte(`[]`), tt.signature, common.Address{})
			assert.ErrorIs(t, err, webhook.ErrInvalidSignature)
			assert.False(t, ok)
		})
	}
}

func TestNewSignerFromHex_Invalid(t *testing.T) {
	_, err := webhook.NewSignerFromHex("0xnothex")
	assert.Error(t, err)
}
