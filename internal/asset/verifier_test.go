package asset_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-placement-indexer/internal/asset"
	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/mocks"
)

type bigIntMatcher struct {
	want *big.Int
}

func (m bigIntMatcher) Matches(x interface{}) bool {
	v, ok := x.(*big.Int)
	return ok && v != nil && v.Cmp(m.want) == 0
}

func (m bigIntMatcher) String() string {
	return fmt.Sprintf("is big.Int %s", m.want)
}

func bigEq(v int64) gomock.Matcher {
	return bigIntMatcher{want: big.NewInt(v)}
}

type verifierTestSetup struct {
	ctx      context.Context
	evm      *mocks.MockEVMLedger
	tezos    *mocks.MockTezosLedger
	registry asset.Registry
}

func setupVerifierTest(t *testing.T) *verifierTestSetup {
	ctrl := gomock.NewController(t)
	evm := mocks.NewMockEVMLedger(ctrl)
	tezos := mocks.NewMockTezosLedger(ctrl)

	r, err := asset.NewDefaultRegistry(evm, tezos)
	require.NoError(t, err)

	return &verifierTestSetup{
		ctx:      context.Background(),
		evm:      evm,
		tezos:    tezos,
		registry: r,
	}
}

func recordFor(t *testing.T, r asset.Registry, identity domain.AssetIdentity, publisher common.Address) *domain.PlacementRecord {
	assetID, err := r.AssetID(identity)
	require.NoError(t, err)
	return &domain.PlacementRecord{AssetID: assetID, Asset: identity, Publisher: publisher}
}

func TestERC721_VerifyOwnership(t *testing.T) {
	identity := domain.ERC721Asset{ChainID: 1, ContractAddress: testContract, TokenID: "1"}
	other := common.HexToAddress("0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB")

	tests := []struct {
		name      string
		owner     common.Address
		ledgerErr error
		want      bool
		wantCheck bool
	}{
		{name: "owner is publisher", owner: testPublisher, want: true},
		{name: "owner is someone else", owner: other, want: false},
		{name: "token never minted reverts", ledgerErr: fmt.Errorf("failed to call ownerOf: %w", domain.ErrContractReverted), want: false},
		{name: "rpc timeout", ledgerErr: errors.New("context deadline exceeded"), wantCheck: true},
		{name: "chain without client", ledgerErr: fmt.Errorf("%w: eip155:1", domain.ErrUnsupportedChain), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupVerifierTest(t)
			record := recordFor(t, s.registry, identity, testPublisher)

			s.evm.EXPECT().
				OwnerOf(gomock.Any(), domain.ChainEthereumMainnet, testContract, bigEq(1)).
				Return(tt.owner, tt.ledgerErr)

			owned, err := s.registry.VerifyOwnership(s.ctx, record)
			if tt.wantCheck {
				var checkErr *domain.OwnershipCheckError
				require.ErrorAs(t, err, &checkErr)
				assert.Equal(t, record.AssetID, checkErr.AssetID)
				assert.False(t, owned)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, owned)
		})
	}
}

func TestERC721_VerifyOwnership_CaseInsensitive(t *testing.T) {
	s := setupVerifierTest(t)
	identity := domain.ERC721Asset{ChainID: 137, ContractAddress: testContract, TokenID: "9"}
	record := recordFor(t, s.registry, identity, common.HexToAddress(strings.ToLower(testPublisher.Hex())))

	s.evm.EXPECT().
		OwnerOf(gomock.Any(), domain.ChainPolygonMainnet, testContract, bigEq(9)).
		Return(common.HexToAddress(strings.ToUpper("0x"+testPublisher.Hex()[2:])), nil)

	owned, err := s.registry.VerifyOwnership(s.ctx, record)
	require.NoError(t, err)
	assert.True(t, owned)
}

func TestERC1155_VerifyOwnership(t *testing.T) {
	tests := []struct {
		name       string
		itemNumber string
		balance    int64
		want       bool
	}{
		{name: "item number below balance", itemNumber: "2", balance: 3, want: true},
		{name: "item number equal to balance", itemNumber: "3", balance: 3, want: true},
		{name: "item number above balance", itemNumber: "4", balance: 3, want: false},
		{name: "no balance", itemNumber: "1", balance: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupVerifierTest(t)
			identity := domain.ERC1155Asset{ChainID: 1, ContractAddress: testContract, TokenID: "7", PublisherAddress: testPublisher, ItemNumber: tt.itemNumber}
			record := recordFor(t, s.registry, identity, testPublisher)

			s.evm.EXPECT().
				BalanceOf(gomock.Any(), domain.ChainEthereumMainnet, testContract, testPublisher, bigEq(7)).
				Return(big.NewInt(tt.balance), nil)

			owned, err := s.registry.VerifyOwnership(s.ctx, record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, owned)
		})
	}
}

func TestERC1155_VerifyOwnership_PublisherMismatch(t *testing.T) {
	s := setupVerifierTest(t)
	identity := domain.ERC1155Asset{ChainID: 1, ContractAddress: testContract, TokenID: "7", PublisherAddress: testPublisher, ItemNumber: "1"}
	record := recordFor(t, s.registry, identity, testContract)

	// no ledger call is expected
	owned, err := s.registry.VerifyOwnership(s.ctx, record)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestERC1155_VerifyOwnership_Errors(t *testing.T) {
	s := setupVerifierTest(t)
	identity := domain.ERC1155Asset{ChainID: 1, ContractAddress: testContract, TokenID: "7", PublisherAddress: testPublisher, ItemNumber: "1"}
	record := recordFor(t, s.registry, identity, testPublisher)

	s.evm.EXPECT().
		BalanceOf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrContractReverted)
	owned, err := s.registry.VerifyOwnership(s.ctx, record)
	require.NoError(t, err)
	assert.False(t, owned)

	s.evm.EXPECT().
		BalanceOf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("503 service unavailable"))
	_, err = s.registry.VerifyOwnership(s.ctx, record)
	var checkErr *domain.OwnershipCheckError
	assert.ErrorAs(t, err, &checkErr)

	s.evm.EXPECT().
		BalanceOf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: eip155:1", domain.ErrUnsupportedChain))
	owned, err = s.registry.VerifyOwnership(s.ctx, record)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestTezosFA2_VerifyOwnership(t *testing.T) {
	linked := "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"
	identity := domain.TezosFA2Asset{
		ChainID:          domain.ChainTezosMainnet,
		ContractAddress:  "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton",
		TokenID:          "754916",
		PublisherAddress: testPublisher,
		ItemNumber:       "2",
	}

	t.Run("missing linked account", func(t *testing.T) {
		s := setupVerifierTest(t)
		record := recordFor(t, s.registry, identity, testPublisher)

		owned, err := s.registry.VerifyOwnership(s.ctx, record)
		require.NoError(t, err)
		assert.False(t, owned)
	})

	t.Run("linked account holds enough units", func(t *testing.T) {
		s := setupVerifierTest(t)
		record := recordFor(t, s.registry, identity, testPublisher)
		record.LinkedAccount = &linked

		s.tezos.EXPECT().
			FA2BalanceOf(gomock.Any(), domain.ChainTezosMainnet, identity.ContractAddress, linked, identity.TokenID).
			Return(big.NewInt(2), nil)

		owned, err := s.registry.VerifyOwnership(s.ctx, record)
		require.NoError(t, err)
		assert.True(t, owned)
	})

	t.Run("linked account holds fewer units", func(t *testing.T) {
		s := setupVerifierTest(t)
		record := recordFor(t, s.registry, identity, testPublisher)
		record.LinkedAccount = &linked

		s.tezos.EXPECT().
			FA2BalanceOf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(big.NewInt(1), nil)

		owned, err := s.registry.VerifyOwnership(s.ctx, record)
		require.NoError(t, err)
		assert.False(t, owned)
	})

	t.Run("publisher is not the asset publisher", func(t *testing.T) {
		s := setupVerifierTest(t)
		record := recordFor(t, s.registry, identity, testContract)
		record.LinkedAccount = &linked

		owned, err := s.registry.VerifyOwnership(s.ctx, record)
		require.NoError(t, err)
		assert.False(t, owned)
	})

	t.Run("indexer unavailable", func(t *testing.T) {
		s := setupVerifierTest(t)
		record := recordFor(t, s.registry, identity, testPublisher)
		record.LinkedAccount = &linked

		s.tezos.EXPECT().
			FA2BalanceOf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		_, err := s.registry.VerifyOwnership(s.ctx, record)
		var checkErr *domain.OwnershipCheckError
		assert.ErrorAs(t, err, &checkErr)
	})

	for name, ledgerErr := range map[string]error{
		"network without client": fmt.Errorf("%w: tezos:mainnet", domain.ErrUnsupportedChain),
		"malformed linked account": fmt.Errorf("%w: invalid tezos account: tz1", domain.ErrInvalidOwnershipQuery),
	} {
		t.Run(name, func(t *testing.T) {
			s := setupVerifierTest(t)
			record := recordFor(t, s.registry, identity, testPublisher)
			record.LinkedAccount = &linked

			s.tezos.EXPECT().
				FA2BalanceOf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, ledgerErr)

			owned, err := s.registry.VerifyOwnership(s.ctx, record)
			require.NoError(t, err)
			assert.False(t, owned)
		})
	}
}

func TestSelfAttested_VerifyOwnership(t *testing.T) {
	s := setupVerifierTest(t)
	other := common.HexToAddress("0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb")

	assets := []domain.AssetIdentity{
		domain.MessageAsset{PublisherAddress: testPublisher, Message: "hello", PlacementNumber: "1"},
		domain.SelfPublishedAsset{PublisherAddress: testPublisher, AssetHash: common.HexToHash("0x1234")},
	}

	for _, a := range assets {
		t.Run(string(a.Kind()), func(t *testing.T) {
			owned, err := s.registry.VerifyOwnership(s.ctx, recordFor(t, s.registry, a, testPublisher))
			require.NoError(t, err)
			assert.True(t, owned)

			owned, err = s.registry.VerifyOwnership(s.ctx, recordFor(t, s.registry, a, other))
			require.NoError(t, err)
			assert.False(t, owned)
		})
	}
}

func TestRegistry_VerifyOwnership_NilAsset(t *testing.T) {
	s := setupVerifierTest(t)

	_, err := s.registry.VerifyOwnership(s.ctx, &domain.PlacementRecord{Publisher: testPublisher})
	assert.ErrorIs(t, err, domain.ErrUnknownAssetKind)
}
