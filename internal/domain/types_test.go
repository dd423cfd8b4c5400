package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidChain(t *testing.T) {
	tests := []struct {
		name     string
		chain    Chain
		expected bool
	}{
		{name: "ethereum mainnet", chain: ChainEthereumMainnet, expected: true},
		{name: "polygon amoy", chain: ChainPolygonAmoy, expected: true},
		{name: "arbitrary eip155 chain", chain: Chain("eip155:8453"), expected: true},
		{name: "tezos mainnet", chain: ChainTezosMainnet, expected: true},
		{name: "tezos ghostnet", chain: ChainTezosGhostnet, expected: true},
		{name: "empty chain", chain: Chain(""), expected: false},
		{name: "eip155 with zero id", chain: Chain("eip155:0"), expected: false},
		{name: "eip155 without id", chain: Chain("eip155:"), expected: false},
		{name: "unknown tezos network", chain: Chain("tezos:oxfordnet"), expected: false},
		{name: "unknown namespace", chain: Chain("solana:mainnet"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidChain(tt.chain))
		})
	}
}

func TestChain_EVMChainID(t *testing.T) {
	id, err := ChainPolygonMainnet.EVMChainID()
	require.NoError(t, err)
	assert.Equal(t, uint64(137), id)

	assert.Equal(t, ChainEthereumSepolia, EVMChain(11155111))

	_, err = ChainTezosMainnet.EVMChainID()
	assert.Error(t, err)
}

func TestChain_Blockchain(t *testing.T) {
	assert.Equal(t, BlockchainEthereum, ChainEthereumMainnet.Blockchain())
	assert.Equal(t, BlockchainTezos, ChainTezosGhostnet.Blockchain())
}

func TestLocation_Geohash(t *testing.T) {
	tests := []struct {
		name     string
		location Location
		expected string
	}{
		{name: "single character", location: Location{GeohashBits: 0b11111, BitPrecision: 5}, expected: "z"},
		{name: "zero bits", location: Location{GeohashBits: 0, BitPrecision: 10}, expected: "00"},
		{
			name: "seven characters",
			location: Location{
				GeohashBits:  26<<30 | 4<<25 | 21<<20 | 23<<15 | 26<<10 | 30<<5 | 12,
				BitPrecision: 35,
			},
			expected: "u4pruyd",
		},
		{name: "precision not a multiple of five", location: Location{GeohashBits: 0b1111, BitPrecision: 4}, expected: ""},
		{name: "zero precision", location: Location{}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.location.Geohash())
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", NormalizeAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.Equal(t, "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb", NormalizeAddress("tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"))
	assert.Equal(t, []string{"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"}, NormalizeAddresses([]string{"0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"}))
}

func TestAssetIdentity_Validate(t *testing.T) {
	publisher := common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0")
	contract := common.HexToAddress("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B")

	tests := []struct {
		name    string
		asset   AssetIdentity
		wantErr bool
	}{
		{name: "valid erc721", asset: ERC721Asset{ChainID: 1, ContractAddress: contract, TokenID: "1"}},
		{name: "erc721 without chain", asset: ERC721Asset{ContractAddress: contract, TokenID: "1"}, wantErr: true},
		{name: "erc721 with leading zero token", asset: ERC721Asset{ChainID: 1, ContractAddress: contract, TokenID: "01"}, wantErr: true},
		{name: "erc721 with token over 256 bits", asset: ERC721Asset{ChainID: 1, ContractAddress: contract, TokenID: "115792089237316195423570985008687907853269984665640564039457584007913129639936"}, wantErr: true},
		{name: "valid erc1155", asset: ERC1155Asset{ChainID: 137, ContractAddress: contract, TokenID: "7", PublisherAddress: publisher, ItemNumber: "2"}},
		{name: "erc1155 with zero item number", asset: ERC1155Asset{ChainID: 137, ContractAddress: contract, TokenID: "7", PublisherAddress: publisher, ItemNumber: "0"}, wantErr: true},
		{name: "valid tezos fa2", asset: TezosFA2Asset{ChainID: ChainTezosMainnet, ContractAddress: "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton", TokenID: "0", PublisherAddress: publisher, ItemNumber: "1"}},
		{name: "tezos fa2 on evm chain", asset: TezosFA2Asset{ChainID: ChainEthereumMainnet, ContractAddress: "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton", TokenID: "0", PublisherAddress: publisher, ItemNumber: "1"}, wantErr: true},
		{name: "tezos fa2 with implicit account contract", asset: TezosFA2Asset{ChainID: ChainTezosMainnet, ContractAddress: "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb", TokenID: "0", PublisherAddress: publisher, ItemNumber: "1"}, wantErr: true},
		{name: "valid message", asset: MessageAsset{PublisherAddress: publisher, Message: "hello", PlacementNumber: "0"}},
		{name: "blank message", asset: MessageAsset{PublisherAddress: publisher, Message: "  ", PlacementNumber: "0"}, wantErr: true},
		{name: "valid self published", asset: SelfPublishedAsset{PublisherAddress: publisher, AssetHash: common.HexToHash("0x01")}},
		{name: "self published without publisher", asset: SelfPublishedAsset{AssetHash: common.HexToHash("0x01")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.asset.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAssetIdentity)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUnmarshalAssetIdentity(t *testing.T) {
	publisher := common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0")
	assets := []AssetIdentity{
		ERC721Asset{ChainID: 1, ContractAddress: common.HexToAddress("0x01"), TokenID: "42"},
		ERC1155Asset{ChainID: 137, ContractAddress: common.HexToAddress("0x02"), TokenID: "7", PublisherAddress: publisher, ItemNumber: "3"},
		TezosFA2Asset{ChainID: ChainTezosMainnet, ContractAddress: "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton", TokenID: "9", PublisherAddress: publisher, ItemNumber: "1"},
		MessageAsset{PublisherAddress: publisher, Message: "gm", PlacementNumber: "4"},
		SelfPublishedAsset{PublisherAddress: publisher, AssetHash: common.HexToHash("0xbeef")},
	}

	for _, asset := range assets {
		t.Run(string(asset.Kind()), func(t *testing.T) {
			data, err := json.Marshal(asset)
			require.NoError(t, err)

			var head map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &head))
			assert.Equal(t, string(asset.Kind()), head["kind"])

			decoded, err := UnmarshalAssetIdentity(data)
			require.NoError(t, err)
			assert.Equal(t, asset, decoded)
		})
	}

	_, err := UnmarshalAssetIdentity([]byte(`{"kind":"ERC20"}`))
	assert.ErrorIs(t, err, ErrUnknownAssetKind)
}

func TestValidatedPlacementRecord_JSON(t *testing.T) {
	parent := common.HexToHash("0xaa")
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	record := ValidatedPlacementRecord{
		PlacementRecord: PlacementRecord{
			AssetID:       common.HexToHash("0x01"),
			ParentAssetID: &parent,
			Asset:         ERC721Asset{ChainID: 1, ContractAddress: common.HexToAddress("0x01"), TokenID: "1"},
			Publisher:     common.HexToAddress("0x02"),
			Published:     true,
			Location:      Location{GeohashBits: 0b11111, BitPrecision: 5},
			PlacedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			TimeRange:     TimeRange{Start: &start},
			BlockNumber:   100,
			BlockHash:     common.HexToHash("0xbb"),
			BlockLogIndex: 3,
			TxHash:        common.HexToHash("0xcc"),
		},
		PlacedByOwner: true,
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"placed_at":"2025-01-01T00:00:00Z"`)
	assert.Contains(t, string(data), `"geohash_bits":"31"`)
	assert.Contains(t, string(data), `"placed_by_owner":true`)

	var decoded ValidatedPlacementRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, record.Asset, decoded.Asset)
	assert.Equal(t, record.AssetID, decoded.AssetID)
	assert.Equal(t, *record.ParentAssetID, *decoded.ParentAssetID)
	assert.True(t, decoded.PlacedByOwner)
	assert.True(t, record.PlacedAt.Equal(decoded.PlacedAt))
	assert.Equal(t, record.EventKey(), decoded.EventKey())
}
