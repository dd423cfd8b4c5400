package types

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/store/schema"
)

func TestStringHelpers(t *testing.T) {
	s := StringPtr("test")
	require.NotNil(t, s)
	assert.Equal(t, "test", *s)

	assert.True(t, StringNilOrEmpty(nil))
	assert.True(t, StringNilOrEmpty(StringPtr("")))
	assert.False(t, StringNilOrEmpty(StringPtr("x")))

	assert.Equal(t, "", SafeString(nil))
	assert.Equal(t, "x", SafeString(StringPtr("x")))
}

func TestAddressHelpers(t *testing.T) {
	tests := []struct {
		input    string
		ethereum bool
		tezos    bool
		hash     bool
	}{
		{input: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", ethereum: true},
		{input: "5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{input: "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb", tezos: true},
		{input: "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton", tezos: true},
		{input: "tz1short"},
		{input: "0x" + "ab" + "00000000000000000000000000000000000000000000000000000000000000", hash: true},
		{input: "0x1234"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.ethereum, IsEthereumAddress(tt.input))
			assert.Equal(t, tt.tezos, IsTezosAddress(tt.input))
			assert.Equal(t, tt.hash, IsHash(tt.input))
		})
	}
}

func testRecord() domain.ValidatedPlacementRecord {
	parent := common.HexToHash("0xbeef")
	scene := "ipfs://scene"
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	linked := "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"

	return domain.ValidatedPlacementRecord{
		PlacementRecord: domain.PlacementRecord{
			AssetID:       common.HexToHash("0xaa"),
			ParentAssetID: &parent,
			Asset: domain.ERC721Asset{
				ChainID:         1,
				ContractAddress: common.HexToAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"),
				TokenID:         "1",
			},
			Encoded: domain.EncodedAssetIdentity{
				AssetType:    common.HexToHash("0x01"),
				CollectionID: []byte{0x01, 0x02},
				ItemID:       []byte{0x03},
			},
			Publisher:     common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"),
			Published:     true,
			Location:      domain.Location{GeohashBits: ^uint64(0), BitPrecision: 64},
			SceneURI:      &scene,
			PlacedAt:      time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
			TimeRange:     domain.TimeRange{Start: &start},
			BlockNumber:   120,
			BlockHash:     common.HexToHash("0xb10c"),
			BlockLogIndex: 7,
			TxHash:        common.HexToHash("0x7a"),
			LinkedAccount: &linked,
		},
		PlacedByOwner: true,
	}
}

func TestPlacementMapping_RoundTrip(t *testing.T) {
	record := testRecord()

	placement, err := PlacementFromRecord(record)
	require.NoError(t, err)

	assert.Equal(t, "ERC721", placement.AssetKind)
	assert.Equal(t, "18446744073709551615", placement.GeohashBits)
	assert.Equal(t, int16(64), placement.BitPrecision)
	assert.Equal(t, "0x0102", placement.CollectionID)
	assert.Equal(t, record.BlockHash.Hex(), placement.BlockHash)
	assert.Equal(t, uint64(7), placement.BlockLogIndex)
	assert.JSONEq(t, `{"kind":"ERC721","chain_id":1,"contract_address":"0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359","token_id":"1"}`, string(placement.DecodedAssetID))

	restored, err := PlacementToRecord(placement)
	require.NoError(t, err)
	assert.Equal(t, record, *restored)
}

func TestPlacementMapping_OptionalFields(t *testing.T) {
	record := testRecord()
	record.ParentAssetID = nil
	record.SceneURI = nil
	record.LinkedAccount = nil
	record.TimeRange = domain.TimeRange{}

	placement, err := PlacementFromRecord(record)
	require.NoError(t, err)
	assert.Nil(t, placement.ParentAssetID)
	assert.Nil(t, placement.StartTime)

	restored, err := PlacementToRecord(placement)
	require.NoError(t, err)
	assert.Equal(t, record, *restored)
}

func TestPlacementMapping_Errors(t *testing.T) {
	record := testRecord()
	record.Asset = nil
	_, err := PlacementFromRecord(record)
	assert.Error(t, err)

	_, err = PlacementToRecord(&schema.Placement{DecodedAssetID: []byte(`{"kind":"UNKNOWN"}`)})
	assert.ErrorIs(t, err, domain.ErrUnknownAssetKind)

	placement, err := PlacementFromRecord(testRecord())
	require.NoError(t, err)
	placement.GeohashBits = "-1"
	_, err = PlacementToRecord(placement)
	assert.ErrorContains(t, err, "geohash bits")
}
