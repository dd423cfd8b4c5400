package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/store/schema"
)

// PlacementFromRecord converts a validated placement record into its placements row
func PlacementFromRecord(record domain.ValidatedPlacementRecord) (*schema.Placement, error) {
	if record.Asset == nil {
		return nil, errors.New("placement record has no decoded asset identity")
	}

	decoded, err := json.Marshal(record.Asset)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal decoded asset identity: %w", err)
	}

	placement := &schema.Placement{
		AssetID:        record.AssetID.Hex(),
		AssetKind:      string(record.Asset.Kind()),
		DecodedAssetID: decoded,
		AssetType:      record.Encoded.AssetType.Hex(),
		CollectionID:   hexutil.Encode(record.Encoded.CollectionID),
		ItemID:         hexutil.Encode(record.Encoded.ItemID),
		Publisher:      record.Publisher.Hex(),
		Published:      record.Published,
		GeohashBits:    strconv.FormatUint(record.Location.GeohashBits, 10),
		BitPrecision:   int16(record.Location.BitPrecision),
		SceneURI:       record.SceneURI,
		PlacedAt:       record.PlacedAt.UTC(),
		StartTime:      utcPtr(record.TimeRange.Start),
		EndTime:        utcPtr(record.TimeRange.End),
		BlockNumber:    record.BlockNumber,
		BlockHash:      record.BlockHash.Hex(),
		BlockLogIndex:  uint64(record.BlockLogIndex),
		TxHash:         record.TxHash.Hex(),
		LinkedAccount:  record.LinkedAccount,
		PlacedByOwner:  record.PlacedByOwner,
	}

	if record.ParentAssetID != nil {
		placement.ParentAssetID = StringPtr(record.ParentAssetID.Hex())
	}

	return placement, nil
}

// PlacementToRecord converts a placements row back into a validated placement record
func PlacementToRecord(placement *schema.Placement) (*domain.ValidatedPlacementRecord, error) {
	identity, err := domain.UnmarshalAssetIdentity(placement.DecodedAssetID)
	if err != nil {
		return nil, fmt.Errorf("failed to restore asset identity of placement %d: %w", placement.ID, err)
	}

	collectionID, err := hexutil.Decode(placement.CollectionID)
	if err != nil {
		return nil, fmt.Errorf("invalid collection id of placement %d: %w", placement.ID, err)
	}
	itemID, err := hexutil.Decode(placement.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item id of placement %d: %w", placement.ID, err)
	}
	geohashBits, err := strconv.ParseUint(placement.GeohashBits, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid geohash bits of placement %d: %w", placement.ID, err)
	}

	record := &domain.ValidatedPlacementRecord{
		PlacementRecord: domain.PlacementRecord{
			AssetID: common.HexToHash(placement.AssetID),
			Asset:   identity,
			Encoded: domain.EncodedAssetIdentity{
				AssetType:    common.HexToHash(placement.AssetType),
				CollectionID: collectionID,
				ItemID:       itemID,
			},
			Publisher: common.HexToAddress(placement.Publisher),
			Published: placement.Published,
			Location: domain.Location{
				GeohashBits:  geohashBits,
				BitPrecision: uint8(placement.BitPrecision), //nolint:gosec,G115 // precision is at most 64
			},
			SceneURI: placement.SceneURI,
			PlacedAt: placement.PlacedAt.UTC(),
			TimeRange: domain.TimeRange{
				Start: utcPtr(placement.StartTime),
				End:   utcPtr(placement.EndTime),
			},
			BlockNumber:   placement.BlockNumber,
			BlockHash:     common.HexToHash(placement.BlockHash),
			BlockLogIndex: uint(placement.BlockLogIndex),
			TxHash:        common.HexToHash(placement.TxHash),
			LinkedAccount: placement.LinkedAccount,
		},
		PlacedByOwner: placement.PlacedByOwner,
	}

	if placement.ParentAssetID != nil {
		parent := common.HexToHash(*placement.ParentAssetID)
		record.ParentAssetID = &parent
	}

	return record, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
