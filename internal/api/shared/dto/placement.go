package dto

import (
	"strconv"
	"time"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
)

// PlacementResponse represents one placement record
type PlacementResponse struct {
	AssetID       string                      `json:"asset_id"`
	ParentAssetID *string                     `json:"parent_asset_id"`
	Kind          domain.AssetKind            `json:"kind"`
	Asset         domain.AssetIdentity        `json:"asset"`
	EncodedAsset  domain.EncodedAssetIdentity `json:"encoded_asset"`
	Publisher     string                      `json:"publisher"`
	Published     bool                        `json:"published"`
	PlacedByOwner bool                        `json:"placed_by_owner"`
	LinkedAccount *string                     `json:"linked_account"`
	Location      LocationResponse            `json:"location"`
	SceneURI      *string                     `json:"scene_uri"`
	PlacedAt      time.Time                   `json:"placed_at"`
	StartTime     *time.Time                  `json:"start_time"`
	EndTime       *time.Time                  `json:"end_time"`
	BlockNumber   uint64                      `json:"block_number"`
	BlockHash     string                      `json:"block_hash"`
	BlockLogIndex uint                        `json:"block_log_index"`
	TxHash        string                      `json:"tx_hash"`

	// ResolvedLocation is the first location found walking up the parent chain, starting with the placement itself
	ResolvedLocation *LocationResponse `json:"resolved_location,omitempty"`
}

// LocationResponse represents a geohash location
type LocationResponse struct {
	GeohashBits   string `json:"geohash_bits"`
	BitPrecision  uint8  `json:"bit_precision"`
	Geohash       string `json:"geohash,omitempty"`
	SourceAssetID string `json:"source_asset_id,omitempty"`
}

// PlacementListResponse represents a page of placements
type PlacementListResponse struct {
	Placements []PlacementResponse `json:"placements"`
	Total      uint64              `json:"total"`
	Offset     *uint64             `json:"offset,omitempty"`
}

// MapLocationToDTO maps a location to its response form
func MapLocationToDTO(location domain.Location) LocationResponse {
	return LocationResponse{
		GeohashBits:  strconv.FormatUint(location.GeohashBits, 10),
		BitPrecision: location.BitPrecision,
		Geohash:      location.Geohash(),
	}
}

// MapPlacementToDTO maps a validated placement record to its response form
func MapPlacementToDTO(record *domain.ValidatedPlacementRecord) *PlacementResponse {
	resp := &PlacementResponse{
		AssetID:       record.AssetID.Hex(),
		Kind:          record.Asset.Kind(),
		Asset:         record.Asset,
		EncodedAsset:  record.Encoded,
		Publisher:     record.Publisher.Hex(),
		Published:     record.Published,
		PlacedByOwner: record.PlacedByOwner,
		LinkedAccount: record.LinkedAccount,
		Location:      MapLocationToDTO(record.Location),
		SceneURI:      record.SceneURI,
		PlacedAt:      record.PlacedAt,
		StartTime:     record.TimeRange.Start,
		EndTime:       record.TimeRange.End,
		BlockNumber:   record.BlockNumber,
		BlockHash:     record.BlockHash.Hex(),
		BlockLogIndex: record.BlockLogIndex,
		TxHash:        record.TxHash.Hex(),
	}

	if record.ParentAssetID != nil {
		parent := record.ParentAssetID.Hex()
		resp.ParentAssetID = &parent
	}

	return resp
}
