package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Placement represents the placements table - one row per registry event, append-only
type Placement struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetID is the keccak256 asset id (0x-prefixed hex)
	AssetID string `gorm:"column:asset_id;not null;type:varchar(66);index:idx_placements_asset_id_block"`
	// ParentAssetID is the asset this one is placed inside, if any
	ParentAssetID *string `gorm:"column:parent_asset_id;type:varchar(66)"`
	// AssetKind is the kind name of the decoded identity (ERC721, ERC1155, ...)
	AssetKind string `gorm:"column:asset_kind;not null;type:varchar(32)"`
	// DecodedAssetID is the tagged JSON form of the decoded identity
	DecodedAssetID datatypes.JSON `gorm:"column:decoded_asset_id;not null;type:jsonb"`
	// AssetType is the on-chain type tag
	AssetType string `gorm:"column:asset_type;not null;type:varchar(66)"`
	// CollectionID is the encoded collection field (0x-prefixed hex)
	CollectionID string `gorm:"column:collection_id;not null;type:text"`
	// ItemID is the encoded item field (0x-prefixed hex)
	ItemID string `gorm:"column:item_id;not null;type:text"`
	// Publisher is the EVM address that emitted the placement (checksummed)
	Publisher string `gorm:"column:publisher;not null;type:varchar(42)"`
	// Published is false when the placement retracts the asset
	Published bool `gorm:"column:published;not null"`
	// GeohashBits is the raw geohash as an unsigned decimal string
	GeohashBits string `gorm:"column:geohash_bits;not null;type:varchar(20)"`
	// BitPrecision is the number of significant geohash bits
	BitPrecision int16 `gorm:"column:bit_precision;not null"`
	// SceneURI is the optional scene attached to the placement
	SceneURI *string `gorm:"column:scene_uri;type:text"`
	// PlacedAt is the block timestamp of the event
	PlacedAt time.Time `gorm:"column:placed_at;not null;type:timestamptz"`
	// StartTime is the start of the validity window
	StartTime *time.Time `gorm:"column:start_time;type:timestamptz"`
	// EndTime is the end of the validity window
	EndTime *time.Time `gorm:"column:end_time;type:timestamptz"`
	// BlockNumber is the block of the event
	BlockNumber uint64 `gorm:"column:block_number;not null;index:idx_placements_asset_id_block"`
	// BlockHash and BlockLogIndex identify the event and form the upsert key
	BlockHash     string `gorm:"column:block_hash;not null;type:varchar(66);uniqueIndex:idx_placements_event"`
	BlockLogIndex uint64 `gorm:"column:block_log_index;not null;uniqueIndex:idx_placements_event;index:idx_placements_asset_id_block"`
	// TxHash is the transaction that emitted the event
	TxHash string `gorm:"column:tx_hash;not null;type:varchar(66)"`
	// LinkedAccount is the foreign account used to verify cross-chain ownership
	LinkedAccount *string `gorm:"column:linked_account;type:text"`
	// PlacedByOwner is the result of the ownership verification
	PlacedByOwner bool `gorm:"column:placed_by_owner;not null"`
	// CreatedAt is the timestamp when this row was first written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last written
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Placement model
func (Placement) TableName() string {
	return "placements"
}
