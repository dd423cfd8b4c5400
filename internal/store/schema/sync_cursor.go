package schema

import "time"

// SyncCursor represents the sync_cursors table - the last fully processed block per registry
type SyncCursor struct {
	// Name identifies the registry the cursor belongs to
	Name string `gorm:"column:name;primaryKey;type:text"`
	// BlockNumber only moves forward
	BlockNumber uint64 `gorm:"column:block_number;not null;default:0"`
	// UpdatedAt is the timestamp of the last pass that moved or touched the cursor
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the SyncCursor model
func (SyncCursor) TableName() string {
	return "sync_cursors"
}
