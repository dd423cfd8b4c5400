package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-placement-indexer/internal/store/schema"
)

// GetSyncCursor retrieves the last processed block number
func (s *pgStore) GetSyncCursor(ctx context.Context, name string) (uint64, error) {
	var cursor schema.SyncCursor
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&cursor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // Return 0 if no cursor exists
		}
		return 0, fmt.Errorf("failed to get sync cursor: %w", err)
	}

	return cursor.BlockNumber, nil
}

// advanceSyncCursor upserts the cursor, keeping the greater of the stored and given block
func advanceSyncCursor(tx *gorm.DB, name string, blockNumber uint64) error {
	cursor := schema.SyncCursor{
		Name:        name,
		BlockNumber: blockNumber,
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"block_number": gorm.Expr("GREATEST(sync_cursors.block_number, EXCLUDED.block_number)"),
			"updated_at":   gorm.Expr("now()"),
		}),
	}).Create(&cursor).Error
	if err != nil {
		return fmt.Errorf("failed to advance sync cursor: %w", err)
	}

	return nil
}
