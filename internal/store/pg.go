package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/ff-placement-indexer/internal/logger"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/store/schema"
	"github.com/feral-file/ff-placement-indexer/internal/types"
)

type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize computes the optimal batch size for bulk inserts to avoid
// PostgreSQL's "extended protocol limited to 65535 parameters" error.
//
// PostgreSQL's extended protocol has a hard limit of 65535 parameters per query.
// When doing batch inserts with GORM, each record consumes multiple parameters
// (one per field being inserted), and ON CONFLICT clauses may add additional parameters.
//
// Parameters:
//   - totalRecords: total number of records to insert
//   - fieldsPerRecord: number of fields/parameters per record
//
// Returns the safe batch size that won't exceed the parameter limit.
//
// Example with headroom of 1000:
//   - Placement struct: 23 fields → (65,535 - 1,000) / 23 = 2,805 records/batch
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000 // Total parameter headroom for batch-level overhead

	// Reserve headroom from total available parameters
	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// placementUpsertColumns are rewritten when an event is stored again
var placementUpsertColumns = []string{
	"asset_id",
	"parent_asset_id",
	"asset_kind",
	"decoded_asset_id",
	"asset_type",
	"collection_id",
	"item_id",
	"publisher",
	"published",
	"geohash_bits",
	"bit_precision",
	"scene_uri",
	"placed_at",
	"start_time",
	"end_time",
	"block_number",
	"tx_hash",
	"linked_account",
	"placed_by_owner",
	"updated_at",
}

// placementFieldsPerRecord is the number of bound parameters of one placements row
const placementFieldsPerRecord = 23

// SaveSyncBatch upserts the records and advances the cursor in one transaction
func (s *pgStore) SaveSyncBatch(ctx context.Context, input SaveSyncBatchInput) error {
	if input.CursorName == "" {
		return errors.New("cursor name is required")
	}

	placements := make([]schema.Placement, 0, len(input.Records))
	for _, record := range input.Records {
		placement, err := types.PlacementFromRecord(record)
		if err != nil {
			return fmt.Errorf("failed to map placement %s: %w", record.EventKey(), err)
		}
		placements = append(placements, *placement)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(placements) > 0 {
			batchSize := calculateSafeBatchSize(len(placements), placementFieldsPerRecord)
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "block_hash"}, {Name: "block_log_index"}},
				DoUpdates: clause.AssignmentColumns(placementUpsertColumns),
			}).CreateInBatches(&placements, batchSize).Error
			if err != nil {
				return fmt.Errorf("failed to upsert placements: %w", err)
			}
		}

		if err := advanceSyncCursor(tx, input.CursorName, input.BlockNumber); err != nil {
			return err
		}

		logger.DebugCtx(ctx, "Saved sync batch",
			zap.String("cursor", input.CursorName),
			zap.Uint64("blockNumber", input.BlockNumber),
			zap.Int("placements", len(placements)))

		return nil
	})
}

// GetLatestPlacementByAssetID retrieves the latest placement of an asset
func (s *pgStore) GetLatestPlacementByAssetID(ctx context.Context, assetID string) (*schema.Placement, error) {
	var placement schema.Placement

	query := func(db *gorm.DB) error {
		return db.WithContext(ctx).
			Where("asset_id = ?", assetID).
			Order("block_number DESC, block_log_index DESC").
			First(&placement).Error
	}

	err := query(s.db)
	if err == nil {
		return &placement, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get latest placement: %w", err)
	}
	if !hasDBResolver(s.db) {
		return nil, nil
	}

	// Replica can lag behind primary; retry on primary before returning nil.
	err = query(s.db.Clauses(dbresolver.Write))
	if err == nil {
		return &placement, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to get latest placement: %w", err)
}

// GetPlacements retrieves placements matching the filter, newest first, with the total count
func (s *pgStore) GetPlacements(ctx context.Context, filter PlacementQueryFilter) ([]schema.Placement, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Placement{})

	if len(filter.Identity) > 0 {
		identity, err := json.Marshal(filter.Identity)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal identity filter: %w", err)
		}
		query = query.Where("placements.decoded_asset_id @> ?::jsonb", string(identity))
	}
	if len(filter.AssetIDs) > 0 {
		query = query.Where("placements.asset_id IN ?", filter.AssetIDs)
	}
	if filter.Publisher != nil {
		query = query.Where("placements.publisher = ?", *filter.Publisher)
	}
	if filter.ParentAssetID != nil {
		query = query.Where("placements.parent_asset_id = ?", *filter.ParentAssetID)
	}
	if filter.PlacedByOwner != nil {
		query = query.Where("placements.placed_by_owner = ?", *filter.PlacedByOwner)
	}
	if filter.Current {
		// Latest event per asset, a retraction hides the asset
		query = query.Where(`placements.id IN (
			SELECT DISTINCT ON (asset_id) id
			FROM placements
			ORDER BY asset_id, block_number DESC, block_log_index DESC
		)`).Where("placements.published")
	}

	// Get total count before pagination
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count placements: %w", err)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(int(filter.Offset)) //nolint:gosec,G115
	}

	var placements []schema.Placement
	err := query.
		Order("placements.block_number DESC, placements.block_log_index DESC").
		Find(&placements).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get placements: %w", err)
	}

	return placements, uint64(total), nil //nolint:gosec,G115
}

// GetActiveWebhookClients retrieves every active webhook client
func (s *pgStore) GetActiveWebhookClients(ctx context.Context) ([]*schema.WebhookClient, error) {
	var clients []*schema.WebhookClient

	err := s.db.WithContext(ctx).
		Where("is_active").
		Order("id ASC").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active webhook clients: %w", err)
	}

	return clients, nil
}

// CreateWebhookDelivery creates a pending delivery audit row
func (s *pgStore) CreateWebhookDelivery(ctx context.Context, input CreateWebhookDeliveryInput) (*schema.WebhookDelivery, error) {
	delivery := &schema.WebhookDelivery{
		ClientID:       input.ClientID,
		EventID:        input.EventID,
		Payload:        input.Payload,
		RecordCount:    input.RecordCount,
		DeliveryStatus: schema.WebhookDeliveryStatusPending,
	}

	// Payload is already the exact signed JSON bytes
	if err := s.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return nil, fmt.Errorf("failed to create webhook delivery: %w", err)
	}

	return delivery, nil
}

// UpdateWebhookDeliveryStatus records the outcome of a delivery
func (s *pgStore) UpdateWebhookDeliveryStatus(ctx context.Context, deliveryID uint64, status schema.WebhookDeliveryStatus, responseStatus *int, responseBody, errorMessage string) error {
	updates := map[string]interface{}{
		"delivery_status": status,
		"response_body":   responseBody,
		"updated_at":      time.Now(),
	}

	if responseStatus != nil {
		updates["response_status"] = *responseStatus
	}
	if errorMessage != "" {
		// Limit error message
		if len(errorMessage) > 1024 {
			errorMessage = errorMessage[:1024]
		}
		updates["error_message"] = errorMessage
	}

	err := s.db.WithContext(ctx).
		Model(&schema.WebhookDelivery{}).
		Where("id = ?", deliveryID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update webhook delivery status: %w", err)
	}

	return nil
}

// NextRelayNonce atomically increments the relayer nonce and returns it.
// The first call for a relayer returns 0.
func (s *pgStore) NextRelayNonce(ctx context.Context, relayerAddress string) (uint64, error) {
	var nonce int64

	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO relay_nonces (relayer_address, nonce, updated_at)
		VALUES (?, 0, now())
		ON CONFLICT (relayer_address) DO UPDATE
		SET nonce = relay_nonces.nonce + 1,
			updated_at = now()
		RETURNING nonce
	`, relayerAddress).Scan(&nonce).Error
	if err != nil {
		return 0, fmt.Errorf("failed to increment relay nonce: %w", err)
	}
	if nonce < 0 {
		return 0, fmt.Errorf("relay nonce of %s is negative: %d", relayerAddress, nonce)
	}

	return uint64(nonce), nil
}

// SetRelayNonce overwrites the last used relayer nonce
func (s *pgStore) SetRelayNonce(ctx context.Context, relayerAddress string, nonce int64) error {
	record := schema.RelayNonce{
		RelayerAddress: relayerAddress,
		Nonce:          nonce,
		UpdatedAt:      time.Now(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "relayer_address"}},
		DoUpdates: clause.AssignmentColumns([]string{"nonce", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to set relay nonce: %w", err)
	}

	return nil
}

// GetAccountLink retrieves the foreign account linked to an EVM address
func (s *pgStore) GetAccountLink(ctx context.Context, evmAddress string, chain domain.Chain) (*schema.AccountLink, error) {
	var link schema.AccountLink

	query := func(db *gorm.DB) error {
		return db.WithContext(ctx).
			Where("evm_address = ? AND chain = ?", evmAddress, chain).
			First(&link).Error
	}

	err := query(s.db)
	if err == nil {
		return &link, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get account link for %s on chain %s: %w", evmAddress, chain, err)
	}
	if !hasDBResolver(s.db) {
		return nil, nil // Not linked (not an error)
	}

	// Replica can lag behind primary; retry on primary before returning nil.
	err = query(s.db.Clauses(dbresolver.Write))
	if err == nil {
		return &link, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to get account link for %s on chain %s: %w", evmAddress, chain, err)
}
